package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(route string, resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	var err error
	switch resp.StatusCode() {
	case http.StatusBadRequest:
		err = fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		err = fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		err = fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		err = fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		err = fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusPreconditionFailed:
		err = fmt.Errorf("%w: %s", ErrPreconditionFailed, body)
	case http.StatusRequestEntityTooLarge:
		err = fmt.Errorf("%w: %s", ErrPayloadTooLarge, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			err = fmt.Errorf("%w: %s", ErrServerError, body)
		} else {
			err = fmt.Errorf("unexpected status: %s", body)
		}
	}

	return &RemoteError{Route: route, StatusCode: resp.StatusCode(), Err: err}
}
