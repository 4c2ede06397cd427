package models

// RemoteClient is another device attached to the same account, as seen by
// the cross-collection coordination context.
type RemoteClient struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DeviceType string `json:"type"`
}

// ClientsContext is shared by all stores during one sync pass: the local
// device id and the other devices currently attached to the account.
type ClientsContext struct {
	LocalID string
	Remote  []RemoteClient
}

// Lookup returns the remote client with id.
func (c *ClientsContext) Lookup(id string) (RemoteClient, bool) {
	if c == nil {
		return RemoteClient{}, false
	}
	for _, rc := range c.Remote {
		if rc.ID == id {
			return rc, true
		}
	}
	return RemoteClient{}, false
}
