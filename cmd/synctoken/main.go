// Command synctoken mints a bearer token for the storage server. It reads
// the same token settings as storageserver and prints the signed token.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/MKhiriev/go-sync15/internal/config"
	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/service"
)

func main() {
	userID := flag.Int64("user", 1, "User id the token is issued for")

	log := logger.NewClientLogger("synctoken", "")
	cfg, err := config.GetServerAppConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	token, err := service.NewAuthService(*cfg, log).CreateToken(context.Background(), *userID)
	if err != nil {
		log.Fatal().Err(err).Int64("user_id", *userID).Msg("error creating token")
	}

	log.Info().Int64("user_id", token.UserID).Time("expires_at", token.ExpiresAt()).Msg("token issued")
	fmt.Println(token.String())
}
