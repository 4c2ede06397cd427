package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-adapter-address storage endpoint URL used by the client
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout for server and client (e.g., "30s")
//	-auth-token bearer token of the client
//	-root-key base64 account root key
//	-passphrase / -salt root key derivation inputs
//	-engines comma separated collection names
//	-atomic upload every collection atomically
//	-sync-interval period between sync passes
//	-max-post-records / -max-post-bytes client side POST limits
//	-log-level zerolog level name (debug, info, warn, error)
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var adapterAddress string
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var authToken string
	var rootKey, passphrase, salt string
	var engines string
	var atomic bool
	var syncInterval time.Duration
	var maxPostRecords, maxPostBytes int
	var logLevel string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&adapterAddress, "adapter-address", "", "Storage endpoint URL")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&authToken, "auth-token", "", "Bearer token")
	flag.StringVar(&rootKey, "root-key", "", "Base64 root key (64 bytes)")
	flag.StringVar(&passphrase, "passphrase", "", "Passphrase to derive the root key from")
	flag.StringVar(&salt, "salt", "", "Base64 salt for root key derivation")
	flag.StringVar(&engines, "engines", "", "Comma separated collections to sync")
	flag.BoolVar(&atomic, "atomic", false, "Upload each collection atomically")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Period between sync passes")
	flag.IntVar(&maxPostRecords, "max-post-records", 0, "Max records per POST")
	flag.IntVar(&maxPostBytes, "max-post-bytes", 0, "Max bytes per POST")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
			AuthToken:      authToken,
		},
		Sync: Sync{
			RootKey:        rootKey,
			Passphrase:     passphrase,
			Salt:           salt,
			Engines:        splitList(engines),
			FullyAtomic:    atomic,
			MaxPostRecords: maxPostRecords,
			MaxPostBytes:   maxPostBytes,
		},
		Workers:      Workers{SyncInterval: syncInterval},
		LogLevel:     logLevel,
		JSONFilePath: jsonConfigPath,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
