package config

import (
	"flag"
	"fmt"
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

// ParseFlags parses configuration flags from args (without the program name).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-base-path route prefix (e.g. "/api")
//	-d database DSN
//	-f file storage directory of the fs driver
//	-files-driver file storage driver: fs, minio or s3
//	-c/-config json file path with configs
//	-session-sign-key session token signing key
//	-session-issuer session token issuer name
//	-session-duration session lifetime (e.g. "336h")
//	-request-timeout request timeout (e.g. "30s", "1m")
//	-max-upload-size largest accepted upload in bytes
//	-media-base-url absolute URL prefix of uploaded files
//	-log-level minimal log level
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var basePath string
	var databaseDSN string
	var fileStoragePath, filesDriver string
	var jsonConfigPath string
	var sessionSignKey, sessionIssuer string
	var sessionDuration, requestTimeout time.Duration
	var maxUploadSize int64
	var mediaBaseURL string
	var logLevel string

	fs := flag.NewFlagSet("dataset-hub", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&basePath, "base-path", "", "Route prefix")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&fileStoragePath, "f", "", "File storage directory")
	fs.StringVar(&filesDriver, "files-driver", "", "File storage driver (fs, minio, s3)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&sessionSignKey, "session-sign-key", "", "Session token signing key")
	fs.StringVar(&sessionIssuer, "session-issuer", "", "Session token issuer")
	fs.DurationVar(&sessionDuration, "session-duration", 0, "Session lifetime (e.g., 336h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.Int64Var(&maxUploadSize, "max-upload-size", 0, "Largest accepted upload in bytes")
	fs.StringVar(&mediaBaseURL, "media-base-url", "", "Absolute URL prefix of uploaded files")
	fs.StringVar(&logLevel, "log-level", "", "Minimal log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			SessionSignKey:  sessionSignKey,
			SessionIssuer:   sessionIssuer,
			SessionDuration: sessionDuration,
			MediaBaseURL:    mediaBaseURL,
			LogLevel:        logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				Driver:        filesDriver,
				BinaryDataDir: fileStoragePath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			BasePath:       basePath,
			RequestTimeout: requestTimeout,
			MaxUploadSize:  maxUploadSize,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String renders the address for net.Listen. An unset address is "".
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set accepts host:port, [ipv6]:port or :port. Host may be any name; only
// the port is range checked since names are resolved at listen time.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidAddress, err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: port %q must be in [1, 65535]", errInvalidAddress, rawPort)
	}

	if strings.ContainsAny(host, " /") {
		return fmt.Errorf("%w: bad host %q", errInvalidAddress, host)
	}

	a.Host = host
	a.Port = port
	return nil
}
