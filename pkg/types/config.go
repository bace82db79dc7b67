package types

import (
	"errors"
	"fmt"
	"strings"
)

// ConnectionConfig holds the connection URI and the companion credentials
// used by the bolt backend.
type ConnectionConfig struct {
	DBURI    string `json:"db_uri" yaml:"db_uri"`
	User     string `json:"neo4j_user" yaml:"neo4j_user"`
	Password string `json:"-" yaml:"-"`
	Database string `json:"neo4j_db" yaml:"neo4j_db"`
}

// Supported URI schemes.
const (
	SchemeBolt  = "bolt"
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
)

// Setting names reported when a mandatory value is missing.
const (
	SettingDBURI    = "DB_URI"
	SettingUser     = "NEO4J_USER"
	SettingPassword = "NEO4J_PASSWORD"
	SettingDatabase = "NEO4J_DB"
)

// Configuration errors.
var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrMissingSetting = errors.New("mandatory setting is not set")
)

// Scheme returns the URI scheme (the text before "://").
func (c ConnectionConfig) Scheme() (string, error) {
	scheme, _, ok := strings.Cut(c.DBURI, "://")
	if !ok || scheme == "" {
		return "", fmt.Errorf(`%w: db uri must be a valid uri, eg. "bolt://127.0.0.1:7687", or "https://abc.xyz.us-east-1.neptune.amazonaws.com:8182"`, ErrInvalidConfig)
	}
	switch scheme {
	case SchemeBolt, SchemeHTTP, SchemeHTTPS:
		return scheme, nil
	default:
		return "", fmt.Errorf("%w: db uri must have one of the following protocols: [http, https, bolt]", ErrInvalidConfig)
	}
}

// Validate checks the URI scheme and, for bolt, that the companion
// credentials are present. It never contacts a backend.
func (c ConnectionConfig) Validate() error {
	if c.DBURI == "" {
		return missing(SettingDBURI)
	}
	scheme, err := c.Scheme()
	if err != nil {
		return err
	}
	if scheme != SchemeBolt {
		return nil
	}
	if c.User == "" {
		return missing(SettingUser)
	}
	if c.Password == "" {
		return missing(SettingPassword)
	}
	if c.Database == "" {
		return missing(SettingDatabase)
	}
	return nil
}

func missing(name string) error {
	return fmt.Errorf("%w: %s is not set", ErrMissingSetting, name)
}
