package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound      = goerr.New("configuration file not found")
	ErrInvalidConfig       = goerr.New("invalid configuration")
	ErrDuplicateCategory   = goerr.New("duplicate category")
	ErrInvalidDocumentType = goerr.New("invalid document type")
	ErrInvalidPriority     = goerr.New("priority out of range")
	ErrInvalidBackend      = goerr.New("invalid repository backend")
	ErrMissingParameter    = goerr.New("required parameter is missing")
	ErrInvalidLogLevel     = goerr.New("invalid log level")
	ErrInvalidLogFormat    = goerr.New("invalid log format")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	CategoryKey   = "category"
	BackendKey    = "backend"
	StoreKey      = "store"
	ParameterKey  = "parameter"
)
