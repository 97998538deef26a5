package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/service/retrieval"
	"github.com/mgprofile/mgprofile/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Retrieval holds CLI flags for the context retrieval engine
type Retrieval struct {
	configPath string
}

// Flags returns CLI flags for retrieval configuration
func (r *Retrieval) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "retrieval-config",
			Usage:       "Path to retrieval TOML config ([retrieval] and [[category]] sections)",
			Category:    "Retrieval",
			Sources:     cli.EnvVars("MGPROFILE_RETRIEVAL_CONFIG"),
			Destination: &r.configPath,
		},
	}
}

// Configure returns the retrieval configuration. Without a config file the
// built-in defaults are used.
func (r *Retrieval) Configure() (retrieval.Config, error) {
	if r.configPath == "" {
		return retrieval.DefaultConfig(), nil
	}

	file, err := LoadRetrievalFile(r.configPath)
	if err != nil {
		return retrieval.Config{}, err
	}

	cfg := file.ToRetrievalConfig()
	if err := cfg.Validate(); err != nil {
		return retrieval.Config{}, goerr.Wrap(ErrInvalidConfig, "invalid retrieval config",
			goerr.V(ConfigPathKey, r.configPath),
			goerr.V("error", err.Error()))
	}

	logging.Default().Info("Loaded retrieval config",
		"path", r.configPath,
		"top_n", cfg.TopN,
		"excerpt_length", cfg.ExcerptLength,
		"categories", len(cfg.Classification),
	)
	return cfg, nil
}
