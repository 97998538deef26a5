package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"github.com/mgprofile/mgprofile/pkg/service/retrieval"
	"github.com/pelletier/go-toml/v2"
)

// RetrievalFile is the TOML retrieval configuration
type RetrievalFile struct {
	Retrieval  RetrievalSection `toml:"retrieval"`
	Categories []CategoryEntry  `toml:"category"`
}

// RetrievalSection overrides the selection and rendering defaults. Zero
// values keep the default.
type RetrievalSection struct {
	TopN          int     `toml:"top_n"`
	ExcerptLength int     `toml:"excerpt_length"`
	Ellipsis      *string `toml:"ellipsis"`
}

// CategoryEntry is one classification row
type CategoryEntry struct {
	Name           string               `toml:"name"`
	DocumentType   string               `toml:"document_type"`
	UsageTags      model.UsageTags      `toml:"usage_tags"`
	PriorityScores model.PriorityScores `toml:"priority_scores"`
}

// Validate checks if the CategoryEntry is valid
func (c *CategoryEntry) Validate() error {
	if c.Name == "" {
		return goerr.Wrap(ErrInvalidConfig, "category name is required")
	}
	if _, err := types.ParseDocumentType(c.DocumentType); err != nil {
		return goerr.Wrap(ErrInvalidDocumentType, "invalid category document type",
			goerr.V(CategoryKey, c.Name),
			goerr.V("document_type", c.DocumentType))
	}
	for _, p := range []int{c.PriorityScores.LessonPlans, c.PriorityScores.Profiles} {
		if p < model.MinPriority || p > model.MaxPriority {
			return goerr.Wrap(ErrInvalidPriority, "invalid category priority",
				goerr.V(CategoryKey, c.Name),
				goerr.V("priority", p))
		}
	}
	return nil
}

// Validate checks if the RetrievalFile is valid
func (f *RetrievalFile) Validate() error {
	if f.Retrieval.TopN < 0 {
		return goerr.Wrap(ErrInvalidConfig, "top_n must not be negative", goerr.V("top_n", f.Retrieval.TopN))
	}
	if f.Retrieval.ExcerptLength < 0 {
		return goerr.Wrap(ErrInvalidConfig, "excerpt_length must not be negative", goerr.V("excerpt_length", f.Retrieval.ExcerptLength))
	}

	names := make(map[string]bool)
	for _, cat := range f.Categories {
		if err := cat.Validate(); err != nil {
			return err
		}
		if names[cat.Name] {
			return goerr.Wrap(ErrDuplicateCategory, "duplicate category name", goerr.V(CategoryKey, cat.Name))
		}
		names[cat.Name] = true
	}
	return nil
}

// ToRetrievalConfig applies the file on top of retrieval.DefaultConfig.
// Listed categories replace or extend the built-in table.
func (f *RetrievalFile) ToRetrievalConfig() retrieval.Config {
	cfg := retrieval.DefaultConfig()
	if f.Retrieval.TopN > 0 {
		cfg.TopN = f.Retrieval.TopN
	}
	if f.Retrieval.ExcerptLength > 0 {
		cfg.ExcerptLength = f.Retrieval.ExcerptLength
	}
	if f.Retrieval.Ellipsis != nil {
		cfg.Ellipsis = *f.Retrieval.Ellipsis
	}
	for _, cat := range f.Categories {
		cfg.Classification[cat.Name] = retrieval.Category{
			DocumentType:   types.DocumentType(cat.DocumentType),
			UsageTags:      cat.UsageTags,
			PriorityScores: cat.PriorityScores,
		}
	}
	return cfg
}

// LoadRetrievalFile reads and validates a retrieval configuration file
func LoadRetrievalFile(path string) (*RetrievalFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "retrieval config not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var file RetrievalFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path),
			goerr.V("error", err.Error()))
	}

	if err := file.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &file, nil
}
