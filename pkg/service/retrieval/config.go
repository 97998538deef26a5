package retrieval

import (
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultTopN          = 3
	DefaultExcerptLength = 500
	DefaultEllipsis      = "..."
)

// Config controls selection and rendering of reference documents. It is
// passed explicitly to Rank and Render; the package holds no tables of its own.
type Config struct {
	// TopN is the maximum number of documents in one context
	TopN int
	// ExcerptLength is the per-document content budget in characters (runes)
	ExcerptLength int
	// Ellipsis is appended to a truncated excerpt
	Ellipsis string
	// Classification fills metadata missing from stored documents
	Classification Classification
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		TopN:           DefaultTopN,
		ExcerptLength:  DefaultExcerptLength,
		Ellipsis:       DefaultEllipsis,
		Classification: DefaultClassification(),
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.TopN < 1 {
		return goerr.New("top N must be at least 1", goerr.V("top_n", c.TopN))
	}
	if c.ExcerptLength < 1 {
		return goerr.New("excerpt length must be at least 1", goerr.V("excerpt_length", c.ExcerptLength))
	}
	return c.Classification.Validate()
}
