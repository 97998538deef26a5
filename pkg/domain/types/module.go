package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ModuleName identifies one guided profile module, e.g. "InterestAwareness"
type ModuleName string

// Validate checks if the module name is usable as a store key
func (m ModuleName) Validate() error {
	if strings.TrimSpace(string(m)) == "" {
		return goerr.New("module name cannot be empty")
	}
	if strings.ContainsAny(string(m), "\x00\n\r") {
		return goerr.New("module name contains control characters", goerr.V("module", string(m)))
	}
	return nil
}

// String returns the string representation of the module name
func (m ModuleName) String() string {
	return string(m)
}
