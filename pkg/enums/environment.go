package enums

import (
	"fmt"
	"strings"
)

// Environment selects the payment gateway mode. Sandbox short-circuits
// the gateway with deterministic demo transactions; production talks to
// the real API. Nothing else may flip the mode.
type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentSandbox    Environment = "sandbox"
)

var validEnvironments = []Environment{
	EnvironmentProduction,
	EnvironmentSandbox,
}

// String implements fmt.Stringer.
func (e Environment) String() string {
	return string(e)
}

// IsValid reports whether the value is a known Environment.
func (e Environment) IsValid() bool {
	for _, candidate := range validEnvironments {
		if candidate == e {
			return true
		}
	}
	return false
}

// IsSandbox reports whether demo mode is active.
func (e Environment) IsSandbox() bool {
	return e == EnvironmentSandbox
}

// ParseEnvironment converts raw input into an Environment.
func ParseEnvironment(value string) (Environment, error) {
	normalized := Environment(strings.ToLower(strings.TrimSpace(value)))
	for _, candidate := range validEnvironments {
		if candidate == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid environment %q", value)
}
