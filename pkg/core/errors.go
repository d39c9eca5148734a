package core

import "fmt"

// ValidationError represents an error found while validating fatty-acid records
// or the inventory built from them.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// ConfigurationError reports a catalog entry that a formula needs but that is
// missing, empty or inconsistent. Key names the catalog key (m_oap, x3, ...).
type ConfigurationError struct {
	Key     string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Key, e.Message)
}

// DomainError reports an argument outside the domain of a counting primitive.
// It indicates a programming error in the caller, not bad user input.
type DomainError struct {
	Param   string
	Value   int
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s=%d: %s", e.Param, e.Value, e.Message)
}
