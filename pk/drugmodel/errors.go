package drugmodel

import "fmt"

// ErrInvalidDefinition wraps a validation failure for a CovariateDefinition
// or ParameterDefinition, or a duplicate age/time-from-start category found
// by Definitions.ValidateNoDuplicateCategories.
type ErrInvalidDefinition struct {
	ID     string
	Reason string
}

func (e *ErrInvalidDefinition) Error() string {
	return fmt.Sprintf("drugmodel: invalid definition %q: %s", e.ID, e.Reason)
}
