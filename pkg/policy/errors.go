package policy

import "errors"

var (
	// ErrPolicyMissing is returned by Validate when a tenant-scoped entity has
	// no registered policy. Meant for startup checks; a missing policy must
	// never be discovered by production traffic.
	ErrPolicyMissing = errors.New("no policy registered for entity")

	// ErrDuplicatePolicy is returned when an entity is registered twice.
	ErrDuplicatePolicy = errors.New("policy already registered for entity")

	// ErrInvalidPolicy is returned when a policy definition fails validation.
	ErrInvalidPolicy = errors.New("invalid policy definition")

	// ErrEmptyCatalogue is returned when a migration is requested from a
	// catalogue with no policies.
	ErrEmptyCatalogue = errors.New("catalogue has no policies")
)
