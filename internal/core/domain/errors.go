package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRuleSet indicates a rule set that cannot drive an extraction:
	// an uncompilable pattern or a capture-group arity mismatch.
	ErrInvalidRuleSet = errors.New("invalid rule set")

	// ErrParse indicates a field failed numeric coercion.
	ErrParse = errors.New("parse error")

	// ErrStoreDisabled indicates a store-backed operation was invoked
	// while persistence is turned off.
	ErrStoreDisabled = errors.New("store disabled")
)
