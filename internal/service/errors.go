package service

import "fmt"

// Domain error taxonomy. Handlers translate these with errors.As:
// NotFoundError → 404, InvalidConfigError → 422, InvalidStateError → 409.
// Anything else is treated as a persistence/internal failure (500).

// NotFoundError means a referenced formula/recipe/batch does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidConfigError means a malformed formula line or batch parameter
// (loss factor ≥ 100, non-positive batch size). Rejected before any write.
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string { return e.Reason }

// InvalidStateError means an operation hit a batch in the wrong lifecycle
// state (yield against a closed batch, double close).
type InvalidStateError struct {
	BatchNumber string
	Status      string
	Op          string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s batch %s in status %q", e.Op, e.BatchNumber, e.Status)
}
