package mutation

import "fmt"

// ValidationError means the caller-supplied data was malformed. Recoverable
// by re-prompting the admin.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// NotFoundError means the target row is absent. Raised before any write or
// log attempt.
type NotFoundError struct {
	Target string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Target, e.ID)
}

// AuthorizationError means the actor is not permitted to perform the
// mutation. Enforcement lives at the entity store's policy layer; the type
// exists so callers enforcing their own checks share one taxonomy.
type AuthorizationError struct {
	ActorID string
	Target  string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("actor %s not permitted on %s", e.ActorID, e.Target)
}
