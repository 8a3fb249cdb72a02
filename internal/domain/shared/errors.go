package shared

// DomainError is a business-rule violation. Code is a stable machine
// identifier the interface layer translates to an HTTP status; Message
// is safe to show to API clients.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a domain error with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinels shared across aggregates. Compared by identity, so they
// work with errors.Is whether returned directly or wrapped.
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrForbidden          = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrDeletionNotAllowed = NewDomainError("DELETION_NOT_ALLOWED", "Resource cannot be deleted")
)
