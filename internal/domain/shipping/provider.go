package shipping

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable indicates the provider could not be reached.
	ErrUnavailable = errors.New("shipping: provider temporarily unavailable")
	// ErrAuthFailed indicates the provider rejected the credentials.
	ErrAuthFailed = errors.New("shipping: authentication failed")
	// ErrInvalidResponse indicates the provider returned an unusable body.
	ErrInvalidResponse = errors.New("shipping: invalid provider response")
)

// Provider is the port to the external shipping platform. Only the
// authentication handshake is modelled; the returned token is stored as
// the tenant's integration credential.
type Provider interface {
	// Authenticate exchanges the account email and password for an API
	// token. A non-2xx response maps to ErrAuthFailed or ErrUnavailable.
	Authenticate(ctx context.Context, email, password string) (token string, err error)
}
