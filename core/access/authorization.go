/*Package access provides authentication utilities: password hashing,
bearer token issuing and verification, and the middleware that turns a
valid bearer token into a typed Identity in the request context.
*/
package access

import (
	"context"
)

// contextKey is the type for context keys. Go linter does not like plain strings
type contextKey string

// the predefined context key
const (
	contextKeyIdentity contextKey = "_identity_"
)

// Identity is the authenticated principal of a request. It is produced
// exclusively by the bearer middleware after token verification; handlers
// must take the acting user from here and never from client-supplied body
// or query fields.
type Identity struct {
	UserID int64
}

// ContextWithIdentity returns a new context with the given identity
func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, contextKeyIdentity, identity)
}

// IdentityFromContext retrieves the identity from the context. The second
// return value is false if the request was not authenticated.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(contextKeyIdentity).(Identity)
	return identity, ok
}
