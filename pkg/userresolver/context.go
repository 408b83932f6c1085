package userresolver

import (
	"context"
	"maps"

	"github.com/dmitrymomot/logtarget/pkg/sentrytarget"
)

type userKey struct{}

// WithUser stores user attributes in ctx. Typically called by authentication
// middleware once the caller is known.
func WithUser(ctx context.Context, user sentrytarget.UserContext) context.Context {
	return context.WithValue(ctx, userKey{}, maps.Clone(user))
}

// UserFrom returns a copy of the user attributes stored by WithUser, or nil.
func UserFrom(ctx context.Context) sentrytarget.UserContext {
	if u, ok := ctx.Value(userKey{}).(sentrytarget.UserContext); ok && len(u) > 0 {
		return maps.Clone(u)
	}
	return nil
}

// FromContext returns a resolver that reports the user stored in the export context.
func FromContext() sentrytarget.UserResolver {
	return func(ctx context.Context) (sentrytarget.UserContext, error) {
		return UserFrom(ctx), nil
	}
}
