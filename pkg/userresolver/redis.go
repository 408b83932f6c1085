package userresolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/logtarget/pkg/sentrytarget"
)

// RedisOption configures the Redis resolver.
type RedisOption func(*redisOptions)

type redisOptions struct {
	keyPrefix string
	idKey     string
	timeout   time.Duration
}

// WithKeyPrefix sets the prefix of user hash keys.
// Default: "user:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.keyPrefix = prefix
	}
}

// WithIDKey sets the user attribute holding the user ID.
// Default: "id".
func WithIDKey(key string) RedisOption {
	return func(o *redisOptions) {
		if key != "" {
			o.idKey = key
		}
	}
}

// WithLookupTimeout bounds a single hash lookup.
// Default: 500ms.
func WithLookupTimeout(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// Redis returns a resolver that enriches the context user with the Redis hash
// stored at <prefix><id>. Without a user ID in the context the context user
// is returned as-is. A missing hash is not an error.
// Concurrent lookups of the same user share one round trip.
func Redis(client redis.UniversalClient, opts ...RedisOption) sentrytarget.UserResolver {
	o := &redisOptions{
		keyPrefix: "user:",
		idKey:     "id",
		timeout:   500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(o)
	}

	var group singleflight.Group

	return func(ctx context.Context) (sentrytarget.UserContext, error) {
		user := UserFrom(ctx)
		id, ok := user[o.idKey]
		if !ok || id == nil {
			return user, nil
		}

		key := o.keyPrefix + fmt.Sprint(id)
		// The lookup is shared by concurrent callers, so one caller's
		// cancellation must not fail the others.
		v, err, _ := group.Do(key, func() (any, error) {
			lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.timeout)
			defer cancel()
			return client.HGetAll(lookupCtx, key).Result()
		})
		if err != nil {
			return nil, errors.Join(ErrLookupFailed, err)
		}

		for field, value := range v.(map[string]string) {
			if field == o.idKey {
				continue
			}
			user[field] = value
		}
		return user, nil
	}
}
