package userresolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/logtarget/pkg/sentrytarget"
	"github.com/dmitrymomot/logtarget/pkg/userresolver"
)

// hashHook answers HGETALL from memory and fails commands whose context is done.
type hashHook struct {
	hash        map[string]string
	hadDeadline bool
}

func (h *hashHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *hashHook) ProcessHook(redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		_, h.hadDeadline = ctx.Deadline()
		if err := ctx.Err(); err != nil {
			cmd.SetErr(err)
			return err
		}
		c, ok := cmd.(*redis.MapStringStringCmd)
		if !ok {
			err := errors.New("unexpected command")
			cmd.SetErr(err)
			return err
		}
		c.SetVal(h.hash)
		return nil
	}
}

func (h *hashHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func newHookedClient(t *testing.T, hook *hashHook) redis.UniversalClient {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	client.AddHook(hook)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedis_LookupOutlivesCallerCancellation(t *testing.T) {
	t.Parallel()

	hook := &hashHook{hash: map[string]string{"plan": "pro"}}
	resolve := userresolver.Redis(newHookedClient(t, hook))

	ctx, cancel := context.WithCancel(userresolver.WithUser(context.Background(), sentrytarget.UserContext{"id": 7}))
	cancel()

	user, err := resolve(ctx)
	require.NoError(t, err)
	require.Equal(t, sentrytarget.UserContext{"id": 7, "plan": "pro"}, user)
	require.True(t, hook.hadDeadline, "lookup must stay bounded by the lookup timeout")
}
