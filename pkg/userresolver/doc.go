// Package userresolver provides user resolvers for sentrytarget.
//
// Events exported by a [sentrytarget.Target] can be attributed to a user.
// The target invokes its resolver once per exported batch; this package
// offers two implementations:
//
//   - [FromContext] returns the user attributes stored with [WithUser],
//     usually by authentication middleware;
//   - [Redis] additionally loads the hash stored at "user:<id>" and merges
//     it over the context attributes, deduplicating concurrent lookups.
//
// # Usage
//
//	client, err := userresolver.Connect(ctx, os.Getenv("REDIS_URL"))
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	target, err := sentrytarget.New(cfg,
//		sentrytarget.WithUserResolver(userresolver.Redis(client)),
//	)
//
// Lookup failures are returned to the target and abort the export.
package userresolver
