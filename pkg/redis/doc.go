// Package redis provides the Redis plumbing for the entitlement engine's
// hot-path usage counters: an env-configured client with connection retries
// and a healthcheck probe.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := usage.NewRedisStore(client)
package redis
