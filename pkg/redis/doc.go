// Package redis connects to the Redis server that backs the shared tenant
// record cache.
//
// Connect wraps the go-redis client with env-driven configuration and
// startup retries:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	cache := tenant.NewRedisCache(client, "tenants")
//
// Healthcheck returns a ping probe for liveness and readiness endpoints.
//
// Sentinel errors (ErrRedisNotReady and friends) wrap the underlying go-redis
// errors with errors.Join, so both layers stay matchable with errors.Is.
package redis
