// Package hooks holds the lifecycle callbacks fired around each boot
// phase: providersRegistered, providersBooted and preloading.
//
// Each phase has a before list and an after list. Within a list hooks fire
// in registration order; the before list of a phase drains completely
// before its after list starts.
//
//	hooks.Before.ProvidersBooted(func(ctx context.Context) error {
//	    return warmCaches(ctx)
//	})
//	hooks.After.Preloading(func(ctx context.Context) error {
//	    log.Info("routes and events loaded")
//	    return nil
//	})
package hooks
