// Package ignitor boots an application: it loads the app manifest,
// registers and boots its service providers, fires the lifecycle hooks
// around every phase, runs the preload scripts and finally hands control
// to the HTTP server or the ace command runner.
//
// # Quick Start
//
//	ig := ignitor.New().SetAppRoot(root)
//	if err := ig.FireHTTPServer(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// The pipeline runs in this order:
//
//	setup → manifest →
//	before.providersRegistered → register → after.providersRegistered →
//	before.providersBooted → boot → after.providersBooted →
//	before.preloading → preload → after.preloading → start action
//
// The first failure aborts the pipeline. Providers that were already
// registered or booted stay that way.
package ignitor
