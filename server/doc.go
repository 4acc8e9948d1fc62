// Package server is the HTTP side of the application: a Gin engine served
// over HTTP/1.1 and h2c, its service provider and the start action used by
// the HTTP entry point.
//
// Provider binds the server under ioc.Src.Server. Routes are added from
// preload scripts through the engine:
//
//	srv := ioc.MustResolve[*server.Server](c, ioc.Src.Server)
//	srv.GinEngine().GET("/", home)
//
// Run starts every registered component, blocks until the context is
// cancelled or the process receives SIGINT/SIGTERM, then stops them and
// closes the container.
package server
