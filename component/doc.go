// Package component manages long-running pieces of an application, such as
// the HTTP server, that start after boot and stop on shutdown.
//
// Components start in registration order and stop in reverse order. The
// registry is bound under ioc.Src.Components by Provider; anything that
// needs a lifecycle registers into it from a provider's Boot step.
package component
