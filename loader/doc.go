// Package loader resolves the identifiers an application refers to by name.
//
// Go has no runtime module loader, so providers, preload scripts and app
// manifests register themselves under the identifier the app uses for them,
// usually from an init function:
//
//	func init() {
//	    loader.RegisterProvider("App/Providers/Mail", func() ioc.ServiceProvider { return &MailProvider{} })
//	    loader.RegisterScript("start/routes", routes)
//	}
//
// App manifests may also live on disk as YAML or JSON files, and the
// package descriptor (package.json) supplies the autoload namespaces.
package loader
