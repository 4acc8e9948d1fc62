// Package ioc provides the IoC container the ignitor boot pipeline
// registers service providers against.
//
// Bindings are string keyed. Constructors may take no argument, a
// context.Context or the *Container itself, and return either the value or
// (value, error):
//
//	c := ioc.NewContainer()
//	c.Singleton("App/Services/Mailer", func(c *ioc.Container) (*Mailer, error) {
//	    cfg, err := ioc.Resolve[*config.Repository](c, ioc.Src.Config)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewMailer(cfg.GetString("mail.host")), nil
//	})
//
// The container also holds the alias table, the autoload namespace map and
// the Resolver directories. Registrar drives the register-then-boot cycle
// of ServiceProvider values.
package ioc
