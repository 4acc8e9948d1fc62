package config

import (
	"context"

	"github.com/kbukum/ignitor/helpers"
	"github.com/kbukum/ignitor/ioc"
	"github.com/kbukum/ignitor/logger"
)

// Provider binds the configuration repository under ioc.Src.Config and the
// application logger under ioc.Src.Logger.
type Provider struct {
	Options []LoaderOption
}

// NewProvider creates a config provider.
func NewProvider(opts ...LoaderOption) ioc.ServiceProvider {
	return &Provider{Options: opts}
}

func (p *Provider) Register(c *ioc.Container) error {
	if err := c.Singleton(ioc.Src.Config, func(c *ioc.Container) (*Repository, error) {
		h, err := ioc.Resolve[*helpers.Helpers](c, ioc.Src.Helpers)
		if err != nil {
			return nil, err
		}
		return Load(h.AppRoot(), p.Options...)
	}); err != nil {
		return err
	}
	return c.Singleton(ioc.Src.Logger, func(c *ioc.Container) (*logger.Logger, error) {
		repo, err := ioc.Resolve[*Repository](c, ioc.Src.Config)
		if err != nil {
			return nil, err
		}
		svc := repo.Service()
		return logger.New(&svc.Logging, svc.Name), nil
	})
}

// Boot loads the configuration and installs the configured logger as the
// global logger.
func (p *Provider) Boot(ctx context.Context, c *ioc.Container) error {
	l, err := ioc.Resolve[*logger.Logger](c, ioc.Src.Logger)
	if err != nil {
		return err
	}
	logger.SetGlobalLogger(l)
	return nil
}
