package server

import (
	"context"

	"github.com/kbukum/ignitor/component"
	"github.com/kbukum/ignitor/config"
	"github.com/kbukum/ignitor/ioc"
	"github.com/kbukum/ignitor/logger"
)

// Provider binds the HTTP server under ioc.Src.Server. Boot registers the
// default endpoints and adds the server to the component registry.
type Provider struct{}

// NewProvider creates the HTTP server provider.
func NewProvider() ioc.ServiceProvider { return &Provider{} }

func (p *Provider) Register(c *ioc.Container) error {
	if !c.Has(ioc.Src.Components) {
		if err := component.NewProvider().Register(c); err != nil {
			return err
		}
	}
	return c.Singleton(ioc.Src.Server, newServer)
}

func newServer(c *ioc.Container) (*Server, error) {
	cfg, name, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	log := logger.GetGlobalLogger()
	if l, ok := ioc.TryResolve[*logger.Logger](c, ioc.Src.Logger); ok {
		log = l
	}
	srv := New(cfg, log)
	srv.name = name
	return srv, nil
}

func loadConfig(c *ioc.Container) (Config, string, error) {
	var cfg Config
	name := config.DefaultName
	if repo, ok := ioc.TryResolve[*config.Repository](c, ioc.Src.Config); ok {
		if err := repo.UnmarshalKey(ConfigKey, &cfg); err != nil {
			return cfg, name, err
		}
		name = repo.Service().Name
	}
	cfg.ApplyDefaults()
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, name, err
	}
	return cfg, name, cfg.Validate()
}

func (p *Provider) Boot(ctx context.Context, c *ioc.Container) error {
	srv, err := ioc.Resolve[*Server](c, ioc.Src.Server)
	if err != nil {
		return err
	}
	registry, err := component.FromContainer(c)
	if err != nil {
		return err
	}
	srv.RegisterDefaultEndpoints(srv.name, registry.HealthAll)
	return registry.Register(srv)
}
