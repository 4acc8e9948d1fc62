package component

import "github.com/kbukum/ignitor/ioc"

// Provider binds a Registry under ioc.Src.Components.
type Provider struct{}

// NewProvider creates a component registry provider.
func NewProvider() ioc.ServiceProvider { return &Provider{} }

func (p *Provider) Register(c *ioc.Container) error {
	return c.Singleton(ioc.Src.Components, NewRegistry)
}

// FromContainer resolves the registry bound under ioc.Src.Components.
func FromContainer(c *ioc.Container) (*Registry, error) {
	return ioc.Resolve[*Registry](c, ioc.Src.Components)
}
