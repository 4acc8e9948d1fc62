package ace

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/kbukum/ignitor/config"
	"github.com/kbukum/ignitor/ioc"
)

// Provider binds the command kernel under ioc.Src.Ace.
type Provider struct{}

// NewProvider creates the ace provider.
func NewProvider() ioc.ServiceProvider { return &Provider{} }

func (p *Provider) Register(c *ioc.Container) error {
	return c.Singleton(ioc.Src.Ace, func(c *ioc.Container) *Kernel {
		name := "ace"
		if repo, ok := ioc.TryResolve[*config.Repository](c, ioc.Src.Config); ok && repo.IsSet("ace.name") {
			name = repo.GetString("ace.name")
		}
		return NewKernel(name, nil)
	})
}

// Run is the ace start action. It adds the command bound under each key in
// commands to the kernel, executes args and closes the container.
func Run(ctx context.Context, c *ioc.Container, commands []string, args []string) error {
	kernel, err := ioc.Resolve[*Kernel](c, ioc.Src.Ace)
	if err != nil {
		return err
	}
	for _, key := range commands {
		value, err := c.Resolve(key)
		if err != nil {
			return err
		}
		cmd, ok := value.(Command)
		if !ok {
			return fmt.Errorf("ace: %s is %T, not a command", key, value)
		}
		if err := kernel.Add(cmd); err != nil {
			return err
		}
	}
	return stderrors.Join(kernel.Execute(ctx, args), c.Close())
}
