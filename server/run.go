package server

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/ignitor/component"
	"github.com/kbukum/ignitor/ioc"
	"github.com/kbukum/ignitor/logger"
)

// Run is the HTTP start action. It starts the registered components,
// blocks until ctx is done or the process is interrupted, then stops the
// components in reverse order and closes the container.
func Run(ctx context.Context, c *ioc.Container) error {
	if _, err := ioc.Resolve[*Server](c, ioc.Src.Server); err != nil {
		return err
	}
	registry, err := component.FromContainer(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := registry.StartAll(ctx); err != nil {
		return stderrors.Join(err, registry.StopAll(context.Background()), c.Close())
	}

	<-ctx.Done()
	logger.WithComponent("server").Info("Shutting down", map[string]interface{}{
		"reason": context.Cause(ctx).Error(),
	})

	return stderrors.Join(registry.StopAll(context.Background()), c.Close())
}
