package server

import (
	"context"
	"fmt"

	"github.com/kbukum/ignitor/component"
)

// ComponentName is the server's name in the component registry.
const ComponentName = "http-server"

var (
	_ component.Component   = (*Server)(nil)
	_ component.Describable = (*Server)(nil)
)

// Name implements component.Component.
func (s *Server) Name() string { return ComponentName }

// Health is healthy while the listener is bound.
func (s *Server) Health(ctx context.Context) component.Health {
	h := component.Health{Name: ComponentName, Status: component.StatusHealthy}
	if !s.Listening() {
		h.Status = component.StatusUnhealthy
		h.Message = "not listening on " + s.Addr()
	}
	return h
}

// Describe implements component.Describable.
func (s *Server) Describe() component.Description {
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: fmt.Sprintf("%s routes=%d", s.Addr(), len(s.engine.Routes())),
		Port:    s.config.Port,
	}
}
