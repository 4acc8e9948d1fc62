package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/ignitor/ace"
	"github.com/kbukum/ignitor/config"
	"github.com/kbukum/ignitor/ioc"
	"github.com/kbukum/ignitor/loader"
	"github.com/kbukum/ignitor/observability"
	"github.com/kbukum/ignitor/server"
)

const greetCommand = "App/Commands/Greet"

func init() {
	loader.RegisterProvider("ignitor/providers/config", func() ioc.ServiceProvider { return config.NewProvider() })
	loader.RegisterProvider("ignitor/providers/telemetry", observability.NewProvider)
	loader.RegisterProvider("ignitor/providers/server", server.NewProvider)
	loader.RegisterProvider("ignitor/providers/ace", ace.NewProvider)
	loader.RegisterProvider("app/providers/commands", func() ioc.ServiceProvider { return commandsProvider{} })

	loader.RegisterManifest(loader.DefaultAppFile, func() *loader.Manifest {
		return &loader.Manifest{
			Providers: []string{
				"ignitor/providers/config",
				"ignitor/providers/telemetry",
				"ignitor/providers/server",
			},
			AceProviders: []string{
				"ignitor/providers/ace",
				"app/providers/commands",
			},
			Aliases: map[string]string{
				"Config": ioc.Src.Config,
				"Server": ioc.Src.Server,
			},
			Commands: []string{greetCommand},
		}
	})

	loader.RegisterScript("start/routes", routes)
}

// routes is the start/routes preload script.
func routes(ctx context.Context, c *ioc.Container) error {
	srv, err := ioc.Resolve[*server.Server](c, "Server")
	if err != nil {
		return err
	}
	srv.GinEngine().GET("/hello/:name", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "hello " + ctx.Param("name")})
	})
	return nil
}

type commandsProvider struct{}

func (commandsProvider) Register(c *ioc.Container) error {
	return c.Singleton(greetCommand, func() ace.Command {
		return ace.CommandFunc("greet", "Print a greeting", func(_ context.Context, args []string) error {
			name := "world"
			if len(args) > 0 {
				name = strings.Join(args, " ")
			}
			fmt.Printf("hello %s\n", name)
			return nil
		})
	})
}
