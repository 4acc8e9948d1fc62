package ace

import (
	"context"

	"github.com/spf13/cobra"
)

// Command is a console command.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, args []string) error
}

// Configurer is implemented by commands that declare flags or argument
// rules on their cobra command.
type Configurer interface {
	Configure(cmd *cobra.Command)
}

// CommandFunc builds a Command from a function.
func CommandFunc(name, description string, run func(ctx context.Context, args []string) error) Command {
	return &funcCommand{name: name, description: description, run: run}
}

type funcCommand struct {
	name        string
	description string
	run         func(ctx context.Context, args []string) error
}

func (c *funcCommand) Name() string        { return c.name }
func (c *funcCommand) Description() string { return c.description }

func (c *funcCommand) Run(ctx context.Context, args []string) error {
	return c.run(ctx, args)
}
