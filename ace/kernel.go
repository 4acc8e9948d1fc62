package ace

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kbukum/ignitor/version"
)

// ListCommand is the name of the built-in command listing.
const ListCommand = "list"

// Kernel holds the registered commands and executes them through cobra.
type Kernel struct {
	name     string
	out      io.Writer
	mu       sync.RWMutex
	commands map[string]Command
}

// NewKernel creates a kernel for the binary name, writing to out. A nil out
// writes to stdout.
func NewKernel(name string, out io.Writer) *Kernel {
	if out == nil {
		out = os.Stdout
	}
	return &Kernel{name: name, out: out, commands: make(map[string]Command)}
}

// Add registers cmd. Names must be unique and must not shadow built-ins.
func (k *Kernel) Add(cmd Command) error {
	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("ace: command without a name (%T)", cmd)
	}
	if name == ListCommand || name == "help" {
		return fmt.Errorf("ace: command %q is reserved", name)
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if _, exists := k.commands[name]; exists {
		return fmt.Errorf("ace: command %q already registered", name)
	}
	k.commands[name] = cmd
	return nil
}

// Commands returns the registered commands sorted by name.
func (k *Kernel) Commands() []Command {
	k.mu.RLock()
	defer k.mu.RUnlock()

	result := make([]Command, 0, len(k.commands))
	for _, cmd := range k.commands {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}

// Root builds the cobra root command with every registered command.
func (k *Kernel) Root() *cobra.Command {
	root := &cobra.Command{
		Use:           k.name,
		Short:         k.name + " console",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(k.out)
	root.SetErr(k.out)

	root.AddCommand(&cobra.Command{
		Use:   ListCommand,
		Short: "List available commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k.printList(cmd.OutOrStdout())
			return nil
		},
	})

	for _, c := range k.Commands() {
		root.AddCommand(k.wrap(c))
	}
	return root
}

func (k *Kernel) wrap(c Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   c.Name(),
		Short: c.Description(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context(), args)
		},
	}
	if cfg, ok := c.(Configurer); ok {
		cfg.Configure(cmd)
	}
	return cmd
}

func (k *Kernel) printList(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Command", "Description"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, c := range k.Commands() {
		table.Append([]string{c.Name(), c.Description()})
	}
	table.Render()
}

// Execute runs the command named by args.
func (k *Kernel) Execute(ctx context.Context, args []string) error {
	root := k.Root()
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
