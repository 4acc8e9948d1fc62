package ace

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/kbukum/ignitor/errors"
	"github.com/kbukum/ignitor/ioc"
)

type greet struct {
	got    []string
	loud   bool
	ctxSet bool
}

func (g *greet) Name() string        { return "greet" }
func (g *greet) Description() string { return "Print a greeting" }
func (g *greet) Run(ctx context.Context, args []string) error {
	g.got = args
	g.ctxSet = ctx != nil
	return nil
}
func (g *greet) Configure(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&g.loud, "loud", false, "shout")
	cmd.Args = cobra.MaximumNArgs(1)
}

func TestKernelAdd(t *testing.T) {
	k := NewKernel("ace", &bytes.Buffer{})
	if err := k.Add(&greet{}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	tests := []struct {
		name string
		cmd  Command
	}{
		{"duplicate", &greet{}},
		{"reserved list", CommandFunc("list", "", nil)},
		{"reserved help", CommandFunc("help", "", nil)},
		{"empty name", CommandFunc("", "", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := k.Add(tt.cmd); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestKernelExecute(t *testing.T) {
	out := &bytes.Buffer{}
	k := NewKernel("ace", out)
	g := &greet{}
	k.Add(g)

	if err := k.Execute(context.Background(), []string{"greet", "--loud", "virk"}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(g.got) != 1 || g.got[0] != "virk" || !g.loud || !g.ctxSet {
		t.Errorf("unexpected run %+v", g)
	}

	if err := k.Execute(context.Background(), []string{"greet", "a", "b"}); err == nil {
		t.Error("expected arg validation error")
	}
	if err := k.Execute(context.Background(), []string{"missing"}); err == nil {
		t.Error("expected unknown command error")
	}
}

func TestKernelCommandError(t *testing.T) {
	k := NewKernel("ace", &bytes.Buffer{})
	k.Add(CommandFunc("fail", "Always fails", func(ctx context.Context, args []string) error {
		return fmt.Errorf("nope")
	}))
	if err := k.Execute(context.Background(), []string{"fail"}); err == nil || err.Error() != "nope" {
		t.Errorf("expected command error, got %v", err)
	}
}

func TestListCommand(t *testing.T) {
	out := &bytes.Buffer{}
	k := NewKernel("ace", out)
	k.Add(&greet{})
	k.Add(CommandFunc("make:model", "Create a model", func(ctx context.Context, args []string) error { return nil }))

	if err := k.Execute(context.Background(), []string{ListCommand}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	s := out.String()
	for _, want := range []string{"COMMAND", "DESCRIPTION", "greet", "Print a greeting", "make:model"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in list output:\n%s", want, s)
		}
	}
	if strings.Index(s, "greet") > strings.Index(s, "make:model") {
		t.Error("expected commands sorted by name")
	}
}

func TestVersionFlag(t *testing.T) {
	out := &bytes.Buffer{}
	k := NewKernel("ace", out)
	if err := k.Execute(context.Background(), []string{"--version"}); err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(out.String(), "ace version") {
		t.Errorf("unexpected version output %q", out.String())
	}
}

type closer struct{ closed bool }

func (c *closer) Close() error {
	c.closed = true
	return nil
}

func TestRun(t *testing.T) {
	c := ioc.NewContainer()
	if err := NewProvider().Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	g := &greet{}
	c.Instance("App/Commands/Greet", g)
	cl := &closer{}
	c.Instance("resource", cl)

	kernel := ioc.MustResolve[*Kernel](c, ioc.Src.Ace)
	kernel.out = &bytes.Buffer{}

	if err := Run(context.Background(), c, []string{"App/Commands/Greet"}, []string{"greet", "world"}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(g.got) != 1 || g.got[0] != "world" {
		t.Errorf("expected greet to run, got %v", g.got)
	}
	if !cl.closed {
		t.Error("expected container to be closed after the command")
	}
}

func TestRunErrors(t *testing.T) {
	c := ioc.NewContainer()
	if err := Run(context.Background(), c, nil, nil); !errors.HasCode(err, errors.ErrCodeNotBound) {
		t.Errorf("expected NOT_BOUND without kernel, got %v", err)
	}

	NewProvider().Register(c)
	err := Run(context.Background(), c, []string{"App/Commands/Missing"}, nil)
	if !errors.HasCode(err, errors.ErrCodeNotBound) {
		t.Errorf("expected NOT_BOUND for missing command, got %v", err)
	}

	c.Instance("App/Commands/NotACommand", 42)
	err = Run(context.Background(), c, []string{"App/Commands/NotACommand"}, nil)
	if err == nil || !strings.Contains(err.Error(), "not a command") {
		t.Errorf("expected type error, got %v", err)
	}
}
