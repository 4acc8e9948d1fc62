// Command ignite boots the demo application. "ignite serve" starts the
// HTTP server; any other arguments run through the ace command kernel.
package main

import (
	"context"
	"os"

	"github.com/kbukum/ignitor/ignitor"
	"github.com/kbukum/ignitor/logger"
)

func main() {
	err := run(context.Background(), os.Args[1:])
	os.Exit(exitCode(logger.WithComponent("ignite"), err))
}

func run(ctx context.Context, args []string) error {
	root := os.Getenv("IGNITOR_APP_ROOT")
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		root = wd
	}

	ig := ignitor.New(ignitor.WithSummary(os.Stderr)).SetAppRoot(root)
	if len(args) > 0 && args[0] == "serve" {
		return ig.FireHTTPServer(ctx)
	}
	return ig.FireAce(ctx, args)
}

// exitCode logs err and returns the process exit code for it.
func exitCode(log *logger.Logger, err error) int {
	if err == nil {
		return 0
	}
	log.WithError(err).Error("ignite failed")
	return 1
}
