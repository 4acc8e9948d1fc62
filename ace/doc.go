// Package ace runs the application's console commands.
//
// Commands are container bindings listed in the app manifest under
// "commands". The ace start action resolves each binding, adds it to the
// Kernel and executes the cobra root command with the process arguments:
//
//	type Greet struct{}
//
//	func (Greet) Name() string        { return "greet" }
//	func (Greet) Description() string { return "Print a greeting" }
//	func (Greet) Run(ctx context.Context, args []string) error { ... }
//
// The kernel always carries a "list" command and a --version flag.
package ace
