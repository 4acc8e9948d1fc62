// Package helpers resolves the conventional directories of an application
// relative to its root.
package helpers

import "path/filepath"

// Helpers builds paths under the app root.
type Helpers struct {
	root string
}

// New creates helpers rooted at appRoot.
func New(appRoot string) *Helpers {
	return &Helpers{root: filepath.Clean(appRoot)}
}

// AppRoot returns the app root joined with paths.
func (h *Helpers) AppRoot(paths ...string) string {
	return h.join("", paths)
}

// PublicPath returns a path under the public directory.
func (h *Helpers) PublicPath(paths ...string) string { return h.join("public", paths) }

// ConfigPath returns a path under the config directory.
func (h *Helpers) ConfigPath(paths ...string) string { return h.join("config", paths) }

// ResourcesPath returns a path under the resources directory.
func (h *Helpers) ResourcesPath(paths ...string) string { return h.join("resources", paths) }

// ViewsPath returns a path under resources/views.
func (h *Helpers) ViewsPath(paths ...string) string {
	return h.join(filepath.Join("resources", "views"), paths)
}

// DatabasePath returns a path under the database directory.
func (h *Helpers) DatabasePath(paths ...string) string { return h.join("database", paths) }

// MigrationsPath returns a path under database/migrations.
func (h *Helpers) MigrationsPath(paths ...string) string {
	return h.join(filepath.Join("database", "migrations"), paths)
}

// SeedsPath returns a path under database/seeds.
func (h *Helpers) SeedsPath(paths ...string) string {
	return h.join(filepath.Join("database", "seeds"), paths)
}

// TmpPath returns a path under the tmp directory.
func (h *Helpers) TmpPath(paths ...string) string { return h.join("tmp", paths) }

func (h *Helpers) join(dir string, paths []string) string {
	parts := make([]string, 0, len(paths)+2)
	parts = append(parts, h.root)
	if dir != "" {
		parts = append(parts, dir)
	}
	parts = append(parts, paths...)
	return filepath.Join(parts...)
}
