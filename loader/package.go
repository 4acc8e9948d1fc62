package loader

import (
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/ignitor/errors"
	"github.com/kbukum/ignitor/ioc"
)

// DefaultPackageFile is the package descriptor read from the app root.
const DefaultPackageFile = "package.json"

// DefaultAutoloadDir is the directory bound to the default namespace.
const DefaultAutoloadDir = "./app"

// Package is the subset of the package descriptor the bootstrapper reads.
type Package struct {
	Name     string            `yaml:"name"`
	Version  string            `yaml:"version"`
	Autoload map[string]string `yaml:"autoload"`
}

// LoadPackage reads the package descriptor name under root. A missing file
// yields an empty descriptor.
func LoadPackage(root, name string) (*Package, error) {
	if name == "" {
		name = DefaultPackageFile
	}
	p := name
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return &Package{}, nil
		}
		return nil, errors.InvalidManifest(name, err)
	}
	pkg := &Package{}
	if err := yaml.Unmarshal(data, pkg); err != nil {
		return nil, errors.InvalidManifest(name, err)
	}
	return pkg, nil
}

// Autoloads returns the autoload map verbatim when it has entries, or the
// default {App: ./app} map otherwise. The two are never merged.
func (p *Package) Autoloads() map[string]string {
	if p == nil || len(p.Autoload) == 0 {
		return map[string]string{ioc.DefaultNamespace: DefaultAutoloadDir}
	}
	out := make(map[string]string, len(p.Autoload))
	for k, v := range p.Autoload {
		out[k] = v
	}
	return out
}
