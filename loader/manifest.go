package loader

import (
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/ignitor/errors"
	"github.com/kbukum/ignitor/validation"
)

// DefaultAppFile is the app manifest path used when none is configured.
const DefaultAppFile = "start/app"

// manifestExts are tried in order when the app file has no data extension.
var manifestExts = []string{".yaml", ".yml", ".json"}

// Manifest is the app file: the providers to register and the aliases to
// set on the container.
type Manifest struct {
	Providers    []string          `yaml:"providers" validate:"dive,required"`
	AceProviders []string          `yaml:"aceProviders" validate:"dive,required"`
	Aliases      map[string]string `yaml:"aliases" validate:"dive,keys,required,endkeys,required"`
	Commands     []string          `yaml:"commands" validate:"dive,required"`
}

// LoadManifest loads the app manifest for appFile, relative to root. A
// manifest func registered on r under appFile wins over a file on disk.
// Both are evaluated on every call.
func LoadManifest(root, appFile string, r *Registry) (*Manifest, error) {
	if appFile == "" {
		appFile = DefaultAppFile
	}
	rel := appFile
	if filepath.IsAbs(appFile) {
		if p, err := filepath.Rel(root, appFile); err == nil && !strings.HasPrefix(p, "..") {
			rel = p
		}
	}

	if r != nil {
		if fn, ok := r.Manifest(rel); ok {
			m := fn()
			if m == nil {
				m = &Manifest{}
			}
			return checkManifest(appFile, m)
		}
	}

	for _, candidate := range manifestCandidates(root, appFile) {
		data, err := os.ReadFile(candidate)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.InvalidManifest(appFile, err)
		}
		m := &Manifest{}
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, errors.InvalidManifest(appFile, err)
		}
		return checkManifest(appFile, m)
	}
	return nil, errors.ModuleNotFound(appFile)
}

func checkManifest(appFile string, m *Manifest) (*Manifest, error) {
	if err := validation.Validate(m); err != nil {
		return nil, errors.InvalidManifest(appFile, err)
	}
	if m.Aliases == nil {
		m.Aliases = map[string]string{}
	}
	return m, nil
}

func manifestCandidates(root, appFile string) []string {
	p := appFile
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	switch filepath.Ext(p) {
	case ".yaml", ".yml", ".json":
		return []string{p}
	case SourceExt:
		p = strings.TrimSuffix(p, SourceExt)
	}
	candidates := make([]string, 0, len(manifestExts))
	for _, ext := range manifestExts {
		candidates = append(candidates, p+ext)
	}
	return candidates
}
