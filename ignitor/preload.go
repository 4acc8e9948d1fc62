package ignitor

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/ignitor/errors"
	"github.com/kbukum/ignitor/loader"
	"github.com/kbukum/ignitor/logger"
	"github.com/kbukum/ignitor/observability"
)

// PreloadFile is a script run after the providers have booted. Path is
// relative to the app root.
type PreloadFile struct {
	Path     string
	Optional bool
}

func defaultPreloads() []PreloadFile {
	return []PreloadFile{
		{Path: "start/routes"},
		{Path: "start/events", Optional: true},
		{Path: "start/socket", Optional: true},
		{Path: "start/kernel", Optional: true},
		{Path: "start/wsKernel", Optional: true},
	}
}

// PreLoad appends a required preload file.
func (ig *Ignitor) PreLoad(path string) *Ignitor {
	return ig.insert(-1, PreloadFile{Path: path})
}

// PreLoadOptional appends a preload file that is skipped when missing.
func (ig *Ignitor) PreLoadOptional(path string) *Ignitor {
	return ig.insert(-1, PreloadFile{Path: path, Optional: true})
}

// PreLoadAfter inserts path right after the first preload file matching
// anchor, or appends it when nothing matches.
func (ig *Ignitor) PreLoadAfter(anchor, path string) *Ignitor {
	i := ig.indexOf(anchor)
	if i < 0 {
		return ig.PreLoad(path)
	}
	return ig.insert(i+1, PreloadFile{Path: path})
}

// PreLoadBefore inserts path right before the first preload file matching
// anchor, or appends it when nothing matches.
func (ig *Ignitor) PreLoadBefore(anchor, path string) *Ignitor {
	i := ig.indexOf(anchor)
	if i < 0 {
		return ig.PreLoad(path)
	}
	return ig.insert(i, PreloadFile{Path: path})
}

// PreloadFiles returns a copy of the preload list.
func (ig *Ignitor) PreloadFiles() []PreloadFile {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	return append([]PreloadFile(nil), ig.preloads...)
}

func (ig *Ignitor) insert(i int, f PreloadFile) *Ignitor {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	if i < 0 || i > len(ig.preloads) {
		i = len(ig.preloads)
	}
	ig.preloads = append(ig.preloads, PreloadFile{})
	copy(ig.preloads[i+1:], ig.preloads[i:])
	ig.preloads[i] = f
	return ig
}

func (ig *Ignitor) indexOf(anchor string) int {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	for i, f := range ig.preloads {
		if samePath(f.Path, anchor) {
			return i
		}
	}
	return -1
}

// samePath compares preload paths with and without the source extension.
func samePath(a, b string) bool {
	if a == b {
		return true
	}
	return strings.TrimSuffix(a, loader.SourceExt) == strings.TrimSuffix(b, loader.SourceExt)
}

// preload runs files in order. A missing optional script is skipped.
func (ig *Ignitor) preload(ctx context.Context, r *run, files []PreloadFile) error {
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		script, ok := ig.registry.Script(f.Path)
		if !ok {
			if f.Optional {
				r.summary.trackPreload(f.Path, PreloadSkipped)
				r.log.Debug("Optional preload file not found", logger.Fields(logger.FieldPath, f.Path))
				continue
			}
			r.summary.trackPreload(f.Path, PreloadFailed)
			return errors.PreloadMissing(f.Path)
		}

		spanCtx, span := observability.StartSpan(ctx, observability.SpanPreload,
			attribute.String(observability.AttrPath, f.Path),
		)
		err := script(spanCtx, ig.container)
		observability.EndSpan(span, err)
		if err != nil {
			r.summary.trackPreload(f.Path, PreloadFailed)
			return errors.PreloadFailed(f.Path, err)
		}

		r.summary.trackPreload(f.Path, PreloadLoaded)
		r.log.Debug("Preload file loaded", logger.Fields(logger.FieldPath, f.Path))
	}
	return nil
}
