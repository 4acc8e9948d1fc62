package ignitor

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// PreloadStatus is the outcome of one preload file.
type PreloadStatus string

const (
	PreloadLoaded  PreloadStatus = "loaded"
	PreloadSkipped PreloadStatus = "skipped"
	PreloadFailed  PreloadStatus = "failed"
)

// PhaseInfo records one pipeline phase.
type PhaseInfo struct {
	Name     string
	Duration time.Duration
	Err      error
}

// PreloadInfo records one preload file.
type PreloadInfo struct {
	Path   string
	Status PreloadStatus
}

// Summary tracks one fire operation: the phases it ran, the providers it
// registered and the preload files it loaded.
type Summary struct {
	mu        sync.Mutex
	action    string
	duration  time.Duration
	err       error
	phases    []PhaseInfo
	providers []string
	preloads  []PreloadInfo
}

func newSummary(action string) *Summary {
	return &Summary{action: action}
}

// Action returns the fire action the summary belongs to.
func (s *Summary) Action() string { return s.action }

// Duration returns the total boot time.
func (s *Summary) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// Err returns the error the boot stopped with, if any.
func (s *Summary) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Phases returns the phases run so far, in order.
func (s *Summary) Phases() []PhaseInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PhaseInfo(nil), s.phases...)
}

// Providers returns the registered provider identifiers, in order.
func (s *Summary) Providers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.providers...)
}

// Preloads returns the preload outcomes, in order.
func (s *Summary) Preloads() []PreloadInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PreloadInfo(nil), s.preloads...)
}

func (s *Summary) trackPhase(name string, d time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phases = append(s.phases, PhaseInfo{Name: name, Duration: d, Err: err})
}

func (s *Summary) trackProviders(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = append(s.providers, ids...)
}

func (s *Summary) trackPreload(path string, status PreloadStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preloads = append(s.preloads, PreloadInfo{Path: path, Status: status})
}

func (s *Summary) finish(d time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duration = d
	s.err = err
}

// Write prints the summary as a tree.
func (s *Summary) Write(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprintf(w, "\n")
	if s.err != nil {
		fmt.Fprintf(w, "❌ %s failed after %.2fs: %v\n\n", s.action, s.duration.Seconds(), s.err)
	} else {
		fmt.Fprintf(w, "🚀 %s booted in %.2fs\n\n", s.action, s.duration.Seconds())
	}

	fmt.Fprintf(w, "⏱️  Phases\n")
	for i, p := range s.phases {
		icon := "✅"
		if p.Err != nil {
			icon = "❌"
		}
		fmt.Fprintf(w, "   %s %s %s (%s)\n", treePrefix(i, len(s.phases)), icon, p.Name, p.Duration.Round(time.Microsecond))
	}

	fmt.Fprintf(w, "\n📦 Providers (%d)\n", len(s.providers))
	if len(s.providers) == 0 {
		fmt.Fprintf(w, "   └── No providers registered\n")
	}
	for i, id := range s.providers {
		fmt.Fprintf(w, "   %s %s\n", treePrefix(i, len(s.providers)), id)
	}

	if len(s.preloads) > 0 {
		fmt.Fprintf(w, "\n📄 Preloads\n")
		for i, p := range s.preloads {
			fmt.Fprintf(w, "   %s %s %s\n", treePrefix(i, len(s.preloads)), preloadIcon(p.Status), p.Path)
		}
	}
	fmt.Fprintf(w, "\n")
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func preloadIcon(status PreloadStatus) string {
	switch status {
	case PreloadLoaded:
		return "✅"
	case PreloadSkipped:
		return "⏸️"
	default:
		return "❌"
	}
}
