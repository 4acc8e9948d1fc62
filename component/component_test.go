package component

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/ignitor/ioc"
)

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.events != nil {
		*m.events = append(*m.events, "start "+m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.events != nil {
		*m.events = append(*m.events, "stop "+m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health { return m.health }

type describedComponent struct{ mockComponent }

func (d *describedComponent) Describe() Description {
	return Description{Type: "server", Details: "0.0.0.0:3333"}
}

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&mockComponent{name: "http"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "http"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
	if r.Get("http") == nil || r.Get("missing") != nil {
		t.Error("unexpected Get results")
	}
	if len(r.All()) != 1 {
		t.Errorf("expected 1 component, got %d", len(r.All()))
	}
}

func TestStartStopOrder(t *testing.T) {
	r := NewRegistry()
	events := []string{}
	r.Register(&mockComponent{name: "queue", events: &events})
	r.Register(&describedComponent{mockComponent{name: "http", events: &events}})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if !r.Started("http") || !r.Started("queue") {
		t.Error("expected components to be started")
	}
	// A second StartAll does not restart running components.
	r.StartAll(context.Background())

	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	want := "start queue,start http,stop http,stop queue"
	if strings.Join(events, ",") != want {
		t.Errorf("expected %s, got %v", want, events)
	}
	if r.Started("http") {
		t.Error("expected http to be stopped")
	}
}

func TestStartAllFailure(t *testing.T) {
	r := NewRegistry()
	events := []string{}
	r.Register(&mockComponent{name: "a", events: &events})
	r.Register(&mockComponent{name: "b", events: &events, startErr: fmt.Errorf("port in use")})
	r.Register(&mockComponent{name: "c", events: &events})

	err := r.StartAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to start b: port in use") {
		t.Fatalf("unexpected error %v", err)
	}
	if r.Started("c") {
		t.Error("components after the failure must not start")
	}

	// Close stops only what started.
	events = events[:0]
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if strings.Join(events, ",") != "stop a" {
		t.Errorf("expected only a to stop, got %v", events)
	}
}

func TestStopAllCollectsErrors(t *testing.T) {
	r := NewRegistry()
	r.SetStopTimeout(time.Second)
	r.Register(&mockComponent{name: "a", stopErr: fmt.Errorf("a stuck")})
	r.Register(&mockComponent{name: "b", stopErr: fmt.Errorf("b stuck")})
	r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if err == nil {
		t.Fatal("expected stop errors")
	}
	for _, want := range []string{"failed to stop a", "failed to stop b"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
	if r.Started("a") || r.Started("b") {
		t.Error("components are marked stopped even on error")
	}
}

func TestHealthAll(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockComponent{name: "a", health: Health{Name: "a", Status: StatusHealthy}})
	r.Register(&mockComponent{name: "b", health: Health{Name: "b", Status: StatusDegraded}})

	results := r.HealthAll(context.Background())
	if len(results) != 2 || results[1].Status != StatusDegraded {
		t.Errorf("unexpected health %v", results)
	}
}

func TestProvider(t *testing.T) {
	c := ioc.NewContainer()
	if err := NewProvider().Register(c); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	r1, err := FromContainer(c)
	if err != nil {
		t.Fatalf("FromContainer failed: %v", err)
	}
	r2, _ := FromContainer(c)
	if r1 != r2 {
		t.Error("expected a shared registry")
	}

	events := []string{}
	r1.Register(&mockComponent{name: "x", events: &events})
	r1.StartAll(context.Background())
	if err := c.Close(); err != nil {
		t.Fatalf("container Close failed: %v", err)
	}
	if len(events) != 2 || events[1] != "stop x" {
		t.Errorf("expected container Close to stop components, got %v", events)
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name     string
		statuses []HealthStatus
		want     HealthStatus
	}{
		{"none", nil, StatusHealthy},
		{"healthy", []HealthStatus{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"degraded", []HealthStatus{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []HealthStatus{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := make([]Health, 0, len(tt.statuses))
			for _, s := range tt.statuses {
				reports = append(reports, Health{Status: s})
			}
			if got := Overall(reports); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
