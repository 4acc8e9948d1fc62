package hooks

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/kbukum/ignitor/errors"
)

func record(events *[]string, name string) Hook {
	return func(ctx context.Context) error {
		*events = append(*events, name)
		return nil
	}
}

func TestFireInRegistrationOrder(t *testing.T) {
	r := New()
	events := []string{}
	r.Before.ProvidersRegistered(record(&events, "before")).ProvidersRegistered(record(&events, "before 1"))
	r.After.ProvidersRegistered(record(&events, "after")).ProvidersRegistered(record(&events, "after 1"))

	err := r.Around(context.Background(), ProvidersRegistered, func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatalf("Around failed: %v", err)
	}
	want := "before,before 1,after,after 1"
	if strings.Join(events, ",") != want {
		t.Errorf("expected %s, got %v", want, events)
	}
}

func TestAroundInterleavedRegistration(t *testing.T) {
	r := New()
	events := []string{}
	// Registration interleaves sides and phases; firing order must not.
	r.After.ProvidersBooted(record(&events, "C"))
	r.Before.ProvidersBooted(record(&events, "A"))
	r.After.Preloading(record(&events, "other phase"))
	r.After.ProvidersBooted(record(&events, "D"))
	r.Before.ProvidersBooted(record(&events, "B"))

	r.Around(context.Background(), ProvidersBooted, func(ctx context.Context) error {
		events = append(events, "boot")
		return nil
	})
	want := "A,B,boot,C,D"
	if strings.Join(events, ",") != want {
		t.Errorf("expected %s, got %v", want, events)
	}
}

func TestPhasesAreIsolated(t *testing.T) {
	r := New()
	events := []string{}
	r.Before.ProvidersRegistered(record(&events, "registered")).
		ProvidersBooted(record(&events, "booted")).
		Preloading(record(&events, "preloading"))

	if err := r.Before.Fire(context.Background(), ProvidersBooted); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if len(events) != 1 || events[0] != "booted" {
		t.Errorf("expected only booted hook, got %v", events)
	}
	for _, p := range Phases {
		if r.Before.Len(p) != 1 {
			t.Errorf("expected one hook for %s, got %d", p, r.Before.Len(p))
		}
	}
}

func TestHookFailureStopsFiring(t *testing.T) {
	r := New()
	events := []string{}
	r.Before.Preloading(record(&events, "first"))
	r.Before.Preloading(func(ctx context.Context) error { return fmt.Errorf("hook broke") })
	r.Before.Preloading(record(&events, "never"))
	r.After.Preloading(record(&events, "after never"))

	ran := false
	err := r.Around(context.Background(), Preloading, func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err == nil {
		t.Fatal("expected hook error")
	}
	if !errors.HasCode(err, errors.ErrCodeHookFailed) {
		t.Errorf("expected HOOK_FAILED, got %v", err)
	}
	if !strings.Contains(err.Error(), "before.preloading hook 1 failed") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if ran {
		t.Error("phase action must not run after a failed before hook")
	}
	if len(events) != 1 {
		t.Errorf("expected only the first hook to run, got %v", events)
	}
}

func TestAroundActionFailureSkipsAfter(t *testing.T) {
	r := New()
	events := []string{}
	r.After.ProvidersRegistered(record(&events, "after"))

	err := r.Around(context.Background(), ProvidersRegistered, func(ctx context.Context) error {
		return fmt.Errorf("register failed")
	})
	if err == nil || err.Error() != "register failed" {
		t.Errorf("expected action error unchanged, got %v", err)
	}
	if len(events) != 0 {
		t.Errorf("after hooks must not run, got %v", events)
	}
}

func TestFireCancelledContext(t *testing.T) {
	r := New()
	events := []string{}
	r.Before.ProvidersBooted(record(&events, "x"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Before.Fire(ctx, ProvidersBooted); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no hooks to run, got %v", events)
	}
}

func TestHookRegisteredWhileFiringWaits(t *testing.T) {
	r := New()
	events := []string{}
	r.Before.ProvidersBooted(func(ctx context.Context) error {
		r.Before.ProvidersBooted(record(&events, "late"))
		return nil
	})

	r.Before.Fire(context.Background(), ProvidersBooted)
	if len(events) != 0 {
		t.Errorf("late hook should not run in the same fire, got %v", events)
	}
	r.Before.Fire(context.Background(), ProvidersBooted)
	if len(events) != 1 {
		t.Errorf("late hook should run on the next fire, got %v", events)
	}
}

func TestClear(t *testing.T) {
	r := New()
	r.Before.ProvidersBooted(func(ctx context.Context) error { return nil })
	r.After.Preloading(func(ctx context.Context) error { return nil })
	r.Clear()
	if r.Before.Len(ProvidersBooted) != 0 || r.After.Len(Preloading) != 0 {
		t.Error("expected registry to be empty after Clear")
	}
}

func TestDefaultRegistry(t *testing.T) {
	defer Clear()
	events := []string{}
	Before.ProvidersRegistered(record(&events, "global"))
	if Default.Before.Len(ProvidersRegistered) != 1 {
		t.Fatal("expected package-level Before to feed the default registry")
	}
	Default.Before.Fire(context.Background(), ProvidersRegistered)
	if len(events) != 1 {
		t.Errorf("expected global hook to fire, got %v", events)
	}
	Clear()
	if Before.Len(ProvidersRegistered) != 0 {
		t.Error("expected Clear to empty the default registry")
	}
	if Before.Side() != "before" || After.Side() != "after" {
		t.Error("unexpected side names")
	}
}
