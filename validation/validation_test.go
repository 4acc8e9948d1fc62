package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/ignitor/errors"
)

func TestCheckerCollectsErrors(t *testing.T) {
	c := Section("http").
		Required("host", "  ").
		Between("port", 70000, 0, 65535).
		OneOf("mode", "debug", "release", "test").
		NonNegative("read_timeout", -1)
	if len(c.Fields()) != 4 {
		t.Fatalf("expected 4 failures, got %v", c.Fields())
	}

	err := c.Err()
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	for _, want := range []string{
		"http.host: is required",
		"http.port: must be between 0 and 65535",
		"http.mode: must be one of: release, test",
		"http.read_timeout: must not be negative",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestCheckerPasses(t *testing.T) {
	c := Section("").Required("host", "localhost").Between("port", 3333, 0, 65535).Check(true, "x", "never")
	if len(c.Fields()) != 0 {
		t.Errorf("expected no failures, got %v", c.Fields())
	}
	if err := c.Err(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestCheckerWithoutSection(t *testing.T) {
	err := Section("").Fail("PORT", "must be a number").Err()
	if err == nil || err.Error() != "PORT: must be a number" {
		t.Errorf("unexpected error %v", err)
	}
}

type sample struct {
	Providers []string          `yaml:"providers" validate:"dive,required"`
	Name      string            `mapstructure:"app_name" validate:"required"`
	Mode      string            `json:"mode" validate:"omitempty,oneof=release debug"`
	Aliases   map[string]string `validate:"dive,keys,required,endkeys,required"`
}

func TestValidateStructTags(t *testing.T) {
	ok := sample{Providers: []string{"a"}, Name: "demo", Mode: "debug"}
	if err := Validate(ok); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	bad := sample{Providers: []string{"a", ""}, Mode: "loud"}
	err := Validate(bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"providers[1]: is required", "app_name: is required", "mode: must be one of: release debug"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}

	appErr, ok2 := errors.As(err)
	if !ok2 {
		t.Fatal("expected *errors.Error")
	}
	fields, _ := appErr.Details["fields"].([]FieldError)
	if len(fields) != 3 {
		t.Errorf("expected 3 field errors, got %v", appErr.Details["fields"])
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"AceProviders": "ace_providers",
		"Name":         "name",
		"port":         "port",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
