package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/ignitor/errors"
)

// FieldError is one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string { return e.Field + ": " + e.Message }

// Checker collects failed checks for one config section. Field names are
// reported as "section.field".
type Checker struct {
	section string
	fields  []FieldError
}

// Section starts a checker for the named config section. An empty name
// reports bare field names.
func Section(name string) *Checker {
	return &Checker{section: name}
}

// Fail records a failed check on field.
func (c *Checker) Fail(field, message string) *Checker {
	if c.section != "" {
		field = c.section + "." + field
	}
	c.fields = append(c.fields, FieldError{Field: field, Message: message})
	return c
}

// Check fails field with message unless ok.
func (c *Checker) Check(ok bool, field, message string) *Checker {
	if !ok {
		c.Fail(field, message)
	}
	return c
}

// Required fails field when value is blank.
func (c *Checker) Required(field, value string) *Checker {
	return c.Check(strings.TrimSpace(value) != "", field, "is required")
}

// Between fails field when value is outside [lo, hi].
func (c *Checker) Between(field string, value, lo, hi int) *Checker {
	return c.Check(value >= lo && value <= hi, field, fmt.Sprintf("must be between %d and %d", lo, hi))
}

// NonNegative fails field when value is below zero.
func (c *Checker) NonNegative(field string, value int) *Checker {
	return c.Check(value >= 0, field, "must not be negative")
}

// OneOf fails field when value is not in allowed.
func (c *Checker) OneOf(field, value string, allowed ...string) *Checker {
	return c.Check(slices.Contains(allowed, value), field, "must be one of: "+strings.Join(allowed, ", "))
}

// Fields returns the failed checks in the order they were recorded.
func (c *Checker) Fields() []FieldError {
	return append([]FieldError(nil), c.fields...)
}

// Err returns an invalid-input error listing every failed check, or nil.
func (c *Checker) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return newError(c.fields)
}

func newError(fields []FieldError) *errors.Error {
	messages := make([]string, len(fields))
	for i, f := range fields {
		messages[i] = f.String()
	}
	return errors.Validation(strings.Join(messages, "; ")).WithDetail("fields", fields)
}
