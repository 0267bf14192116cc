// Package validation evaluates declarative field rule tables over raw request records
package validation

import (
	"strings"
	"time"
)

// Record is a decoded JSON object; nested objects are map[string]any
type Record = map[string]any

// Violation is a single field-level failure
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is the ordered list of failures for one record
type Violations []Violation

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, violation := range v {
		parts = append(parts, violation.Field+": "+violation.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether path has a violation
func (v Violations) Has(path string) bool {
	for _, violation := range v {
		if violation.Field == path {
			return true
		}
	}
	return false
}

// Message returns the message reported for path, or ""
func (v Violations) Message(path string) string {
	for _, violation := range v {
		if violation.Field == path {
			return violation.Message
		}
	}
	return ""
}

// TestFunc inspects a value and returns its normalized form
type TestFunc func(c *Context, value any) (any, bool)

// Check pairs a predicate with the message reported when it fails
type Check struct {
	Test    TestFunc
	Message string
}

// FieldRule is the rule list for one dot-separated field path
type FieldRule struct {
	Path            string
	Required        bool
	RequiredMessage string
	Checks          []Check
}

// Ruleset is an ordered rule table; fields are evaluated in declaration order
type Ruleset struct {
	Name   string
	Fields []FieldRule
}

// Context is handed to every check
type Context struct {
	// Input is the raw record as received
	Input Record
	// Output holds values normalized so far
	Output  Record
	invalid map[string]bool
	v       *Validator
}

// Now returns the injected clock reading
func (c *Context) Now() time.Time {
	return c.v.now()
}

// IsValidID delegates to the injected storage-layer id check
func (c *Context) IsValidID(s string) bool {
	if c.v.IsValidID == nil {
		return s != ""
	}
	return c.v.IsValidID(s)
}

// Field returns the normalized value at path when that field passed its checks
func (c *Context) Field(path string) (any, bool) {
	if c.invalid[path] {
		return nil, false
	}
	value, ok := lookup(c.Output, path)
	if !ok || isEmpty(value) {
		return nil, false
	}
	return value, true
}

// RawField returns the unnormalized input value at path
func (c *Context) RawField(path string) (any, bool) {
	return lookup(c.Input, path)
}

// Validator evaluates rulesets against an injected clock and id format check
type Validator struct {
	Clock     func() time.Time
	IsValidID func(string) bool
}

// New creates a validator
func New(clock func() time.Time, isValidID func(string) bool) *Validator {
	return &Validator{Clock: clock, IsValidID: isValidID}
}

func (v *Validator) now() time.Time {
	if v.Clock == nil {
		return time.Now()
	}
	return v.Clock()
}

// Validate runs every field rule and returns the normalized record, or the
// violations collected across all fields (first failing check per field)
func (v *Validator) Validate(rs Ruleset, input Record) (Record, Violations) {
	if input == nil {
		input = Record{}
	}
	ctx := &Context{
		Input:   input,
		Output:  deepCopy(input),
		invalid: make(map[string]bool),
		v:       v,
	}

	var violations Violations
	for _, rule := range rs.Fields {
		value, ok := lookup(ctx.Output, rule.Path)
		if !ok || isEmpty(value) {
			if rule.Required {
				msg := rule.RequiredMessage
				if msg == "" {
					msg = rule.Path + " is required"
				}
				violations = append(violations, Violation{Field: rule.Path, Message: msg})
				ctx.invalid[rule.Path] = true
			}
			continue
		}

		failed := false
		for _, check := range rule.Checks {
			normalized, passed := check.Test(ctx, value)
			if !passed {
				violations = append(violations, Violation{Field: rule.Path, Message: check.Message})
				ctx.invalid[rule.Path] = true
				failed = true
				break
			}
			value = normalized
		}
		if !failed {
			assign(ctx.Output, rule.Path, value)
		}
	}

	if len(violations) > 0 {
		return nil, violations
	}
	return ctx.Output, nil
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok && s == "" {
		return true
	}
	return false
}

func lookup(record Record, path string) (any, bool) {
	var current any = record
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func assign(record Record, path string, value any) {
	keys := strings.Split(path, ".")
	m := record
	for _, key := range keys[:len(keys)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			return
		}
		m = next
	}
	m[keys[len(keys)-1]] = value
}

func deepCopy(in Record) Record {
	out := make(Record, len(in))
	for k, v := range in {
		switch t := v.(type) {
		case map[string]any:
			out[k] = deepCopy(t)
		case []any:
			out[k] = append([]any(nil), t...)
		default:
			out[k] = v
		}
	}
	return out
}
