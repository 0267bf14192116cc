package validation

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var fieldValidator = validator.New()

// isoLayouts are the ISO-8601 shapes accepted for dates
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISODate parses an ISO-8601 date; values without a zone are taken as UTC
func ParseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Trim strips surrounding whitespace from strings
func Trim() Check {
	return sanitize(strings.TrimSpace)
}

// Upper upper-cases strings
func Upper() Check {
	return sanitize(strings.ToUpper)
}

// Lower lower-cases strings
func Lower() Check {
	return sanitize(strings.ToLower)
}

func sanitize(fn func(string) string) Check {
	return Check{Test: func(_ *Context, value any) (any, bool) {
		if s, ok := value.(string); ok {
			return fn(s), true
		}
		return value, true
	}}
}

// NotBlank fails on strings that are empty after trimming
func NotBlank(msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		s, ok := value.(string)
		return value, ok && strings.TrimSpace(s) != ""
	}}
}

// String requires a JSON string
func String(msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		_, ok := value.(string)
		return value, ok
	}}
}

// Numeric accepts numbers and numeric strings and normalizes to float64
func Numeric(msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		f, ok := toFloat(value)
		return f, ok
	}}
}

// Integer accepts whole numbers and normalizes to int
func Integer(msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		f, ok := toFloat(value)
		if !ok || f != math.Trunc(f) {
			return value, false
		}
		return int(f), true
	}}
}

// Boolean accepts true/false and their common string forms
func Boolean(msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		switch v := value.(type) {
		case bool:
			return v, true
		case string:
			switch v {
			case "true", "1":
				return true, true
			case "false", "0":
				return false, true
			}
		case float64:
			if v == 0 || v == 1 {
				return v == 1, true
			}
		}
		return value, false
	}}
}

// Date parses an ISO-8601 string into time.Time
func Date(msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		switch v := value.(type) {
		case time.Time:
			return v, true
		case string:
			t, ok := ParseISODate(v)
			return t, ok
		}
		return value, false
	}}
}

// Min requires a normalized number to be >= min
func Min(min float64, msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		f, ok := toFloat(value)
		return value, ok && f >= min
	}}
}

// Max requires a normalized number to be <= max
func Max(max float64, msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		f, ok := toFloat(value)
		return value, ok && f <= max
	}}
}

// Length bounds string length in characters; max <= 0 means unbounded
func Length(min, max int, msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		s, ok := value.(string)
		if !ok {
			return value, false
		}
		n := utf8.RuneCountInString(s)
		return value, n >= min && (max <= 0 || n <= max)
	}}
}

// Matches requires a string to match pattern
func Matches(pattern *regexp.Regexp, msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		s, ok := value.(string)
		return value, ok && pattern.MatchString(s)
	}}
}

// OneOf requires a string member of allowed
func OneOf(allowed []string, msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		s, ok := value.(string)
		return value, ok && contains(allowed, s)
	}}
}

// Array requires a JSON array of strings and normalizes it to []string
func Array(msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		switch v := value.(type) {
		case []string:
			return v, true
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return v, false
				}
				out = append(out, s)
			}
			return out, true
		}
		return value, false
	}}
}

// NonEmpty requires a normalized array with at least one element
func NonEmpty(msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		switch v := value.(type) {
		case []string:
			return v, len(v) > 0
		case []any:
			return v, len(v) > 0
		}
		return value, false
	}}
}

// SubsetOf requires every array element to be a member of allowed
func SubsetOf(allowed []string, msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		items, ok := value.([]string)
		if !ok {
			return value, false
		}
		for _, item := range items {
			if !contains(allowed, item) {
				return value, false
			}
		}
		return value, true
	}}
}

// After requires a date strictly later than the already validated other field.
// It passes when the other field is absent or failed its own checks.
func After(other, msg string) Check {
	return Check{Message: msg, Test: func(c *Context, value any) (any, bool) {
		t, ok := value.(time.Time)
		if !ok {
			return value, false
		}
		ref, present := c.Field(other)
		if !present {
			return value, true
		}
		refTime, ok := ref.(time.Time)
		if !ok {
			return value, true
		}
		return value, t.After(refTime)
	}}
}

// Future requires a date strictly after the injected clock
func Future(msg string) Check {
	return FutureUnless("", "", msg)
}

// FutureUnless is Future, skipped when the raw input field equals value
func FutureUnless(field, equals, msg string) Check {
	return Check{Message: msg, Test: func(c *Context, value any) (any, bool) {
		t, ok := value.(time.Time)
		if !ok {
			return value, false
		}
		if field != "" {
			if raw, present := c.RawField(field); present && raw == equals {
				return value, true
			}
		}
		return value, t.After(c.Now())
	}}
}

// ValidID checks a string against the injected storage id format
func ValidID(msg string) Check {
	return Check{Message: msg, Test: func(c *Context, value any) (any, bool) {
		s, ok := value.(string)
		return value, ok && c.IsValidID(s)
	}}
}

// Email checks address syntax with go-playground/validator
func Email(msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		s, ok := value.(string)
		return value, ok && fieldValidator.Var(s, "required,email") == nil
	}}
}

const passwordSpecials = "@$!%*?&"

// StrongPassword requires 8+ characters drawn from letters, digits and @$!%*?&,
// with at least one lower-case, upper-case, digit and special character
func StrongPassword(msg string) Check {
	return Check{Message: msg, Test: func(_ *Context, value any) (any, bool) {
		s, ok := value.(string)
		if !ok || len(s) < 8 {
			return value, false
		}
		var lower, upper, digit, special bool
		for _, r := range s {
			switch {
			case r >= 'a' && r <= 'z':
				lower = true
			case r >= 'A' && r <= 'Z':
				upper = true
			case r >= '0' && r <= '9':
				digit = true
			case strings.ContainsRune(passwordSpecials, r):
				special = true
			default:
				return value, false
			}
		}
		return value, lower && upper && digit && special
	}}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
