// Package form implements the field-rule validation layer and identifier
// generation used by the product management forms. Validation failures are
// data, never errors: handlers render them as per-field messages.
package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RuleSpec declares the constraints for one draft field. Rules are
// scalar-type-specific: a pattern rule constrains a string, numeric bounds
// constrain a number, and mixing the two on one rule is a caller defect
// rejected by Compile.
type RuleSpec struct {
	Field     string
	Required  bool
	Pattern   string
	Message   string // shown when the pattern fails; a generic message otherwise
	Min       *float64
	Max       *float64
	MinLength *int
	MaxLength *int
}

type rule struct {
	spec RuleSpec
	re   *regexp.Regexp
}

// RuleSet is a compiled, ordered rule list ready for validation.
type RuleSet struct {
	rules []rule
}

// Result maps a field name to its first validation error. An absent key
// means the field is valid.
type Result map[string]string

// Valid reports whether the result carries no errors.
func (r Result) Valid() bool { return len(r) == 0 }

// Compile checks rule specs for caller defects and compiles their patterns.
// Malformed rules fail here, once, instead of surfacing mid-validation.
func Compile(specs []RuleSpec) (*RuleSet, error) {
	rs := &RuleSet{rules: make([]rule, 0, len(specs))}
	for _, spec := range specs {
		if spec.Field == "" {
			return nil, fmt.Errorf("form: rule with empty field name")
		}
		if spec.Pattern != "" && (spec.Min != nil || spec.Max != nil) {
			return nil, fmt.Errorf("form: rule for %q mixes pattern and numeric bounds", spec.Field)
		}
		if (spec.Min != nil || spec.Max != nil) && (spec.MinLength != nil || spec.MaxLength != nil) {
			return nil, fmt.Errorf("form: rule for %q mixes numeric and length bounds", spec.Field)
		}
		r := rule{spec: spec}
		if spec.Pattern != "" {
			re, err := regexp.Compile(spec.Pattern)
			if err != nil {
				return nil, fmt.Errorf("form: rule for %q has invalid pattern: %w", spec.Field, err)
			}
			r.re = re
		}
		rs.rules = append(rs.rules, r)
	}
	return rs, nil
}

// MustCompile is Compile for static rule sets; it panics on a malformed rule.
func MustCompile(specs []RuleSpec) *RuleSet {
	rs, err := Compile(specs)
	if err != nil {
		panic(err)
	}
	return rs
}

// Validate checks the draft against the rules in order and records the first
// failing condition per field. Fields without a rule pass silently: drafts
// may carry transient fields no rule cares about.
func (rs *RuleSet) Validate(draft map[string]any) Result {
	out := Result{}
	for _, r := range rs.rules {
		if _, seen := out[r.spec.Field]; seen {
			continue
		}
		if msgs := r.check(draft[r.spec.Field]); len(msgs) > 0 {
			out[r.spec.Field] = msgs[0]
		}
	}
	return out
}

// ValidateAll is the accumulating variant of Validate: every failing
// condition per field is kept, in rule order.
func (rs *RuleSet) ValidateAll(draft map[string]any) map[string][]string {
	out := map[string][]string{}
	for _, r := range rs.rules {
		if msgs := r.check(draft[r.spec.Field]); len(msgs) > 0 {
			out[r.spec.Field] = append(out[r.spec.Field], msgs...)
		}
	}
	return out
}

func (r rule) check(v any) []string {
	if isEmpty(v) {
		if r.spec.Required {
			return []string{"This field is required"}
		}
		return nil
	}

	var msgs []string

	if r.re != nil {
		s, _ := valueString(v)
		if !r.re.MatchString(s) {
			msg := r.spec.Message
			if msg == "" {
				msg = "Invalid format"
			}
			msgs = append(msgs, msg)
		}
	}

	if r.spec.Min != nil || r.spec.Max != nil {
		f, ok := valueNumber(v)
		switch {
		case !ok:
			msgs = append(msgs, "Must be a number")
		case r.spec.Min != nil && f < *r.spec.Min:
			msgs = append(msgs, fmt.Sprintf("Must be at least %s", trimFloat(*r.spec.Min)))
		case r.spec.Max != nil && f > *r.spec.Max:
			msgs = append(msgs, fmt.Sprintf("Must be at most %s", trimFloat(*r.spec.Max)))
		}
	}

	if r.spec.MinLength != nil || r.spec.MaxLength != nil {
		s, _ := valueString(v)
		n := len([]rune(strings.TrimSpace(s)))
		switch {
		case r.spec.MinLength != nil && n < *r.spec.MinLength:
			msgs = append(msgs, fmt.Sprintf("Must be at least %d characters", *r.spec.MinLength))
		case r.spec.MaxLength != nil && n > *r.spec.MaxLength:
			msgs = append(msgs, fmt.Sprintf("Must be at most %d characters", *r.spec.MaxLength))
		}
	}

	return msgs
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	default:
		return false
	}
}

func valueString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	default:
		return fmt.Sprint(x), true
	}
}

func valueNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Float and Int build bound pointers for rule literals.
func Float(f float64) *float64 { return &f }
func Int(n int) *int           { return &n }
