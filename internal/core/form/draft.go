package form

// State tracks a draft through its lifecycle: a pristine draft enters
// Editing on the first field change, Validating on submit, then Valid or
// Invalid. A valid draft is marked Submitted once the caller persists it;
// an invalid one returns to Editing on the next field change.
type State int

const (
	Pristine State = iota
	Editing
	Validating
	Valid
	Invalid
	Submitted
)

func (s State) String() string {
	switch s {
	case Pristine:
		return "pristine"
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Draft holds a mutable record under edit together with its per-field
// errors. A draft is owned by one caller; it is not safe for concurrent use.
type Draft struct {
	values map[string]any
	errors Result
	state  State
}

// NewDraft copies the initial values into a pristine draft.
func NewDraft(initial map[string]any) *Draft {
	values := make(map[string]any, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &Draft{values: values, errors: Result{}, state: Pristine}
}

// Set records a field change. Editing a field clears that field's prior
// error and only that one; other fields keep their messages.
func (d *Draft) Set(field string, value any) {
	d.values[field] = value
	delete(d.errors, field)
	d.state = Editing
}

// Get returns the current value of a field.
func (d *Draft) Get(field string) any {
	return d.values[field]
}

// Values returns a copy of the draft's current values.
func (d *Draft) Values() map[string]any {
	out := make(map[string]any, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// Errors returns the per-field errors from the last submit, less any cleared
// by subsequent edits.
func (d *Draft) Errors() Result {
	return d.errors
}

// State returns the draft's lifecycle state.
func (d *Draft) State() State {
	return d.state
}

// Submit validates the draft against the rules and moves it to Valid or
// Invalid. The full result replaces any prior errors.
func (d *Draft) Submit(rules *RuleSet) Result {
	d.state = Validating
	res := rules.Validate(d.values)
	d.errors = res
	if res.Valid() {
		d.state = Valid
	} else {
		d.state = Invalid
	}
	return res
}

// MarkSubmitted records that a valid draft was persisted. Submitting an
// unvalidated or invalid draft is a no-op.
func (d *Draft) MarkSubmitted() {
	if d.state == Valid {
		d.state = Submitted
	}
}
