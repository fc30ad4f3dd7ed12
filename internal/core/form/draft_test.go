package form

import "testing"

func draftRules(t *testing.T) *RuleSet {
	t.Helper()
	rs, err := Compile([]RuleSpec{
		{Field: "name", Required: true},
		{Field: "price", Required: true, Min: Float(0.01)},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return rs
}

func TestDraft_Lifecycle(t *testing.T) {
	rs := draftRules(t)
	d := NewDraft(map[string]any{"name": "", "price": 0.0})

	if d.State() != Pristine {
		t.Fatalf("new draft state = %v, want pristine", d.State())
	}

	d.Set("name", "Designer Silk Saree")
	if d.State() != Editing {
		t.Fatalf("state after edit = %v, want editing", d.State())
	}

	res := d.Submit(rs)
	if res.Valid() {
		t.Fatalf("price is still invalid, submit should fail")
	}
	if d.State() != Invalid {
		t.Fatalf("state after failed submit = %v, want invalid", d.State())
	}

	d.Set("price", 15999.0)
	res = d.Submit(rs)
	if !res.Valid() {
		t.Fatalf("submit should pass, got %v", res)
	}
	if d.State() != Valid {
		t.Fatalf("state after successful submit = %v, want valid", d.State())
	}

	d.MarkSubmitted()
	if d.State() != Submitted {
		t.Fatalf("state after persistence = %v, want submitted", d.State())
	}
}

func TestDraft_EditClearsOnlyThatFieldsError(t *testing.T) {
	rs := draftRules(t)
	d := NewDraft(map[string]any{})

	res := d.Submit(rs)
	if len(res) != 2 {
		t.Fatalf("both fields should fail, got %v", res)
	}

	d.Set("name", "Cotton Saree")
	errs := d.Errors()
	if _, ok := errs["name"]; ok {
		t.Fatalf("editing name should clear its error")
	}
	if _, ok := errs["price"]; !ok {
		t.Fatalf("price error must survive an edit to name")
	}
}

func TestDraft_MarkSubmittedRequiresValidState(t *testing.T) {
	rs := draftRules(t)
	d := NewDraft(map[string]any{})

	d.MarkSubmitted()
	if d.State() != Pristine {
		t.Fatalf("unvalidated draft must not become submitted")
	}

	d.Submit(rs)
	d.MarkSubmitted()
	if d.State() != Invalid {
		t.Fatalf("invalid draft must not become submitted")
	}
}

func TestDraft_ValuesIsACopy(t *testing.T) {
	d := NewDraft(map[string]any{"name": "original"})

	values := d.Values()
	values["name"] = "mutated"

	if d.Get("name") != "original" {
		t.Fatalf("Values must hand out a copy")
	}
}
