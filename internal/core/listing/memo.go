package listing

import "sync"

// Memo caches the most recent derivation so repeated renders with the same
// collection reference and config skip recomputation. The record collection
// is compared by slice identity: repositories hand out a fresh snapshot on
// every mutation, so reference equality means nothing changed. Columns are
// assumed static per memo.
type Memo struct {
	mu      sync.Mutex
	valid   bool
	records []Record
	cfg     Config
	page    Page
}

// DerivePage returns the cached page when inputs match the previous call,
// otherwise derives and caches a fresh one.
func (m *Memo) DerivePage(records []Record, columns []Column, cfg Config) (Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && sameSlice(m.records, records) && sameConfig(m.cfg, cfg) {
		return m.page, nil
	}

	page, err := DerivePage(records, columns, cfg)
	if err != nil {
		return Page{}, err
	}

	m.records = records
	m.cfg = cloneConfig(cfg)
	m.page = page
	m.valid = true
	return page, nil
}

// Invalidate drops the cached derivation.
func (m *Memo) Invalidate() {
	m.mu.Lock()
	m.valid = false
	m.mu.Unlock()
}

func sameSlice(a, b []Record) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

func sameConfig(a, b Config) bool {
	if a.Search != b.Search || a.SortKey != b.SortKey || a.SortDir != b.SortDir ||
		a.Page != b.Page || a.PageSize != b.PageSize {
		return false
	}
	if len(a.Filters) != len(b.Filters) {
		return false
	}
	for k, v := range a.Filters {
		if b.Filters[k] != v {
			return false
		}
	}
	return true
}

func cloneConfig(cfg Config) Config {
	if cfg.Filters != nil {
		filters := make(map[string]string, len(cfg.Filters))
		for k, v := range cfg.Filters {
			filters[k] = v
		}
		cfg.Filters = filters
	}
	return cfg
}
