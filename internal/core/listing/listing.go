// Package listing implements the client-side listing pipeline shared by the
// portal listing endpoints: search, column filters, stable sort and
// pagination over an in-memory record collection. The pipeline is pure; it
// never mutates its input collection.
package listing

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrInvalidConfig reports a malformed page configuration. This is a caller
// defect, not a user-recoverable condition: handlers normalize page inputs
// before deriving a page.
var ErrInvalidConfig = errors.New("listing: page and page size must be positive")

// FilterAll is the sentinel filter value that matches every record.
const FilterAll = "all"

// Kind selects the comparator used when sorting a column.
type Kind int

const (
	KindString Kind = iota
	KindNumber
)

// Direction is the sort direction for the sort stage.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Record is an opaque field-name to value mapping. The pipeline only reads
// records; identity and mutation are the owning repository's concern.
type Record map[string]any

// Column describes how one record field participates in the pipeline.
type Column struct {
	Key        string
	Searchable bool
	Sortable   bool
	Kind       Kind
	Format     Format
}

// Config carries the pipeline state normally driven by listing UI controls.
type Config struct {
	Search   string
	Filters  map[string]string
	SortKey  string
	SortDir  Direction
	Page     int
	PageSize int
}

// Page is the derived visible page plus pagination metadata.
type Page struct {
	Rows          []Record `json:"rows"`
	TotalFiltered int      `json:"total_filtered"`
	TotalPages    int      `json:"total_pages"`
}

// PageSizes is the fixed set of page sizes the page-size selector offers.
var PageSizes = []int{10, 25, 50, 100}

// NormalizePageSize snaps an arbitrary requested size onto the allowed set:
// the largest allowed size not exceeding the request, or the smallest
// allowed size when the request is below it.
func NormalizePageSize(n int) int {
	size := PageSizes[0]
	for _, allowed := range PageSizes {
		if n >= allowed {
			size = allowed
		}
	}
	return size
}

// WithSort returns the config updated by a sort request on key: repeating
// the current sort key flips direction, a new key resets to ascending.
func (c Config) WithSort(key string) Config {
	if c.SortKey == key {
		if c.SortDir == Descending {
			c.SortDir = Ascending
		} else {
			c.SortDir = Descending
		}
		return c
	}
	c.SortKey = key
	c.SortDir = Ascending
	return c
}

// collator performs locale-aware string comparison in the sort stage.
var collator = collate.New(language.English, collate.Loose)

// DerivePage runs the full pipeline over records and returns the visible
// page. Stages run in order: search, filter, sort, paginate. A page beyond
// the last returns empty rows with metadata intact; the caller clamps on the
// next render.
func DerivePage(records []Record, columns []Column, cfg Config) (Page, error) {
	if cfg.Page <= 0 || cfg.PageSize <= 0 {
		return Page{}, ErrInvalidConfig
	}

	filtered := applySearch(records, columns, cfg.Search)
	filtered = applyFilters(filtered, cfg.Filters)
	sorted := applySort(filtered, columns, cfg.SortKey, cfg.SortDir)

	total := len(sorted)
	pages := (total + cfg.PageSize - 1) / cfg.PageSize
	if pages < 1 {
		pages = 1
	}

	start := (cfg.Page - 1) * cfg.PageSize
	if start >= total {
		return Page{Rows: []Record{}, TotalFiltered: total, TotalPages: pages}, nil
	}
	end := start + cfg.PageSize
	if end > total {
		end = total
	}

	rows := make([]Record, end-start)
	copy(rows, sorted[start:end])
	return Page{Rows: rows, TotalFiltered: total, TotalPages: pages}, nil
}

// applySearch keeps records where any searchable column's stringified value
// contains the term, case-insensitively. Nil fields never match a non-empty
// term.
func applySearch(records []Record, columns []Column, term string) []Record {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		for _, col := range columns {
			if !col.Searchable {
				continue
			}
			s, ok := stringify(rec[col.Key])
			if ok && strings.Contains(strings.ToLower(s), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// applyFilters keeps records whose fields equal every active filter value.
// The sentinel "all" and the empty string deactivate a filter key.
func applyFilters(records []Record, filters map[string]string) []Record {
	active := make(map[string]string, len(filters))
	for key, val := range filters {
		if val != "" && val != FilterAll {
			active[key] = val
		}
	}
	if len(active) == 0 {
		return records
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		pass := true
		for key, want := range active {
			got, ok := stringify(rec[key])
			if !ok || got != want {
				pass = false
				break
			}
		}
		if pass {
			out = append(out, rec)
		}
	}
	return out
}

// applySort orders records by the sort key using the column's comparator.
// No sort key preserves input order. Records missing the sort key value sort
// last regardless of direction; ties keep their prior relative order.
func applySort(records []Record, columns []Column, key string, dir Direction) []Record {
	if key == "" {
		return records
	}
	kind := KindString
	for _, col := range columns {
		if col.Key == key {
			kind = col.Kind
			break
		}
	}
	desc := dir == Descending

	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return lessRecord(out[i][key], out[j][key], kind, desc)
	})
	return out
}

func lessRecord(a, b any, kind Kind, desc bool) bool {
	// Direction never applies to missing values: they sink to the end.
	aOK := a != nil
	bOK := b != nil

	var cmp int
	switch kind {
	case KindNumber:
		af, aNum := toNumber(a)
		bf, bNum := toNumber(b)
		aOK = aOK && aNum
		bOK = bOK && bNum
		switch {
		case af < bf:
			cmp = -1
		case af > bf:
			cmp = 1
		}
	default:
		var as, bs string
		as, aOK = stringify(a)
		bs, bOK = stringify(b)
		cmp = collator.CompareString(as, bs)
	}

	if !aOK {
		return false
	}
	if !bOK {
		return true
	}
	if desc {
		return cmp > 0
	}
	return cmp < 0
}

// stringify coerces a scalar to its search/filter string form. Nil values
// have no string form.
func stringify(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return fmt.Sprint(x), true
	}
}

func toNumber(v any) (float64, bool) {
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
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
