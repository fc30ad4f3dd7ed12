package listing

import (
	"errors"
	"fmt"
	"testing"
)

var testColumns = []Column{
	{Key: "name", Searchable: true, Sortable: true, Kind: KindString},
	{Key: "vendor", Kind: KindString},
	{Key: "price", Sortable: true, Kind: KindNumber},
	{Key: "status", Kind: KindString},
}

func record(name string, price any, status string) Record {
	return Record{"name": name, "vendor": "Saree House", "price": price, "status": status}
}

func mustDerive(t *testing.T, records []Record, cfg Config) Page {
	t.Helper()
	page, err := DerivePage(records, testColumns, cfg)
	if err != nil {
		t.Fatalf("DerivePage: %v", err)
	}
	return page
}

func TestDerivePage_EmptySearchKeepsAll(t *testing.T) {
	records := []Record{
		record("Designer Silk Saree", 15999, "active"),
		record("Chikankari Kurta", 1850, "active"),
		record("Bridal Lehenga Set", 48500, "draft"),
	}

	page := mustDerive(t, records, Config{Page: 1, PageSize: 10})
	if page.TotalFiltered != len(records) {
		t.Fatalf("TotalFiltered = %d, want %d", page.TotalFiltered, len(records))
	}
	if len(page.Rows) != len(records) {
		t.Fatalf("Rows = %d, want %d", len(page.Rows), len(records))
	}
}

func TestDerivePage_SearchOnlyTouchesSearchableColumns(t *testing.T) {
	records := []Record{
		record("Designer Silk Saree", 15999, "active"),
		// vendor contains "Saree" but vendor is not searchable
		record("Linen Summer Kurta", 2250, "active"),
	}

	page := mustDerive(t, records, Config{Search: "saree", Page: 1, PageSize: 10})
	if page.TotalFiltered != 1 {
		t.Fatalf("TotalFiltered = %d, want 1", page.TotalFiltered)
	}
	if page.Rows[0]["name"] != "Designer Silk Saree" {
		t.Fatalf("unexpected match %v", page.Rows[0]["name"])
	}
}

func TestDerivePage_SearchIsCaseInsensitive(t *testing.T) {
	records := []Record{record("Designer Silk Saree", 15999, "active")}

	for _, term := range []string{"SAREE", "silk sa", "designer"} {
		page := mustDerive(t, records, Config{Search: term, Page: 1, PageSize: 10})
		if page.TotalFiltered != 1 {
			t.Fatalf("term %q: TotalFiltered = %d, want 1", term, page.TotalFiltered)
		}
	}
}

func TestDerivePage_SearchCoercesNumbers(t *testing.T) {
	records := []Record{
		{"name": "Plain Kurta", "price": 1850, "status": "active"},
	}
	cols := []Column{
		{Key: "name", Searchable: true, Kind: KindString},
		{Key: "price", Searchable: true, Kind: KindNumber},
	}

	page, err := DerivePage(records, cols, Config{Search: "185", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("DerivePage: %v", err)
	}
	if page.TotalFiltered != 1 {
		t.Fatalf("numeric value should match stringified search")
	}
}

func TestDerivePage_NilFieldNeverMatchesSearch(t *testing.T) {
	records := []Record{{"name": nil, "price": 100, "status": "active"}}

	page := mustDerive(t, records, Config{Search: "saree", Page: 1, PageSize: 10})
	if page.TotalFiltered != 0 {
		t.Fatalf("nil field matched a non-empty term")
	}
}

func TestDerivePage_FilterEqualityAndAllSentinel(t *testing.T) {
	records := []Record{
		record("A", 1, "active"),
		record("B", 2, "draft"),
		record("C", 3, "active"),
	}

	page := mustDerive(t, records, Config{
		Filters:  map[string]string{"status": "active"},
		Page:     1,
		PageSize: 10,
	})
	if page.TotalFiltered != 2 {
		t.Fatalf("status filter: TotalFiltered = %d, want 2", page.TotalFiltered)
	}

	page = mustDerive(t, records, Config{
		Filters:  map[string]string{"status": FilterAll},
		Page:     1,
		PageSize: 10,
	})
	if page.TotalFiltered != 3 {
		t.Fatalf("all sentinel: TotalFiltered = %d, want 3", page.TotalFiltered)
	}
}

func TestDerivePage_NoSortKeyPreservesInputOrder(t *testing.T) {
	records := []Record{
		record("C", 3, "active"),
		record("A", 1, "active"),
		record("B", 2, "active"),
	}

	page := mustDerive(t, records, Config{Page: 1, PageSize: 10})
	for i, want := range []string{"C", "A", "B"} {
		if page.Rows[i]["name"] != want {
			t.Fatalf("row %d = %v, want %s", i, page.Rows[i]["name"], want)
		}
	}
}

func TestDerivePage_SortIsStable(t *testing.T) {
	// Same price, distinct names: ties keep input order.
	records := []Record{
		record("first", 100, "active"),
		record("second", 100, "active"),
		record("third", 100, "active"),
	}
	cfg := Config{SortKey: "price", SortDir: Ascending, Page: 1, PageSize: 10}

	page := mustDerive(t, records, cfg)
	again := mustDerive(t, records, cfg)
	for i := range page.Rows {
		if page.Rows[i]["name"] != again.Rows[i]["name"] {
			t.Fatalf("sort not deterministic at row %d", i)
		}
	}
	for i, want := range []string{"first", "second", "third"} {
		if page.Rows[i]["name"] != want {
			t.Fatalf("tie order broken: row %d = %v, want %s", i, page.Rows[i]["name"], want)
		}
	}
}

func TestDerivePage_DescendingReversesDistinctKeys(t *testing.T) {
	records := []Record{
		record("A", 1, "active"),
		record("B", 2, "active"),
		record("C", 3, "active"),
	}

	asc := mustDerive(t, records, Config{SortKey: "price", SortDir: Ascending, Page: 1, PageSize: 10})
	desc := mustDerive(t, records, Config{SortKey: "price", SortDir: Descending, Page: 1, PageSize: 10})

	n := len(asc.Rows)
	for i := 0; i < n; i++ {
		if asc.Rows[i]["name"] != desc.Rows[n-1-i]["name"] {
			t.Fatalf("descending is not the exact reverse at row %d", i)
		}
	}
}

func TestDerivePage_NumericSortNilsLast(t *testing.T) {
	records := []Record{
		record("mid", 15999, "active"),
		record("none", nil, "active"),
		record("low", 2999, "active"),
	}

	asc := mustDerive(t, records, Config{SortKey: "price", SortDir: Ascending, Page: 1, PageSize: 10})
	for i, want := range []string{"low", "mid", "none"} {
		if asc.Rows[i]["name"] != want {
			t.Fatalf("asc row %d = %v, want %s", i, asc.Rows[i]["name"], want)
		}
	}

	desc := mustDerive(t, records, Config{SortKey: "price", SortDir: Descending, Page: 1, PageSize: 10})
	for i, want := range []string{"mid", "low", "none"} {
		if desc.Rows[i]["name"] != want {
			t.Fatalf("desc row %d = %v, want %s (nil must sort last)", i, desc.Rows[i]["name"], want)
		}
	}
}

func TestDerivePage_StringSortIsCaseAware(t *testing.T) {
	records := []Record{
		record("banarasi", 1, "active"),
		record("Anarkali", 2, "active"),
		record("chiffon", 3, "active"),
	}

	page := mustDerive(t, records, Config{SortKey: "name", SortDir: Ascending, Page: 1, PageSize: 10})
	for i, want := range []string{"Anarkali", "banarasi", "chiffon"} {
		if page.Rows[i]["name"] != want {
			t.Fatalf("row %d = %v, want %s", i, page.Rows[i]["name"], want)
		}
	}
}

func TestDerivePage_PaginationScenario23Records(t *testing.T) {
	records := make([]Record, 23)
	for i := range records {
		records[i] = record(fmt.Sprintf("Product %02d", i), i, "active")
	}

	page3 := mustDerive(t, records, Config{Page: 3, PageSize: 10})
	if page3.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3", page3.TotalPages)
	}
	if len(page3.Rows) != 3 {
		t.Fatalf("page 3 rows = %d, want 3", len(page3.Rows))
	}

	page4 := mustDerive(t, records, Config{Page: 4, PageSize: 10})
	if len(page4.Rows) != 0 {
		t.Fatalf("page 4 rows = %d, want 0", len(page4.Rows))
	}
	if page4.TotalPages != 3 {
		t.Fatalf("page 4 TotalPages = %d, want 3", page4.TotalPages)
	}
	if page4.TotalFiltered != 23 {
		t.Fatalf("page 4 TotalFiltered = %d, want 23", page4.TotalFiltered)
	}
}

func TestDerivePage_PagesPartitionTheFilteredSet(t *testing.T) {
	records := make([]Record, 23)
	for i := range records {
		records[i] = record(fmt.Sprintf("Product %02d", i), i, "active")
	}

	cfg := Config{SortKey: "price", SortDir: Descending, PageSize: 10}
	seen := map[any]bool{}
	total := 0

	first := mustDerive(t, records, Config{SortKey: "price", SortDir: Descending, Page: 1, PageSize: 10})
	for p := 1; p <= first.TotalPages; p++ {
		cfg.Page = p
		page := mustDerive(t, records, cfg)
		for _, row := range page.Rows {
			if seen[row["name"]] {
				t.Fatalf("record %v appears on more than one page", row["name"])
			}
			seen[row["name"]] = true
			total++
		}
	}
	if total != len(records) {
		t.Fatalf("pages cover %d records, want %d", total, len(records))
	}
}

func TestDerivePage_ZeroRecordsStillOnePage(t *testing.T) {
	page := mustDerive(t, nil, Config{Page: 1, PageSize: 10})
	if page.TotalPages != 1 {
		t.Fatalf("TotalPages = %d, want 1 for empty set", page.TotalPages)
	}
	if page.TotalFiltered != 0 || len(page.Rows) != 0 {
		t.Fatalf("empty set should yield no rows")
	}
}

func TestDerivePage_InvalidConfig(t *testing.T) {
	records := []Record{record("A", 1, "active")}

	for _, cfg := range []Config{
		{Page: 0, PageSize: 10},
		{Page: 1, PageSize: 0},
		{Page: -1, PageSize: -1},
	} {
		if _, err := DerivePage(records, testColumns, cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("config %+v: want ErrInvalidConfig, got %v", cfg, err)
		}
	}
}

func TestDerivePage_DoesNotMutateInput(t *testing.T) {
	records := []Record{
		record("C", 3, "active"),
		record("A", 1, "active"),
	}

	mustDerive(t, records, Config{SortKey: "name", SortDir: Ascending, Page: 1, PageSize: 10})
	if records[0]["name"] != "C" || records[1]["name"] != "A" {
		t.Fatalf("input collection was reordered")
	}
}

func TestWithSort_TogglesAndResets(t *testing.T) {
	cfg := Config{Page: 1, PageSize: 10}

	cfg = cfg.WithSort("price")
	if cfg.SortKey != "price" || cfg.SortDir != Ascending {
		t.Fatalf("new key should reset to ascending, got %s %s", cfg.SortKey, cfg.SortDir)
	}

	cfg = cfg.WithSort("price")
	if cfg.SortDir != Descending {
		t.Fatalf("repeat on same key should flip to descending")
	}

	cfg = cfg.WithSort("price")
	if cfg.SortDir != Ascending {
		t.Fatalf("third request should flip back to ascending")
	}

	cfg = cfg.WithSort("name")
	if cfg.SortKey != "name" || cfg.SortDir != Ascending {
		t.Fatalf("switching key should reset to ascending")
	}
}

func TestNormalizePageSize(t *testing.T) {
	cases := map[int]int{
		-5:  10,
		0:   10,
		7:   10,
		10:  10,
		24:  10,
		25:  25,
		60:  50,
		100: 100,
		999: 100,
	}
	for in, want := range cases {
		if got := NormalizePageSize(in); got != want {
			t.Fatalf("NormalizePageSize(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestMemo_ReusesDerivationForSameInputs(t *testing.T) {
	records := []Record{
		record("A", 1, "active"),
		record("B", 2, "active"),
	}
	cfg := Config{SortKey: "price", SortDir: Descending, Page: 1, PageSize: 10}

	var m Memo
	first, err := m.DerivePage(records, testColumns, cfg)
	if err != nil {
		t.Fatalf("DerivePage: %v", err)
	}
	second, err := m.DerivePage(records, testColumns, cfg)
	if err != nil {
		t.Fatalf("DerivePage: %v", err)
	}
	if &first.Rows[0] != &second.Rows[0] {
		t.Fatalf("same slice identity and config should return the cached page")
	}

	// A new collection reference invalidates the cache.
	updated := append([]Record{}, records...)
	updated = append(updated, record("C", 3, "active"))
	third, err := m.DerivePage(updated, testColumns, cfg)
	if err != nil {
		t.Fatalf("DerivePage: %v", err)
	}
	if third.TotalFiltered != 3 {
		t.Fatalf("memo served stale page after collection change")
	}
}
