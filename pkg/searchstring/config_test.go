package searchstring_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-viewkit/pkg/searchstring"
)

func TestLoadFS_PreservesDeclarationOrder(t *testing.T) {
	cfg := loadConfig(t)

	if diff := cmp.Diff([]string{`App\Models\Document\Document`, `Modules\Inventory\Models\Item`}, cfg.Models()); diff != "" {
		t.Fatalf("models mismatch (-want +got):\n%s", diff)
	}

	mc, ok := cfg.Model(documentModel)
	if !ok {
		t.Fatalf("expected document model")
	}

	names := make([]string, 0, len(mc.Columns))
	for _, column := range mc.Columns {
		names = append(names, column.Name)
	}
	want := []string{
		"id", "document_number", "contact_id", "category_id", "account_id",
		"issued_at", "enabled", "contact", "currency_code", "status",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("column order mismatch (-want +got):\n%s", diff)
	}

	category := mc.Columns[3].Options
	wantRoute := &searchstring.RouteRef{Name: "categories.index", Params: map[string]string{"search": "type:income"}}
	if diff := cmp.Diff(wantRoute, category.Route); diff != "" {
		t.Fatalf("route mismatch (-want +got):\n%s", diff)
	}

	contact := mc.Columns[7].Options
	if !contact.Relationship || contact.Route == nil || contact.Route.Name != "customers.index" {
		t.Fatalf("unexpected contact options: %#v", contact)
	}
}

func TestParse_OptionSemantics(t *testing.T) {
	doc := `
App\Models\Banking\Transaction:
  columns:
    paid_at:
      date: false
    reconciled:
      boolean: 0
    contact:
      relationship: ~
    reference:
      searchable: 0
    description:
      searchable: "yes"
    type:
      searchable: false
`
	cfg, err := searchstring.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	mc, ok := cfg.Model(`App\Models\Banking\Transaction`)
	if !ok {
		t.Fatalf("model missing")
	}

	want := []searchstring.Column{
		{Name: "paid_at", Options: searchstring.ColumnOptions{Date: true}},
		{Name: "reconciled", Options: searchstring.ColumnOptions{Boolean: true}},
		{Name: "contact"},
		{Name: "reference"},
		{Name: "description", Options: searchstring.ColumnOptions{Searchable: true}},
		{Name: "type"},
	}
	if diff := cmp.Diff(want, mc.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_SearchableNumericValues(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "0", want: false},
		{value: "0x0", want: false},
		{value: "0o0", want: false},
		{value: "-0", want: false},
		{value: "0.0", want: false},
		{value: ".0", want: false},
		{value: "0x10", want: true},
		{value: "-1", want: true},
		{value: "0.5", want: true},
		{value: ".inf", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			cfg, err := searchstring.Parse([]byte("Model:\n  columns:\n    name:\n      searchable: " + tt.value + "\n"))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			mc, ok := cfg.Model("Model")
			if !ok || len(mc.Columns) != 1 {
				t.Fatalf("unexpected config %#v", cfg)
			}
			if got := mc.Columns[0].Options.Searchable; got != tt.want {
				t.Fatalf("searchable %s: expected %v, got %v", tt.value, tt.want, got)
			}
		})
	}
}

func TestParse_JSONDocument(t *testing.T) {
	doc := `{"App\\Models\\Common\\Contact": {"columns": {"currency_code": {"route": ["currencies.index", {"enabled": "1"}]}, "type": {}}}}`

	cfg, err := searchstring.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := searchstring.ModelConfig{Columns: []searchstring.Column{
		{Name: "currency_code", Options: searchstring.ColumnOptions{
			Route: &searchstring.RouteRef{Name: "currencies.index", Params: map[string]string{"enabled": "1"}},
		}},
		{Name: "type"},
	}}
	got, _ := cfg.Model(`App\Models\Common\Contact`)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "not a mapping", doc: "- one\n- two\n", want: "expected a mapping of models"},
		{name: "duplicate column", doc: "Model:\n  columns:\n    - id\n    - id\n", want: `duplicate column "id"`},
		{name: "bad columns kind", doc: "Model:\n  columns: id\n", want: "columns must be a mapping or a list"},
		{name: "bad route", doc: "Model:\n  columns:\n    id:\n      route: {name: x}\n", want: "route must be a name"},
		{name: "multi key list entry", doc: "Model:\n  columns:\n    - {a: {}, b: {}}\n", want: "single column"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := searchstring.Parse([]byte(tt.doc))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFS_DuplicateModelAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml":    {Data: []byte("Model:\n  columns: [id]\n")},
		"b.yml":     {Data: []byte("Model:\n  columns: [name]\n")},
		"README.md": {Data: []byte("ignored")},
	}

	_, err := searchstring.LoadFS(fsys)
	if err == nil || !strings.Contains(err.Error(), `duplicate model "Model"`) {
		t.Fatalf("expected duplicate model error, got %v", err)
	}
}

func TestConfigMerge(t *testing.T) {
	base := searchstring.Config{"A": {Columns: []searchstring.Column{{Name: "id"}}}}
	override := searchstring.Config{
		"A": {Columns: []searchstring.Column{{Name: "name"}}},
		"B": {Columns: []searchstring.Column{{Name: "id"}}},
	}

	merged := base.Merge(override)
	if diff := cmp.Diff([]string{"A", "B"}, merged.Models()); diff != "" {
		t.Fatalf("models mismatch (-want +got):\n%s", diff)
	}
	if got, _ := merged.Model("A"); got.Columns[0].Name != "name" {
		t.Fatalf("expected later config to win, got %#v", got)
	}
	if got, _ := base.Model("A"); got.Columns[0].Name != "id" {
		t.Fatalf("merge must not mutate receiver")
	}
}

func TestParseSearch(t *testing.T) {
	got := searchstring.ParseSearch("invoice type:income  category_id:3 note:a:b")
	want := []searchstring.SearchTerm{
		{Column: "type", Value: "income"},
		{Column: "category_id", Value: "3"},
		{Column: "note", Value: "a:b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("terms mismatch (-want +got):\n%s", diff)
	}
}

func TestLabelAndSlug(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		column string
		want   string
	}{
		{column: "contact_id", want: "Contact"},
		{column: "currency_code", want: "Currency"},
		{column: "issued_at", want: "Issue Date"},
		{column: "enabled", want: "Enabled"},
		{column: "unknown", want: "search_string.columns.unknown"},
	}
	for _, tt := range tests {
		if got := searchstring.Label(catalog, "en", tt.column); got != tt.want {
			t.Fatalf("Label(%q): want %q, got %q", tt.column, tt.want, got)
		}
	}

	if got := searchstring.Slug("Crème Brûlée  Pro", "-"); got != "creme-brulee-pro" {
		t.Fatalf("unexpected slug %q", got)
	}
}
