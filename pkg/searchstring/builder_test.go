package searchstring_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-viewkit/pkg/i18n"
	"github.com/goliatone/go-viewkit/pkg/routing"
	"github.com/goliatone/go-viewkit/pkg/searchstring"
)

const documentModel = `App\Models\Document\Document`

func TestBuilder_Filters(t *testing.T) {
	builder := searchstring.NewBuilder(
		searchstring.WithConfig(loadConfig(t)),
		searchstring.WithTranslator(testCatalog()),
		searchstring.WithRouter(testRouter()),
		searchstring.WithLocale("en-GB"),
	)

	got := builder.Filters(searchstring.Request{
		Model:  documentModel,
		Search: "invoice contact_id:5 enabled:1 contact.id:9 category_id:3",
	})

	want := []searchstring.Filter{
		{
			Key:      "contact_id",
			Value:    "Contact",
			Type:     searchstring.TypeSelect,
			URL:      "/sales/customers",
			Values:   []searchstring.FilterValue{},
			Selected: []string{"5"},
		},
		{
			Key:      "category_id",
			Value:    "Category",
			Type:     searchstring.TypeSelect,
			URL:      "/settings/categories?search=type%3Aincome",
			Values:   []searchstring.FilterValue{},
			Selected: []string{"3"},
		},
		{
			Key:    "account_id",
			Value:  "Account",
			Type:   searchstring.TypeSelect,
			URL:    "/banking/accounts",
			Values: []searchstring.FilterValue{},
		},
		{
			Key:    "issued_at",
			Value:  "Issue Date",
			Type:   searchstring.TypeDate,
			URL:    "",
			Values: []searchstring.FilterValue{},
		},
		{
			Key:   "enabled",
			Value: "Enabled",
			Type:  searchstring.TypeBoolean,
			URL:   "",
			Values: []searchstring.FilterValue{
				{Key: 0, Value: "No"},
				{Key: 1, Value: "Yes"},
			},
			Selected: []string{"1"},
		},
		{
			Key:      "contact.id",
			Value:    "Contact",
			Type:     searchstring.TypeSelect,
			URL:      "/sales/customers",
			Values:   []searchstring.FilterValue{},
			Selected: []string{"9"},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_UnknownModelYieldsEmptyList(t *testing.T) {
	builder := searchstring.NewBuilder(searchstring.WithConfig(loadConfig(t)))

	got := builder.Filters(searchstring.Request{Model: `App\Models\Unknown`})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}

	payload, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != "[]" {
		t.Fatalf("expected [] payload, got %s", payload)
	}

	var nilBuilder *searchstring.Builder
	if got := nilBuilder.Filters(searchstring.Request{Model: documentModel}); len(got) != 0 {
		t.Fatalf("nil builder should yield no filters, got %#v", got)
	}
}

func TestBuilder_WithoutRouterKeepsBooleanAndDate(t *testing.T) {
	builder := searchstring.NewBuilder(
		searchstring.WithConfig(loadConfig(t)),
		searchstring.WithTranslator(testCatalog()),
	)

	got := builder.Filters(searchstring.Request{Model: documentModel})
	keys := make([]string, 0, len(got))
	for _, filter := range got {
		keys = append(keys, filter.Key)
	}

	if diff := cmp.Diff([]string{"issued_at", "enabled"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	for _, filter := range got {
		if filter.URL != "" {
			t.Fatalf("expected empty url for %s, got %q", filter.Key, filter.URL)
		}
	}
}

func TestBuilder_SearchableColumnsNeverIncluded(t *testing.T) {
	builder := searchstring.NewBuilder(
		searchstring.WithConfig(searchstring.Config{
			"App\\Models\\Banking\\Transaction": {Columns: []searchstring.Column{
				{Name: "account_id", Options: searchstring.ColumnOptions{Searchable: true}},
				{Name: "paid_at", Options: searchstring.ColumnOptions{Searchable: true, Date: true}},
				{Name: "reconciled", Options: searchstring.ColumnOptions{Searchable: true, Boolean: true}},
			}},
		}),
		searchstring.WithRouter(testRouter()),
	)

	if got := builder.Filters(searchstring.Request{Model: "App\\Models\\Banking\\Transaction"}); len(got) != 0 {
		t.Fatalf("expected no filters, got %#v", got)
	}
}

func TestBuilder_ModuleNamespacedRoute(t *testing.T) {
	builder := searchstring.NewBuilder(
		searchstring.WithConfig(loadConfig(t)),
		searchstring.WithTranslator(testCatalog()),
		searchstring.WithRouter(testRouter()),
	)

	got := builder.Filters(searchstring.Request{Model: `Modules\Inventory\Models\Item`, Locale: "en"})
	want := []searchstring.Filter{{
		Key:    "warehouse_id",
		Value:  "Warehouse",
		Type:   searchstring.TypeSelect,
		URL:    "/inventory/warehouses",
		Values: []searchstring.FilterValue{},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_LogsUnresolvedRoutes(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	builder := searchstring.NewBuilder(
		searchstring.WithConfig(searchstring.Config{
			"App\\Models\\Common\\Item": {Columns: []searchstring.Column{
				{Name: "tax_id"},
			}},
		}),
		searchstring.WithRouter(testRouter()),
		searchstring.WithLogger(logger),
	)

	if got := builder.Filters(searchstring.Request{Model: "App\\Models\\Common\\Item"}); len(got) != 0 {
		t.Fatalf("expected unresolved column to be dropped, got %#v", got)
	}
	if !strings.Contains(buf.String(), `"route":"taxes.index"`) {
		t.Fatalf("expected debug log naming the route, got %s", buf.String())
	}
}

func TestFilterKeyAndType(t *testing.T) {
	tests := []struct {
		name    string
		column  string
		opts    searchstring.ColumnOptions
		wantKey string
		wantTyp searchstring.FilterType
	}{
		{name: "plain", column: "category_id", wantKey: "category_id", wantTyp: searchstring.TypeSelect},
		{name: "relationship", column: "contact", opts: searchstring.ColumnOptions{Relationship: true}, wantKey: "contact.id", wantTyp: searchstring.TypeSelect},
		{name: "boolean", column: "enabled", opts: searchstring.ColumnOptions{Boolean: true}, wantKey: "enabled", wantTyp: searchstring.TypeBoolean},
		{name: "date wins", column: "due_at", opts: searchstring.ColumnOptions{Boolean: true, Date: true}, wantKey: "due_at", wantTyp: searchstring.TypeDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := searchstring.FilterKey(tt.column, tt.opts); got != tt.wantKey {
				t.Fatalf("key: want %q, got %q", tt.wantKey, got)
			}
			if got := searchstring.FilterTypeOf(tt.opts); got != tt.wantTyp {
				t.Fatalf("type: want %q, got %q", tt.wantTyp, got)
			}
		})
	}
}

func TestIndexRouteName(t *testing.T) {
	tests := []struct {
		model  string
		column string
		want   string
	}{
		{model: documentModel, column: "contact_id", want: "contacts.index"},
		{model: documentModel, column: "category_id", want: "categories.index"},
		{model: documentModel, column: "currency_code", want: "currency_codes.index"},
		{model: `Modules\DoubleEntry\Models\Journal`, column: "account_id", want: "doubleentry::accounts.index"},
		{model: `Modules\Crm Pro\Models\Deal`, column: "company_id", want: "crm-pro::companies.index"},
	}

	for _, tt := range tests {
		if got := searchstring.IndexRouteName(tt.model, tt.column); got != tt.want {
			t.Fatalf("IndexRouteName(%q, %q): want %q, got %q", tt.model, tt.column, tt.want, got)
		}
	}
}

func loadConfig(t *testing.T) searchstring.Config {
	t.Helper()

	cfg, err := searchstring.LoadFS(os.DirFS(filepath.Join("testdata", "config")))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func testCatalog() *i18n.Catalog {
	catalog := i18n.NewCatalog()
	catalog.Add("en", map[string]string{
		"general.contacts":                 "Contact|Contacts",
		"general.categories":               "Category|Categories",
		"general.accounts":                 "Account|Accounts",
		"general.currencies":               "Currency|Currencies",
		"general.enabled":                  "Enabled",
		"general.no":                       "No",
		"general.yes":                      "Yes",
		"search_string.columns.issued_at":  "Issue Date",
		"search_string.columns.warehouses": "Warehouse|Warehouses",
	})
	return catalog
}

func testRouter() *routing.MuxResolver {
	router := mux.NewRouter()
	router.HandleFunc("/sales/customers", http.NotFound).Name("customers.index")
	router.HandleFunc("/settings/categories", http.NotFound).Name("categories.index")
	router.HandleFunc("/banking/accounts", http.NotFound).Name("accounts.index")
	router.HandleFunc("/inventory/warehouses", http.NotFound).Name("inventory::warehouses.index")
	return routing.NewMuxResolver(router)
}
