package searchstring_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-viewkit/pkg/searchstring"
)

func TestFromOpenAPI(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "openapi", "items.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	cfg, err := searchstring.FromOpenAPI(context.Background(), data)
	if err != nil {
		t.Fatalf("FromOpenAPI: %v", err)
	}

	want := searchstring.Config{
		`App\Models\Common\Item`: {Columns: []searchstring.Column{
			{Name: "category_id", Options: searchstring.ColumnOptions{
				Route: &searchstring.RouteRef{Name: "categories.index", Params: map[string]string{"search": "type:item"}},
			}},
			{Name: "created_at", Options: searchstring.ColumnOptions{Date: true}},
			{Name: "enabled", Options: searchstring.ColumnOptions{Boolean: true}},
			{Name: "name", Options: searchstring.ColumnOptions{Searchable: true}},
		}},
		"Vendor": {Columns: []searchstring.Column{
			{Name: "contact", Options: searchstring.ColumnOptions{Relationship: true}},
		}},
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOpenAPI_FeedsBuilder(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "openapi", "items.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	cfg, err := searchstring.FromOpenAPI(context.Background(), data)
	if err != nil {
		t.Fatalf("FromOpenAPI: %v", err)
	}

	builder := searchstring.NewBuilder(
		searchstring.WithConfig(cfg),
		searchstring.WithTranslator(testCatalog()),
		searchstring.WithRouter(testRouter()),
	)

	got := builder.Filters(searchstring.Request{Model: `App\Models\Common\Item`, Locale: "en"})
	keys := make([]string, 0, len(got))
	for _, filter := range got {
		keys = append(keys, filter.Key)
	}
	if diff := cmp.Diff([]string{"category_id", "created_at", "enabled"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if got[0].URL != "/settings/categories?search=type%3Aitem" {
		t.Fatalf("unexpected category url %q", got[0].URL)
	}
}

func TestFromOpenAPI_InvalidDocument(t *testing.T) {
	_, err := searchstring.FromOpenAPI(context.Background(), []byte("openapi: ["))
	if err == nil || !strings.Contains(err.Error(), "load openapi") {
		t.Fatalf("expected load error, got %v", err)
	}
}
