package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-viewkit/pkg/searchstring"
)

const documentModel = `App\Models\Document\Document`

func TestFiltersCommand(t *testing.T) {
	configPath := writeFixture(t)

	out, err := execute(t, "filters", "--config", configPath, "--model", documentModel, "--search", "contact_id:4")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var filters []searchstring.Filter
	if err := json.Unmarshal([]byte(out), &filters); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if len(filters) != 2 {
		t.Fatalf("expected 2 filters, got %#v", filters)
	}
	if filters[0].Key != "contact_id" || filters[0].Value != "Contact" || filters[0].URL != "/sales/customers" {
		t.Fatalf("unexpected contact filter %#v", filters[0])
	}
	if len(filters[0].Selected) != 1 || filters[0].Selected[0] != "4" {
		t.Fatalf("expected selected value, got %#v", filters[0].Selected)
	}
	if filters[1].Key != "issued_at" || filters[1].Type != searchstring.TypeDate {
		t.Fatalf("unexpected date filter %#v", filters[1])
	}
}

func TestFiltersCommand_PromptsForModel(t *testing.T) {
	configPath := writeFixture(t)

	var offered []string
	restore := modelPrompt
	modelPrompt = func(models []string) (string, error) {
		offered = models
		return models[0], nil
	}
	t.Cleanup(func() { modelPrompt = restore })

	out, err := execute(t, "filters", "--config", configPath, "--pretty")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(offered) != 1 || offered[0] != documentModel {
		t.Fatalf("unexpected prompt options %#v", offered)
	}
	if !strings.Contains(out, "\n  {\n") {
		t.Fatalf("expected indented output, got %q", out)
	}
}

func TestFiltersCommand_PromptLoadsConfigOnce(t *testing.T) {
	configPath := writeFixture(t)

	restore := modelPrompt
	modelPrompt = func(models []string) (string, error) { return models[0], nil }
	t.Cleanup(func() { modelPrompt = restore })

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"filters", "--config", configPath, "--log-level", "debug", "--env-file", filepath.Join(t.TempDir(), ".env")})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if n := strings.Count(stderr.String(), "search string config loaded"); n != 1 {
		t.Fatalf("expected search string config loaded once, got %d:\n%s", n, stderr.String())
	}
}

func TestFiltersCommand_PromptError(t *testing.T) {
	configPath := writeFixture(t)

	restore := modelPrompt
	modelPrompt = func([]string) (string, error) { return "", errors.New("--model is required") }
	t.Cleanup(func() { modelPrompt = restore })

	if _, err := execute(t, "filters", "--config", configPath); err == nil || !strings.Contains(err.Error(), "--model") {
		t.Fatalf("expected missing model error, got %v", err)
	}
}

func TestItemsCommand(t *testing.T) {
	configPath := writeFixture(t)
	dir := filepath.Dir(configPath)

	itemsPath := filepath.Join(dir, "items.json")
	if err := os.WriteFile(itemsPath, []byte(`[{"name": "Desk", "quantity": 2, "price": 10}]`), 0o644); err != nil {
		t.Fatalf("write items: %v", err)
	}
	stacksPath := filepath.Join(dir, "stacks.json")
	if err := os.WriteFile(stacksPath, []byte(`{"total_th_end": ["<th class=\"tax\">Tax</th>"]}`), 0o644); err != nil {
		t.Fatalf("write stacks: %v", err)
	}

	out, err := execute(t, "items", "--config", configPath, "--type", "bill", "--purchase", "--items", itemsPath, "--stacks", stacksPath)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	for _, want := range []string{
		`href="/modals/documents/item-columns/bill/edit"`,
		`data-column="name">Items</th>`,
		`<th class="tax">Tax</th>`,
		`<tbody id="invoice-item-discount-rows"`,
		`name="items[0][name]" value="Desk"`,
		`data-type="bill" data-is-sale="false" data-is-purchase="true"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestItemsCommand_GoTemplateEngine(t *testing.T) {
	configPath := writeFixture(t)
	args := []string{"items", "--config", configPath, "--type", "invoice", "--sale"}

	want, err := execute(t, args...)
	if err != nil {
		t.Fatalf("execute with default engine: %v", err)
	}

	t.Setenv("VIEWKIT_TEMPLATES__ENGINE", "go-template")
	got, err := execute(t, args...)
	if err != nil {
		t.Fatalf("execute with go-template engine: %v", err)
	}
	if got != want {
		t.Fatalf("engine output mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestRouterServesComponents(t *testing.T) {
	configPath := writeFixture(t)

	state, err := loadApp(&rootFlags{configFile: configPath, envFile: filepath.Join(t.TempDir(), ".env")}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("load app: %v", err)
	}
	router, err := state.router(context.Background())
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search-string?model="+url.QueryEscape(documentModel), nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"url":"/sales/customers"`) {
		t.Fatalf("unexpected filters response %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/documents/invoice/items", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `href="/modals/documents/item-columns/invoice/edit"`) {
		t.Fatalf("unexpected items response %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales/customers", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected URL-only route to answer 404, got %d", rec.Code)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), ".env")))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

// writeFixture lays out a config file, a search string directory and a
// translation catalog in a temp dir and returns the config path.
func writeFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"search-string/documents.yaml": `App\Models\Document\Document:
  columns:
    - contact_id:
        route: customers.index
    - account_id
    - issued_at:
        date: true
`,
		"lang/en/general.yaml": `contacts: Contact|Contacts
items: Item|Items
`,
		"viewkit.yaml": `locale: en
log:
  level: error
paths:
  search_string: ` + filepath.Join(dir, "search-string") + `
  translations: ` + filepath.Join(dir, "lang") + `
localisation:
  discount_location: both
routes:
  - name: customers.index
    path: /sales/customers
  - name: modals.documents.item-columns.edit
    path: /modals/documents/item-columns/{type}/edit
`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return filepath.Join(dir, "viewkit.yaml")
}
