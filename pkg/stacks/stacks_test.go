package stacks_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-viewkit/pkg/stacks"
)

func TestSet_PushAndPrepend(t *testing.T) {
	set := stacks.New(stacks.WithSanitizer(nil))
	set.Push("price_th_end", "<th>b</th>").
		Push("price_th_end", "<th>c</th>").
		Prepend("price_th_end", "<th>a2</th>").
		Prepend("price_th_end", "<th>a1</th>")

	want := "<th>a1</th><th>a2</th><th>b</th><th>c</th>"
	if got := set.Render("price_th_end"); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got := set.Render("unknown"); got != "" {
		t.Fatalf("unknown stack should be empty, got %q", got)
	}
}

func TestSet_IgnoresBlankInput(t *testing.T) {
	set := stacks.New()
	set.Push("", "<td>x</td>")
	set.Push("name_td_start", "   ")

	if names := set.Names(); len(names) != 0 {
		t.Fatalf("expected no stacks, got %v", names)
	}

	var nilSet *stacks.Set
	nilSet.Push("x", "<td>x</td>")
	if got := nilSet.Render("x"); got != "" {
		t.Fatalf("nil set should render empty, got %q", got)
	}
}

func TestSet_SanitizesMarkup(t *testing.T) {
	set := stacks.New()
	set.Push("total_th_start", `<th class="tax" data-column="tax" onclick="steal()">Tax</th><script>alert(1)</script>`)

	got := set.Render("total_th_start")
	if strings.Contains(got, "<script") || strings.Contains(got, "alert(1)") {
		t.Fatalf("script not stripped: %q", got)
	}
	if strings.Contains(got, "onclick") {
		t.Fatalf("event handler not stripped: %q", got)
	}
	for _, fragment := range []string{`class="tax"`, `data-column="tax"`, ">Tax</th>"} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in %q", fragment, got)
		}
	}
}

func TestSet_SnapshotAndClone(t *testing.T) {
	base := stacks.New(stacks.WithSanitizer(nil))
	base.Push("move_th_start", "<th>m</th>")

	clone := base.Clone()
	clone.Push("move_th_start", "<th>n</th>")
	clone.Push("remove_th_end", "<th>r</th>")

	if diff := cmp.Diff(map[string]string{"move_th_start": "<th>m</th>"}, base.Snapshot()); diff != "" {
		t.Fatalf("base mutated (-want +got):\n%s", diff)
	}

	want := map[string]string{
		"move_th_start": "<th>m</th><th>n</th>",
		"remove_th_end": "<th>r</th>",
	}
	if diff := cmp.Diff(want, clone.Snapshot()); diff != "" {
		t.Fatalf("clone snapshot mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"move_th_start", "remove_th_end"}, clone.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
