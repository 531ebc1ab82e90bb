package documents

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/goliatone/go-viewkit/components/internal/httpx"
	pkgdocs "github.com/goliatone/go-viewkit/pkg/documents"
	"github.com/goliatone/go-viewkit/pkg/render"
	"github.com/goliatone/go-viewkit/pkg/stacks"
)

// StatusError re-exports the shared status error so guards can reject
// requests with a specific code.
type StatusError = httpx.StatusError

var errMissingType = errors.New("documents: document type is required")

// itemsPayload is the POST body. Stacks maps a stack name to the markup
// pushed onto it, in order.
type itemsPayload struct {
	Type            string              `json:"type"`
	Locale          string              `json:"locale"`
	Flags           *pkgdocs.Flags      `json:"flags"`
	TextItems       string              `json:"text_items"`
	TextQuantity    string              `json:"text_quantity"`
	TextPrice       string              `json:"text_price"`
	TextAmount      string              `json:"text_amount"`
	IsSalePrice     *bool               `json:"is_sale_price"`
	IsPurchasePrice *bool               `json:"is_purchase_price"`
	Items           []pkgdocs.LineItem  `json:"items"`
	Stacks          map[string][]string `json:"stacks"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions renders the line-item table fragment.
//
// GET and HEAD read flags, text keys and price kind from the query string and
// render an empty table. POST additionally accepts a JSON itemsPayload whose
// fields override the query.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if !httpx.AllowRead(w, r, http.MethodPost) {
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				httpx.WriteGuardError(w, err)
				return
			}
		}

		if opts.Renderer == nil {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		req, err := requestFromQuery(r, opts)
		if err != nil {
			httpx.WriteError(w, err, http.StatusBadRequest)
			return
		}

		if r.Method == http.MethodPost {
			body := http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes)
			if err := applyPayload(&req, body); err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					httpx.WriteError(w, StatusError{Code: http.StatusRequestEntityTooLarge, Err: err}, http.StatusRequestEntityTooLarge)
					return
				}
				httpx.WriteError(w, err, http.StatusBadRequest)
				return
			}
		}

		if strings.TrimSpace(req.Type) == "" {
			httpx.WriteError(w, StatusError{Code: http.StatusBadRequest, Err: errMissingType}, http.StatusBadRequest)
			return
		}

		out, err := opts.Renderer.Render(r.Context(), req, render.RenderOptions{
			Locale: req.Locale,
			Theme:  opts.Theme,
		})
		if err != nil {
			httpx.WriteError(w, err, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", opts.Renderer.ContentType())
		w.Header().Set("Content-Length", strconv.Itoa(len(out)))
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(out)
	})
}

func requestFromQuery(r *http.Request, opts Options) (pkgdocs.ItemsRequest, error) {
	query := r.URL.Query()
	req := pkgdocs.ItemsRequest{
		Type:         documentType(r, query, opts.TypeParam),
		Locale:       httpx.RequestLocale(r, opts.LocaleParam, opts.DefaultLocale),
		TextItems:    query.Get("text_items"),
		TextQuantity: query.Get("text_quantity"),
		TextPrice:    query.Get("text_price"),
		TextAmount:   query.Get("text_amount"),
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"hide_items", &req.Flags.HideItems},
		{"hide_price", &req.Flags.HidePrice},
		{"hide_quantity", &req.Flags.HideQuantity},
		{"hide_amount", &req.Flags.HideAmount},
		{"hide_discount", &req.Flags.HideDiscount},
		{"hide_edit_item_columns", &req.Flags.HideEditItemColumns},
		{"hide_description", &req.Flags.HideDescription},
		{"is_sale_price", &req.IsSalePrice},
		{"is_purchase_price", &req.IsPurchasePrice},
	}
	for _, b := range bools {
		value, err := queryBool(query, b.name)
		if err != nil {
			return req, StatusError{Code: http.StatusBadRequest, Err: err}
		}
		*b.dst = value
	}
	return req, nil
}

func documentType(r *http.Request, query url.Values, param string) string {
	if value := mux.Vars(r)[param]; value != "" {
		return value
	}
	if value := r.PathValue(param); value != "" {
		return value
	}
	return strings.TrimSpace(query.Get(param))
}

// queryBool treats a bare flag (`?hide_items`) as true.
func queryBool(query url.Values, name string) (bool, error) {
	values, ok := query[name]
	if !ok || len(values) == 0 {
		return false, nil
	}
	raw := strings.TrimSpace(values[0])
	if raw == "" {
		return true, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("documents: invalid %s %q", name, raw)
	}
	return value, nil
}

func applyPayload(req *pkgdocs.ItemsRequest, body io.Reader) error {
	var payload itemsPayload
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("documents: decode body: %w", err)
	}

	if payload.Type != "" {
		req.Type = payload.Type
	}
	if payload.Locale != "" {
		req.Locale = payload.Locale
	}
	if payload.Flags != nil {
		req.Flags = *payload.Flags
	}
	if payload.TextItems != "" {
		req.TextItems = payload.TextItems
	}
	if payload.TextQuantity != "" {
		req.TextQuantity = payload.TextQuantity
	}
	if payload.TextPrice != "" {
		req.TextPrice = payload.TextPrice
	}
	if payload.TextAmount != "" {
		req.TextAmount = payload.TextAmount
	}
	if payload.IsSalePrice != nil {
		req.IsSalePrice = *payload.IsSalePrice
	}
	if payload.IsPurchasePrice != nil {
		req.IsPurchasePrice = *payload.IsPurchasePrice
	}
	req.Items = payload.Items

	if len(payload.Stacks) > 0 {
		set := stacks.New()
		for name, markup := range payload.Stacks {
			for _, m := range markup {
				set.Push(name, m)
			}
		}
		req.Stacks = set
	}
	return nil
}
