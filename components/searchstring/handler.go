package searchstring

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-viewkit/components/internal/httpx"
	pkgsearch "github.com/goliatone/go-viewkit/pkg/searchstring"
)

// StatusError re-exports the shared status error so guards can reject
// requests with a specific code.
type StatusError = httpx.StatusError

var errMissingModel = errors.New("searchstring: model parameter is required")

type filtersResponse struct {
	Data []pkgsearch.Filter `json:"data"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions answers GET/HEAD requests with the filter descriptors of
// the model named by the model parameter, wrapped as {"data": [...]}. Unknown
// models yield an empty list.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if !httpx.AllowRead(w, r) {
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				httpx.WriteGuardError(w, err)
				return
			}
		}

		if opts.Builder == nil {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		query := r.URL.Query()
		model := strings.TrimSpace(query.Get(opts.ModelParam))
		if model == "" {
			httpx.WriteError(w, StatusError{Code: http.StatusBadRequest, Err: errMissingModel}, http.StatusBadRequest)
			return
		}

		filters := opts.Builder.Filters(pkgsearch.Request{
			Model:  model,
			Search: query.Get(opts.SearchParam),
			Locale: httpx.RequestLocale(r, opts.LocaleParam, opts.DefaultLocale),
		})

		httpx.WriteJSON(w, r, filtersResponse{Data: filters})
	})
}
