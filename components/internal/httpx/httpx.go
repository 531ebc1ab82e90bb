// Package httpx holds the request guard and error plumbing shared by the
// component handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// HTTPError is an error carrying the status code a handler should answer with.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with an HTTP status code.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// GuardFunc authorizes a request before the handler runs. A returned
// HTTPError selects the status code; any other error answers 403.
type GuardFunc func(r *http.Request) error

// WriteGuardError answers a rejected guard.
func WriteGuardError(w http.ResponseWriter, err error) {
	WriteError(w, err, http.StatusForbidden)
}

// WriteError answers err with its HTTPError status, or fallback.
func WriteError(w http.ResponseWriter, err error, fallback int) {
	if w == nil {
		return
	}
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if status := httpErr.StatusCode(); status > 0 {
			code = status
		}
	}
	http.Error(w, http.StatusText(code), code)
}

// AllowRead rejects methods other than GET and HEAD. It reports whether the
// handler may continue.
func AllowRead(w http.ResponseWriter, r *http.Request, extra ...string) bool {
	allowed := append([]string{http.MethodGet, http.MethodHead}, extra...)
	for _, method := range allowed {
		if r.Method == method {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

// WriteJSON encodes payload with status 200; HEAD requests get headers only.
func WriteJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

// RequestLocale returns the explicit locale parameter or the best match of the
// Accept-Language header, falling back to fallback.
func RequestLocale(r *http.Request, param, fallback string) string {
	if param != "" {
		if locale := strings.TrimSpace(r.URL.Query().Get(param)); locale != "" {
			return locale
		}
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return fallback
	}
	return tags[0].String()
}

// MountPath joins basePath and routePath into a clean absolute path.
func MountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
