package viewkit

import (
	"io/fs"

	"github.com/goliatone/go-viewkit/pkg/documents"
)

// EmbeddedTemplates exposes the built-in items table templates so callers can
// copy or extend them and load the result with documents.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return documents.TemplatesFS()
}
