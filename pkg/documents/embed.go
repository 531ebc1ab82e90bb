package documents

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Template paths inside TemplatesFS, without extension.
const (
	TemplateItems           = "templates/items"
	TemplateLineItem        = "templates/line-item"
	TemplateEditItemColumns = "templates/edit-item-columns"
	TemplateSelectItem      = "templates/select-item-button"
)

// TemplatesFS exposes the embedded template bundle. Callers overriding a
// template supply an fs.FS with the same layout through WithTemplatesFS.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
