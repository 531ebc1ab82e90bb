package gotemplate

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-viewkit/pkg/render/template"
)

var _ template.TemplateRenderer = (*gotemplatepkg.Engine)(nil)

// NewGoTemplate builds a github.com/goliatone/go-template engine from the
// options New accepts, with the trim and attr filters registered. Options
// passed through WithGoTemplateOptions are applied last.
//
// go-template encodes render data as JSON, so funcs must be registered with
// WithTemplateFunc rather than passed in the data.
func NewGoTemplate(options ...Option) (*gotemplatepkg.Engine, error) {
	cfg, err := newConfig(options)
	if err != nil {
		return nil, err
	}

	funcs := map[string]any{
		"trim": pongo2.FilterFunction(filterTrim),
		"attr": pongo2.FilterFunction(filterAttr),
	}
	for name, fn := range cfg.templateFn {
		if name != "" && fn != nil {
			funcs[name] = fn
		}
	}

	opts := []gotemplatepkg.Option{
		gotemplatepkg.WithExtension(cfg.extension),
		gotemplatepkg.WithTemplateFunc(funcs),
	}
	if cfg.baseDir != "" {
		opts = append(opts, gotemplatepkg.WithBaseDir(cfg.baseDir))
	}
	if cfg.templates != nil {
		opts = append(opts, gotemplatepkg.WithFS(cfg.templates))
	}
	opts = append(opts, cfg.goTemplate...)

	engine, err := gotemplatepkg.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: configure go-template engine: %w", err)
	}
	if len(cfg.globalData) > 0 {
		if err := engine.GlobalContext(cfg.globalData); err != nil {
			return nil, fmt.Errorf("gotemplate: apply global data: %w", err)
		}
	}
	return engine, nil
}
