package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-viewkit"
	"github.com/goliatone/go-viewkit/pkg/searchstring"
)

// modelPrompt asks for a model when --model is missing. Tests replace it.
var modelPrompt = func(models []string) (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", errors.New("--model is required")
	}
	if len(models) == 0 {
		return "", errors.New("no models configured")
	}
	var model string
	prompt := &survey.Select{
		Message: "Model:",
		Options: models,
	}
	if err := survey.AskOne(prompt, &model); err != nil {
		return "", err
	}
	return model, nil
}

func newFiltersCmd(state *app) *cobra.Command {
	var (
		model  string
		search string
		locale string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Print the search bar filter descriptors of a model as JSON",
		Example: `  viewkit filters --model 'App\Models\Document\Document'
  viewkit filters --model 'App\Models\Banking\Transaction' --search 'account_id:2' --pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			catalog, err := state.catalog()
			if err != nil {
				return err
			}
			resolver, err := state.routeTable()
			if err != nil {
				return err
			}
			cfg, err := state.searchConfig(ctx)
			if err != nil {
				return err
			}
			builder := state.filterBuilder(cfg, catalog, resolver)

			if model == "" {
				if model, err = modelPrompt(cfg.Models()); err != nil {
					return err
				}
			}

			registry, err := viewkit.NewRegistry(builder, nil)
			if err != nil {
				return err
			}
			out, _, err := registry.Render(ctx, viewkit.RendererFilters, searchstring.Request{
				Model:  model,
				Search: search,
				Locale: locale,
			}, viewkit.RenderOptions{})
			if err != nil {
				return err
			}

			if pretty {
				var buf bytes.Buffer
				if err := json.Indent(&buf, out, "", "  "); err != nil {
					return fmt.Errorf("format filters: %w", err)
				}
				out = buf.Bytes()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "model identifier, e.g. App\\Models\\Document\\Document")
	cmd.Flags().StringVarP(&search, "search", "s", "", "current search string, used to mark selected values")
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "locale override")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}
