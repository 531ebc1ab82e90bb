package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-viewkit"
	"github.com/goliatone/go-viewkit/pkg/documents"
	"github.com/goliatone/go-viewkit/pkg/stacks"
)

func newItemsCmd(state *app) *cobra.Command {
	var (
		req        documents.ItemsRequest
		itemsPath  string
		stacksPath string
	)

	cmd := &cobra.Command{
		Use:   "items",
		Short: "Render the document line-item table as HTML",
		Example: `  viewkit items --type invoice --items items.json
  viewkit items --type bill --purchase --hide-discount --stacks stacks.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if itemsPath != "" {
				if err := readJSON(cmd.InOrStdin(), itemsPath, &req.Items); err != nil {
					return fmt.Errorf("items: %w", err)
				}
			}
			if stacksPath != "" {
				var markup map[string][]string
				if err := readJSON(cmd.InOrStdin(), stacksPath, &markup); err != nil {
					return fmt.Errorf("stacks: %w", err)
				}
				set := stacks.New()
				for name, entries := range markup {
					for _, entry := range entries {
						set.Push(name, entry)
					}
				}
				req.Stacks = set
			}
			if req.Locale == "" {
				req.Locale = state.cfg.Locale
			}

			catalog, err := state.catalog()
			if err != nil {
				return err
			}
			resolver, err := state.routeTable()
			if err != nil {
				return err
			}
			renderer, err := state.itemsRenderer(catalog, resolver)
			if err != nil {
				return err
			}

			registry, err := viewkit.NewRegistry(nil, renderer)
			if err != nil {
				return err
			}
			out, _, err := registry.Render(cmd.Context(), viewkit.RendererItems, req, viewkit.RenderOptions{})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&req.Type, "type", "t", "invoice", "document type")
	f.StringVarP(&req.Locale, "locale", "l", "", "locale override")
	f.StringVar(&itemsPath, "items", "", "JSON file with the line items, - for stdin")
	f.StringVar(&stacksPath, "stacks", "", "JSON file mapping stack names to markup lists, - for stdin")
	f.StringVar(&req.TextItems, "text-items", "", "translation key of the items header")
	f.StringVar(&req.TextQuantity, "text-quantity", "", "translation key of the quantity header")
	f.StringVar(&req.TextPrice, "text-price", "", "translation key of the price header")
	f.StringVar(&req.TextAmount, "text-amount", "", "translation key of the amount header")
	f.BoolVar(&req.IsSalePrice, "sale", false, "offer items at their sale price")
	f.BoolVar(&req.IsPurchasePrice, "purchase", false, "offer items at their purchase price")
	f.BoolVar(&req.Flags.HideItems, "hide-items", false, "hide the name and description columns")
	f.BoolVar(&req.Flags.HideDescription, "hide-description", false, "hide the description input")
	f.BoolVar(&req.Flags.HideQuantity, "hide-quantity", false, "hide the quantity column")
	f.BoolVar(&req.Flags.HidePrice, "hide-price", false, "hide the price column")
	f.BoolVar(&req.Flags.HideAmount, "hide-amount", false, "hide the amount column")
	f.BoolVar(&req.Flags.HideDiscount, "hide-discount", false, "hide per item discounts")
	f.BoolVar(&req.Flags.HideEditItemColumns, "hide-edit-item-columns", false, "hide the edit columns link")
	return cmd
}

func readJSON(stdin io.Reader, path string, out any) error {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	return json.NewDecoder(r).Decode(out)
}
