package documents

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-viewkit/pkg/stacks"
)

// Default translation keys for the header labels.
const (
	DefaultTextItems    = "general.items"
	DefaultTextQuantity = "invoices.quantity"
	DefaultTextPrice    = "invoices.price"
	DefaultTextAmount   = "general.amount"
)

// Setting key and values controlling where discounts are entered.
const (
	DiscountLocationSetting = "localisation.discount_location"
	DiscountLocationDefault = "total"
	DiscountLocationItem    = "item"
	DiscountLocationBoth    = "both"
)

// Body ids of the line-item tbody. The discount variant makes the client
// script render a discount input per row.
const (
	BodyIDRows         = "invoice-item-rows"
	BodyIDDiscountRows = "invoice-item-discount-rows"
)

// EditColumnsRoute is the named route of the modal that toggles item columns.
const EditColumnsRoute = "modals.documents.item-columns.edit"

// Columns of the items table in render order. Each column is wrapped by the
// stacks "<column>_th_start"/"<column>_th_end" in the header and
// "<column>_td_start"/"<column>_td_end" in rows.
const (
	ColumnMove        = "move"
	ColumnName        = "name"
	ColumnDescription = "description"
	ColumnQuantity    = "quantity"
	ColumnPrice       = "price"
	ColumnTotal       = "total"
	ColumnRemove      = "remove"
	ColumnAddItem     = "add_item"
)

// Flags hide optional parts of the table. The zero value shows everything.
type Flags struct {
	HideItems           bool `json:"hide_items" yaml:"hide_items"`
	HidePrice           bool `json:"hide_price" yaml:"hide_price"`
	HideQuantity        bool `json:"hide_quantity" yaml:"hide_quantity"`
	HideAmount          bool `json:"hide_amount" yaml:"hide_amount"`
	HideDiscount        bool `json:"hide_discount" yaml:"hide_discount"`
	HideEditItemColumns bool `json:"hide_edit_item_columns" yaml:"hide_edit_item_columns"`
	HideDescription     bool `json:"hide_description" yaml:"hide_description"`
}

// LineItem is one row of the table. A zero Total is derived from quantity,
// price and a percentage discount.
type LineItem struct {
	ID          string  `json:"id"`
	ItemID      string  `json:"item_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

// ItemsRequest carries the per-render inputs of the items table.
type ItemsRequest struct {
	// Type is the document type, e.g. "invoice" or "bill".
	Type   string
	Locale string
	Flags  Flags

	// Translation keys of the header labels; blank keys use the defaults.
	TextItems    string
	TextQuantity string
	TextPrice    string
	TextAmount   string

	IsSalePrice     bool
	IsPurchasePrice bool

	Items  []LineItem
	Stacks *stacks.Set
	Theme  *theme.RendererConfig
}

func (req ItemsRequest) withDefaults() ItemsRequest {
	if req.TextItems == "" {
		req.TextItems = DefaultTextItems
	}
	if req.TextQuantity == "" {
		req.TextQuantity = DefaultTextQuantity
	}
	if req.TextPrice == "" {
		req.TextPrice = DefaultTextPrice
	}
	if req.TextAmount == "" {
		req.TextAmount = DefaultTextAmount
	}
	return req
}

// StackNames lists every stack the templates read, header stacks first.
func StackNames() []string {
	names := make([]string, 0, 32)
	for _, column := range []string{ColumnMove, ColumnName, ColumnQuantity, ColumnPrice, ColumnTotal, ColumnRemove} {
		names = append(names, column+"_th_start", column+"_th_end")
	}
	for _, column := range []string{ColumnMove, ColumnName, ColumnDescription, ColumnQuantity, ColumnPrice, ColumnTotal, ColumnRemove, ColumnAddItem} {
		names = append(names, column+"_td_start", column+"_td_end")
	}
	return names
}
