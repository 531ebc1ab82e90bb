// Package documents serves the document line-item table fragment over HTTP.
//
// GET /documents/invoice/items?hide_discount=1 renders an empty table for the
// invoice type. POST accepts line items and stack markup as JSON:
//
//	{"items": [{"name": "Desk", "quantity": 2, "price": 10.5}],
//	 "stacks": {"name_td_end": ["<small>SKU</small>"]}}
package documents
