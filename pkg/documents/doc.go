// Package documents renders the line-item table of invoice and bill forms.
//
// The table has fixed move and remove columns around the optional name,
// quantity, price and total columns. Flags hide optional columns. Named stacks
// (see package stacks) let callers inject markup before and after every
// header and row cell; the quantity, price and total stacks render even when
// their column is hidden so extensions can replace a column outright.
//
// Rows are rendered one template call per item and composed into the table
// template, all through the pongo2 engine of package gotemplate.
package documents
