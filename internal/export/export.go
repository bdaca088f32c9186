// Package export writes the product collection in interchange formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/agilstore/agil/internal/product"
	"github.com/gocarina/gocsv"
)

// Format names accepted by Write.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Formats lists the supported export formats.
var Formats = []string{FormatCSV, FormatJSON}

// WriteCSV writes products as CSV with a header row
// id,name,category,quantity,price.
func WriteCSV(w io.Writer, products []product.Product) error {
	if products == nil {
		products = []product.Product{}
	}
	if err := gocsv.Marshal(&products, w); err != nil {
		return fmt.Errorf("encoding csv: %w", err)
	}
	return nil
}

// WriteJSON writes products as an indented JSON array.
func WriteJSON(w io.Writer, products []product.Product) error {
	if products == nil {
		products = []product.Product{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// Write exports products in the named format.
func Write(w io.Writer, format string, products []product.Product) error {
	switch strings.ToLower(format) {
	case FormatCSV:
		return WriteCSV(w, products)
	case FormatJSON:
		return WriteJSON(w, products)
	default:
		return fmt.Errorf("unknown export format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
}
