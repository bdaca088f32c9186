package product

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Column widths of the product table.
const (
	IDWidth       = 3
	NameWidth     = 20
	CategoryWidth = 12
	QuantityWidth = 3
)

// FormatPrice renders a price as Brazilian reais with two decimals.
func FormatPrice(price float64) string {
	return fmt.Sprintf("R$ %.2f", price)
}

// Truncate cuts s to at most maxLen runes. Unlike the CLI's title truncation
// no ellipsis is added, so columns keep a fixed width.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen])
}

// PadRight pads s with spaces to width runes.
func PadRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// TableHeader returns the two header lines of the product table.
func TableHeader() []string {
	return []string{
		"ID  | Nome                 | Categoria    | Qtd | Preço",
		"----+----------------------+--------------+-----+----------",
	}
}

// TableRow renders p as one fixed-width table row. Only the display is
// truncated; the record itself is unchanged.
func TableRow(p Product) string {
	return fmt.Sprintf("%s | %s | %s | %s | %s",
		PadRight(fmt.Sprintf("%d", p.ID), IDWidth),
		PadRight(Truncate(p.Name, NameWidth), NameWidth),
		PadRight(Truncate(p.Category, CategoryWidth), CategoryWidth),
		PadRight(fmt.Sprintf("%d", p.Quantity), QuantityWidth),
		FormatPrice(p.Price))
}

// Detail renders p as a multi-line record used by search results.
func Detail(p Product) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID: %d\n", p.ID))
	sb.WriteString(fmt.Sprintf("Nome: %s\n", p.Name))
	sb.WriteString(fmt.Sprintf("Categoria: %s\n", p.Category))
	sb.WriteString(fmt.Sprintf("Quantidade: %d\n", p.Quantity))
	sb.WriteString(fmt.Sprintf("Preço: %s\n", FormatPrice(p.Price)))
	return sb.String()
}
