package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/agilstore/agil/internal/product"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// nonNil keeps empty results encoding as [] rather than null.
func nonNil(products []product.Product) []product.Product {
	if products == nil {
		return []product.Product{}
	}
	return products
}

// printTableHuman prints products as the fixed-width table used by the menu.
func printTableHuman(products []product.Product) {
	if len(products) == 0 {
		fmt.Println("Nenhum produto cadastrado ainda.")
		return
	}
	for _, line := range product.TableHeader() {
		fmt.Println(line)
	}
	for _, p := range products {
		fmt.Println(product.TableRow(p))
	}
}

// printDetailsHuman prints products as multi-line records.
func printDetailsHuman(products []product.Product) {
	if len(products) == 0 {
		fmt.Println("Nenhum produto encontrado.")
		return
	}
	for i, p := range products {
		if i > 0 {
			fmt.Println()
		}
		fmt.Print(product.Detail(p))
	}
}

// padRight pads a string with spaces on the right.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
