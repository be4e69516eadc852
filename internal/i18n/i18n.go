// Package i18n holds the pt-BR overrides applied to remote catalog text.
package i18n

import "strings"

// Translator localizes remote product and category text.
type Translator interface {
	TranslateProduct(id int, title, description string) (string, string)
	TranslateCategory(category string) string
}

type productText struct {
	title       string
	description string
}

// Table is a lookup-based Translator. Unknown ids and categories fall back to the original text.
type Table struct {
	products   map[int]productText
	categories map[string]string
}

// PortugueseBR returns the built-in pt-BR translation table for the sample catalog.
func PortugueseBR() *Table {
	return &Table{products: ptBRProducts, categories: ptBRCategories}
}

func (t *Table) TranslateProduct(id int, title, description string) (string, string) {
	tr, ok := t.products[id]
	if !ok {
		return title, description
	}
	if tr.title != "" {
		title = tr.title
	}
	if tr.description != "" {
		description = tr.description
	}
	return title, description
}

func (t *Table) TranslateCategory(category string) string {
	if label, ok := t.categories[strings.ToLower(strings.TrimSpace(category))]; ok {
		return label
	}
	return category
}

// Noop leaves every text untouched.
type Noop struct{}

func (Noop) TranslateProduct(_ int, title, description string) (string, string) {
	return title, description
}

func (Noop) TranslateCategory(category string) string { return category }
