package view

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -f dashboard.templ

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/a-h/templ"
)

// inlineStyle: {"fontSize": "40"} -> "font-size:40px".
// Ключи и значения задаются в DefaultLayout, поэтому результат помечается как SafeCSS
func inlineStyle(style map[string]string) templ.SafeCSS {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		value := style[k]
		if _, err := strconv.ParseFloat(value, 64); err == nil && k != "fontWeight" {
			value += "px"
		}
		parts = append(parts, kebab(k)+":"+value)
	}
	return templ.SafeCSS(strings.Join(parts, ";"))
}

func kebab(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
