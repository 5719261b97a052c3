// Package i18n translates the few display labels tax rates are created with.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const vatKey = "VAT"

// countryLanguage picks the language a country's rate names are written in.
var countryLanguage = map[string]language.Tag{
	"fr": language.French,
	"be": language.French,
	"lu": language.French,
	"de": language.German,
	"at": language.German,
	"es": language.Spanish,
	"it": language.Italian,
}

// Labels resolves display labels per country.
type Labels struct {
	cat *catalog.Builder
}

// NewLabels builds the label catalog.
func NewLabels() *Labels {
	cat := catalog.NewBuilder(catalog.Fallback(language.English))
	_ = cat.SetString(language.English, vatKey, "VAT")
	_ = cat.SetString(language.French, vatKey, "TVA")
	_ = cat.SetString(language.German, vatKey, "MwSt.")
	_ = cat.SetString(language.Spanish, vatKey, "IVA")
	_ = cat.SetString(language.Italian, vatKey, "IVA")
	return &Labels{cat: cat}
}

// VAT returns the name of the value added tax for a two letter country code.
// Unknown countries get the English label.
func (l *Labels) VAT(country string) string {
	tag, ok := countryLanguage[strings.ToLower(country)]
	if !ok {
		tag = language.English
	}
	p := message.NewPrinter(tag, message.Catalog(l.cat))
	return p.Sprintf(vatKey)
}
