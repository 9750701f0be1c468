package jsonschema

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// Localizer translates the fixed-form subset of evaluator error messages
// (the ones with no interpolated values, e.g. "value must be an object")
// into another locale (SPEC_FULL §2.4). Messages that interpolate a
// runtime value (lengths, bounds, matched counts) are not catalog
// entries and pass through untranslated — see DESIGN.md.
type Localizer struct {
	locale    string
	localizer *i18n.Localizer
}

// NewLocalizer loads the embedded locale catalog and returns a Localizer
// for locale ("en" or "es"). Validator.Localizer is nil by default;
// callers opt in by assigning the result of this constructor.
func NewLocalizer(locale string) (*Localizer, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "es"),
	)
	if err := bundle.LoadFS(localesFS, "locales/*.json"); err != nil {
		return nil, err
	}
	return &Localizer{locale: locale, localizer: bundle.NewLocalizer(locale)}, nil
}

// Translate looks up message in the catalog for this Localizer's locale,
// returning message unchanged if there's no entry (either because it
// carries interpolated values, or the locale lacks that key).
func (l *Localizer) Translate(message string) string {
	if l == nil || l.localizer == nil {
		return message
	}
	if translated := l.localizer.Get(message); translated != "" {
		return translated
	}
	return message
}
