package i18n

import (
	"errors"
	"fmt"

	"github.com/bnema/lesson-kiosk/internal/domain"
	"golang.org/x/text/language"
)

var ErrUnsupportedLanguage = errors.New("unsupported display language")

var (
	builtin = []Locale{italian, english}
	matcher = language.NewMatcher([]language.Tag{italian.Tag, english.Tag})
)

// Lookup resolves a BCP-47 tag such as "it", "en-GB" or "it-IT" to a built-in
// locale.
func Lookup(tag string) (Locale, error) {
	parsed, err := language.Parse(tag)
	if err != nil {
		return Locale{}, fmt.Errorf("parse language %q: %w", tag, err)
	}

	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return Locale{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, tag)
	}

	// The matcher falls back to English for unrelated languages.
	base, _ := parsed.Base()
	if matched, _ := builtin[index].Tag.Base(); base != matched {
		return Locale{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, tag)
	}

	return builtin[index], nil
}

// Catalog binds the kiosk's two language slots to concrete locales.
type Catalog struct {
	primary   Locale
	secondary Locale
}

func NewCatalog(primary, secondary string) (*Catalog, error) {
	p, err := Lookup(primary)
	if err != nil {
		return nil, fmt.Errorf("primary language: %w", err)
	}
	s, err := Lookup(secondary)
	if err != nil {
		return nil, fmt.Errorf("secondary language: %w", err)
	}

	return &Catalog{primary: p, secondary: s}, nil
}

func (c *Catalog) Locale(lang domain.Language) Locale {
	if lang == domain.LanguageSecondary {
		return c.secondary
	}

	return c.primary
}
