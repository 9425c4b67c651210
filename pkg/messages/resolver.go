// Package messages resolves human readable text, such as link titles, for
// renderers. DefaultsOnly performs no lookup; NewTranslatorResolver consults a
// go-i18n translator.
package messages

import (
	"errors"
	"strings"

	"github.com/goliatone/go-hypermedia/pkg/interfaces/logger"
	i18n "github.com/goliatone/go-i18n"
	"github.com/jaytaylor/html2text"
)

// Resolver returns the text for the first code it knows, or fallback.
type Resolver interface {
	Resolve(codes []string, fallback string) string
}

type defaultsOnly struct{}

// DefaultsOnly resolves every lookup to its statically declared fallback.
var DefaultsOnly Resolver = defaultsOnly{}

func (defaultsOnly) Resolve(_ []string, fallback string) string { return fallback }

// TranslatorResolver looks codes up in a go-i18n translator for one locale.
type TranslatorResolver struct {
	translator i18n.Translator
	locale     string
	plainText  bool
	logger     logger.Logger
}

var _ Resolver = (*TranslatorResolver)(nil)

// Option configures a TranslatorResolver.
type Option func(*TranslatorResolver)

// WithPlainText converts HTML catalog entries to plain text.
func WithPlainText() Option {
	return func(r *TranslatorResolver) {
		r.plainText = true
	}
}

// WithLogger reports lookup failures other than missing translations.
func WithLogger(lgr logger.Logger) Option {
	return func(r *TranslatorResolver) {
		if lgr != nil {
			r.logger = lgr
		}
	}
}

// ErrTranslatorRequired indicates NewTranslatorResolver got a nil translator.
var ErrTranslatorRequired = errors.New("messages: translator is required")

// NewTranslatorResolver resolves codes through translator in locale. An
// empty locale uses the translator's default.
func NewTranslatorResolver(translator i18n.Translator, locale string, opts ...Option) (*TranslatorResolver, error) {
	if translator == nil {
		return nil, ErrTranslatorRequired
	}
	r := &TranslatorResolver{
		translator: translator,
		locale:     strings.TrimSpace(locale),
		logger:     &logger.Nop{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Resolve returns the first translated code, or fallback when none resolve.
func (r *TranslatorResolver) Resolve(codes []string, fallback string) string {
	for _, code := range codes {
		text, err := r.translator.Translate(r.locale, code)
		if err != nil {
			if !errors.Is(err, i18n.ErrMissingTranslation) {
				r.logger.Warn("message lookup failed",
					logger.Field{Key: "code", Value: code},
					logger.Field{Key: "locale", Value: r.locale},
					logger.Field{Key: "error", Value: err})
			}
			continue
		}
		if text == "" || text == code {
			continue
		}
		if r.plainText {
			if plain, err := html2text.FromString(text); err == nil {
				text = plain
			}
		}
		return text
	}
	return fallback
}

// LinkTitleCode is the catalog key for a relation's link title.
func LinkTitleCode(rel string) string {
	return "_links." + rel + ".title"
}
