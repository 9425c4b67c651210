package messages

import (
	"testing"

	i18n "github.com/goliatone/go-i18n"
)

func TestDefaultsOnly(t *testing.T) {
	if got := DefaultsOnly.Resolve([]string{"_links.author.title"}, "Author"); got != "Author" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := DefaultsOnly.Resolve([]string{"_links.author.title"}, ""); got != "" {
		t.Fatalf("expected empty fallback, got %q", got)
	}
}

func TestTranslatorResolver(t *testing.T) {
	translator := newTestTranslator(t, map[string]string{
		LinkTitleCode("author"):      "Written by",
		LinkTitleCode("illustrator"): "<b>Illustrated</b> by",
	})

	resolver, err := NewTranslatorResolver(translator, "en")
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	if got := resolver.Resolve([]string{LinkTitleCode("author")}, ""); got != "Written by" {
		t.Fatalf("expected translated title, got %q", got)
	}
	if got := resolver.Resolve([]string{LinkTitleCode("unknown"), LinkTitleCode("author")}, ""); got != "Written by" {
		t.Fatalf("expected second code to resolve, got %q", got)
	}
	if got := resolver.Resolve([]string{LinkTitleCode("unknown")}, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	plain, err := NewTranslatorResolver(translator, "en", WithPlainText())
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	if got := plain.Resolve([]string{LinkTitleCode("illustrator")}, ""); got != "*Illustrated* by" && got != "Illustrated by" {
		t.Fatalf("expected HTML to be stripped, got %q", got)
	}
}

func TestNewTranslatorResolverRequiresTranslator(t *testing.T) {
	if _, err := NewTranslatorResolver(nil, "en"); err != ErrTranslatorRequired {
		t.Fatalf("expected ErrTranslatorRequired, got %v", err)
	}
}

func newTestTranslator(t *testing.T, entries map[string]string) i18n.Translator {
	t.Helper()
	catalog := &i18n.TranslationCatalog{
		Locale:   i18n.Locale{Code: "en"},
		Messages: make(map[string]i18n.Message),
	}
	for key, template := range entries {
		msg := i18n.Message{}
		msg.SetContent(template)
		catalog.Messages[key] = msg
	}
	store := i18n.NewStaticStore(i18n.Translations{"en": catalog})
	translator, err := i18n.NewSimpleTranslator(store, i18n.WithTranslatorDefaultLocale("en"))
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	return translator
}
