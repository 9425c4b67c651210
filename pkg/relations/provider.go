// Package relations derives link relations for entities and optionally
// namespaces them with curies. Both are injected into builders and renderers
// so callers can swap the naming policy.
package relations

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/goliatone/go-hypermedia/pkg/links"
	"github.com/jinzhu/inflection"
)

// Provider derives the relations an entity is embedded under.
type Provider interface {
	ItemRelation(entity any) links.Relation
	CollectionRelation(entity any) links.Relation
}

// Named lets an entity choose its own relations, overriding any provider.
type Named interface {
	Relations() (item, collection links.Relation)
}

// fallbackName is used for values without a named type (maps, slices, nil).
const fallbackName = "content"

type defaultProvider struct{}

var _ Provider = defaultProvider{}

// Default returns the provider that names entities after their Go type: the
// lower camel type name for items and its English plural for collections
// ("ZoomProduct" -> "zoomProduct", "zoomProducts").
func Default() Provider {
	return defaultProvider{}
}

func (defaultProvider) ItemRelation(entity any) links.Relation {
	if named, ok := entity.(Named); ok {
		item, _ := named.Relations()
		if item != "" {
			return item
		}
	}
	return links.Relation(TypeName(entity))
}

func (defaultProvider) CollectionRelation(entity any) links.Relation {
	if named, ok := entity.(Named); ok {
		_, collection := named.Relations()
		if collection != "" {
			return collection
		}
	}
	return links.Relation(inflection.Plural(TypeName(entity)))
}

// TypeName returns the lower camel name of entity's dereferenced type.
func TypeName(entity any) string {
	if entity == nil {
		return fallbackName
	}
	t := reflect.TypeOf(entity)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if idx := strings.IndexByte(name, '['); idx >= 0 {
		name = name[:idx]
	}
	if name == "" {
		return fallbackName
	}
	return lowerCamel(name)
}

// lowerCamel lowercases the leading run of capitals, keeping the last one
// when it starts the next word ("HTTPRoute" -> "httpRoute").
func lowerCamel(name string) string {
	runes := []rune(name)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	switch {
	case n == 0:
		return name
	case n == 1 || n == len(runes):
	default:
		n--
	}
	for i := 0; i < n; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// Func adapts a naming function into a Provider. The same function names
// items; collections are its plural.
type Func func(entity any) string

var _ Provider = Func(nil)

func (f Func) ItemRelation(entity any) links.Relation {
	return links.Relation(f(entity))
}

func (f Func) CollectionRelation(entity any) links.Relation {
	return links.Relation(inflection.Plural(f(entity)))
}
