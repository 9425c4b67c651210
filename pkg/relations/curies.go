package relations

import (
	"errors"
	"strings"

	"github.com/goliatone/go-hypermedia/pkg/links"
)

// CuriesRelation is the relation HAL uses to publish curie definitions.
const CuriesRelation links.Relation = "curies"

// ErrInvalidCurie is returned when a curie definition is unusable.
var ErrInvalidCurie = errors.New("relations: curie needs a name and an href containing {rel}")

// CurieProvider namespaces extension relations and publishes the curie
// definitions a client needs to resolve them.
type CurieProvider interface {
	Namespace(rel links.Relation) links.Relation
	Curies() links.Links
}

type noCuries struct{}

// NoCuries leaves every relation untouched and publishes nothing.
var NoCuries CurieProvider = noCuries{}

func (noCuries) Namespace(rel links.Relation) links.Relation { return rel }
func (noCuries) Curies() links.Links                        { return nil }

// Curie prefixes relations with a single namespace.
type Curie struct {
	name string
	href string
}

var _ CurieProvider = (*Curie)(nil)

// NewCurieProvider returns a provider prefixing extension relations with
// name. href must be a template with a {rel} variable.
func NewCurieProvider(name, href string) (*Curie, error) {
	name = strings.TrimSpace(name)
	if name == "" || !strings.Contains(href, "{rel}") {
		return nil, ErrInvalidCurie
	}
	return &Curie{name: name, href: href}, nil
}

// Namespace prefixes rel unless it is an IANA relation, already curied, or
// an absolute URI.
func (c *Curie) Namespace(rel links.Relation) links.Relation {
	if c == nil || rel.IsIANA() || rel.IsCuried() || strings.Contains(string(rel), "://") {
		return rel
	}
	return links.Relation(c.name + ":" + string(rel))
}

// Curies returns the single templated curie definition.
func (c *Curie) Curies() links.Links {
	if c == nil {
		return nil
	}
	return links.Links{links.OfRel(c.href, CuriesRelation).WithName(c.name)}
}
