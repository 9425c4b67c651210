package model

import (
	"errors"
	"testing"

	"github.com/goliatone/go-hypermedia/pkg/links"
)

type author struct {
	Name string `json:"name"`
}

func TestBuilderSingleEntity(t *testing.T) {
	m := NewBuilder().
		Entity(author{Name: "Alan Watts"}).
		Link(links.Of("/people/alan-watts")).
		Build()

	if m.Kind() != KindEntity {
		t.Fatalf("expected entity model, got %s", m.Kind())
	}
	if got := m.Content().(author); got.Name != "Alan Watts" {
		t.Fatalf("unexpected content %+v", got)
	}
	if ls := m.Links(); len(ls) != 1 || ls[0] != links.Of("/people/alan-watts") {
		t.Fatalf("unexpected links %+v", ls)
	}
}

func TestBuilderRepeatedEntitiesBuildCollection(t *testing.T) {
	m := NewBuilder().
		Entity(author{Name: "a"}).
		Entity("heterogeneous").
		Entity(42).
		Build()
	if m.Kind() != KindCollection {
		t.Fatalf("expected collection, got %s", m.Kind())
	}
	items := m.Items()
	if len(items) != 3 || items[1] != "heterogeneous" || items[2] != 42 {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestBuilderExplicitCollection(t *testing.T) {
	m := NewBuilder().Entities(author{Name: "only"}).Build()
	if m.Kind() != KindCollection || len(m.Items()) != 1 {
		t.Fatalf("expected single item collection, got %s with %d items", m.Kind(), len(m.Items()))
	}
	empty := NewBuilder().Entities().Build()
	if empty.Kind() != KindCollection || len(empty.Items()) != 0 {
		t.Fatalf("expected empty collection, got %s", empty.Kind())
	}
}

func TestBuilderNothingAddedIsEmpty(t *testing.T) {
	m := NewBuilder().Link(links.Of("/root")).Build()
	if m.Kind() != KindEmpty {
		t.Fatalf("expected empty model, got %s", m.Kind())
	}
	if _, err := m.RequiredLink(links.Self); err != nil {
		t.Fatalf("required self: %v", err)
	}
	if _, err := m.RequiredLink(links.Rel("next")); !errors.Is(err, links.ErrMissingLink) {
		t.Fatalf("expected ErrMissingLink, got %v", err)
	}
}

func TestBuilderNestsSingleModel(t *testing.T) {
	inner := NewBuilder().Entity(author{Name: "Greg"}).Link(links.Of("/author/1")).Build()
	outer := NewBuilder().Entity(inner).Link(links.OfRel("/authors", links.Rel("authors"))).Build()

	if outer.Kind() != KindEntity || outer.Content().(author).Name != "Greg" {
		t.Fatalf("expected nested entity content, got %s", outer.Kind())
	}
	if len(outer.Links()) != 2 {
		t.Fatalf("expected builder links appended to nested links, got %+v", outer.Links())
	}
	if len(inner.Links()) != 1 {
		t.Fatalf("nested model mutated: %+v", inner.Links())
	}
}

func TestBuildSnapshotsState(t *testing.T) {
	b := NewBuilder().Entity(author{Name: "first"}).Link(links.Of("/a"))
	first := b.Build()
	b.Entity(author{Name: "second"}).Link(links.OfRel("/b", links.Rel("next")))
	second := b.Build()

	if first.Kind() != KindEntity || len(first.Links()) != 1 {
		t.Fatalf("first snapshot changed: %s %+v", first.Kind(), first.Links())
	}
	if second.Kind() != KindCollection || len(second.Items()) != 2 || len(second.Links()) != 2 {
		t.Fatalf("second snapshot missing state: %s", second.Kind())
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	m := NewBuilder().Entity(1).Entity(2).Link(links.Of("/a")).Build()
	items := m.Items()
	items[0] = 99
	ls := m.Links()
	ls[0] = links.Of("/changed")
	if m.Items()[0] != 1 || m.Links()[0].Href != "/a" {
		t.Fatalf("model state leaked through accessors")
	}
}

func TestOfAndUnwrap(t *testing.T) {
	inner := Of(author{Name: "x"}, links.Of("/x"))
	outer := Of(inner)
	if got, ok := Unwrap(outer).(author); !ok || got.Name != "x" {
		t.Fatalf("expected unwrap to reach entity, got %#v", Unwrap(outer))
	}
	collection := CollectionOf([]any{1, 2})
	if Unwrap(collection) != collection {
		t.Fatalf("expected collections to stay wrapped")
	}
}
