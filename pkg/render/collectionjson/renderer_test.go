package collectionjson

import (
	"errors"
	"testing"

	"github.com/goliatone/go-hypermedia/pkg/links"
	"github.com/goliatone/go-hypermedia/pkg/model"
	"github.com/goliatone/go-hypermedia/pkg/render"
)

type author struct {
	Name string  `json:"name"`
	Born *string `json:"born"`
}

func TestRenderEntity(t *testing.T) {
	m := model.NewBuilder().
		Entity(author{Name: "Alan Watts"}).
		Link(links.Of("/people/alan-watts")).
		Link(links.OfRel("/people", links.Rel("people"))).
		Build()

	out, err := New().Render(m)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"collection":{"version":"1.0","href":"/people/alan-watts",` +
		`"links":[{"rel":"people","href":"/people"}],` +
		`"items":[{"href":"/people/alan-watts","data":[{"name":"name","value":"Alan Watts"}]}]}}`
	if string(out) != want {
		t.Fatalf("unexpected document\nwant %s\ngot  %s", want, out)
	}
}

func TestRenderCollectionOfModels(t *testing.T) {
	item := func(name, href string) *model.Model {
		return model.NewBuilder().
			Entity(author{Name: name}).
			Link(links.Of(href)).
			Link(links.OfRel("/authors", links.Rel("authors"))).
			Build()
	}
	m := model.NewBuilder().
		Entity(item("Greg", "/author/1")).
		Entity(item("Craig", "/author/2")).
		Link(links.Of("/authors")).
		Build()

	out, err := New().Render(m)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"collection":{"version":"1.0","href":"/authors","items":[` +
		`{"href":"/author/1","data":[{"name":"name","value":"Greg"}],"links":[{"rel":"authors","href":"/authors"}]},` +
		`{"href":"/author/2","data":[{"name":"name","value":"Craig"}],"links":[{"rel":"authors","href":"/authors"}]}]}}`
	if string(out) != want {
		t.Fatalf("unexpected document\nwant %s\ngot  %s", want, out)
	}
}

func TestRenderSingleRelationEmbeds(t *testing.T) {
	m := model.Hal().
		Embed(links.Rel("authors"), author{Name: "a"}).
		Embed(links.Rel("authors"), author{Name: "b"}).
		Build()
	out, err := New().Render(m)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"collection":{"version":"1.0","items":[` +
		`{"data":[{"name":"name","value":"a"}]},{"data":[{"name":"name","value":"b"}]}]}}`
	if string(out) != want {
		t.Fatalf("unexpected document\nwant %s\ngot  %s", want, out)
	}
}

func TestRejectsMultipleEmbedRelations(t *testing.T) {
	m := model.Hal().
		Embed(links.Rel("author"), model.NewBuilder().
			Entity(author{Name: "Alan Watts"}).
			Link(links.Of("/people/alan-watts")).
			Build()).
		Embed(links.Rel("illustrator"), model.NewBuilder().
			Entity(author{Name: "John Smith"}).
			Link(links.Of("/people/john-smith")).
			Build()).
		Link(links.Of("/books/the-way-of-zen")).
		Build()

	out, err := New().Render(m)
	if out != nil {
		t.Fatalf("expected no partial output, got %s", out)
	}
	var mismatch *render.StructuralMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected StructuralMismatchError, got %v", err)
	}
	if mismatch.Format != render.CollectionJSON {
		t.Fatalf("unexpected format %s", mismatch.Format)
	}
}

func TestRejectsNonObjectEntity(t *testing.T) {
	_, err := New().Render(model.Of(42))
	if !errors.Is(err, render.ErrStructuralMismatch) {
		t.Fatalf("expected structural mismatch, got %v", err)
	}
}

func TestRenderEmpty(t *testing.T) {
	out, err := New().Render(model.Hal().Build())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != `{"collection":{"version":"1.0"}}` {
		t.Fatalf("unexpected document %s", out)
	}
}

func TestRenderKeepsLinksOfNestedEntityModel(t *testing.T) {
	inner := model.Of(author{Name: "Alan Watts"},
		links.Of("/inner"),
		links.OfRel("/inner/author", links.Rel("author")))
	m := model.CollectionOf([]any{
		model.Of(inner, links.OfRel("/outer/up", links.Rel("up"))),
	})

	out, err := New().Render(m)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `{"collection":{"version":"1.0","items":[` +
		`{"href":"/inner","data":[{"name":"name","value":"Alan Watts"}],` +
		`"links":[{"rel":"up","href":"/outer/up"},{"rel":"author","href":"/inner/author"}]}]}}`
	if string(out) != want {
		t.Fatalf("unexpected document\nwant %s\ngot  %s", want, out)
	}
}

func TestRejectsNestedEntityWithDistinctSelf(t *testing.T) {
	inner := model.Of(author{Name: "Alan Watts"}, links.Of("/inner"))
	_, err := New().Render(model.Of(inner, links.Of("/outer")))
	if !errors.Is(err, render.ErrStructuralMismatch) {
		t.Fatalf("expected structural mismatch, got %v", err)
	}
}
