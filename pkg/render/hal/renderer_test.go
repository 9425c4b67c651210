package hal

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/goliatone/go-hypermedia/pkg/links"
	"github.com/goliatone/go-hypermedia/pkg/model"
	"github.com/goliatone/go-hypermedia/pkg/render"
	"github.com/google/go-cmp/cmp"
)

type Author struct {
	Name string  `json:"name"`
	Born *string `json:"born"`
	Died *string `json:"died"`
}

func newAuthor(name string, dates ...string) Author {
	a := Author{Name: name}
	if len(dates) == 2 {
		a.Born, a.Died = &dates[0], &dates[1]
	}
	return a
}

type Staff struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type Product struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type ZoomProduct struct {
	SomeProductProperty string `json:"someProductProperty"`
	Favorite            bool   `json:"-"`
	Purchased           bool   `json:"-"`
}

func alanWatts() Author {
	return newAuthor("Alan Watts", "January 6, 1915", "November 16, 1973")
}

func TestEmbeddedAuthorAndIllustrator(t *testing.T) {
	m := model.Hal().
		Embed(links.Rel("author"), model.NewBuilder().
			Entity(alanWatts()).
			Link(links.Of("/people/alan-watts")).
			Build()).
		Embed(links.Rel("illustrator"), model.NewBuilder().
			Entity(newAuthor("John Smith")).
			Link(links.Of("/people/john-smith")).
			Build()).
		Link(links.Of("/books/the-way-of-zen")).
		Link(links.OfRel("/people/alan-watts", links.Rel("author"))).
		Link(links.OfRel("/people/john-smith", links.Rel("illustrator"))).
		Build()

	assertDocument(t, renderHAL(t, m), "hal-embedded-author-illustrator.json")
}

func TestPreviewRendersLikeEmbed(t *testing.T) {
	m := model.Hal().
		PreviewFor(links.Rel("author"), model.NewBuilder().
			Entity(alanWatts()).
			Link(links.Of("/people/alan-watts")).
			Build()).
		PreviewFor(links.Rel("illustrator"), model.NewBuilder().
			Entity(newAuthor("John Smith")).
			Link(links.Of("/people/john-smith")).
			Build()).
		Link(links.Of("/books/the-way-of-zen")).
		Link(links.OfRel("/people/alan-watts", links.Rel("author"))).
		Link(links.OfRel("/people/john-smith", links.Rel("illustrator"))).
		Build()

	assertDocument(t, renderHAL(t, m), "hal-embedded-author-illustrator.json")
}

func TestEmbeddedBuildersAreBuilt(t *testing.T) {
	author := model.NewBuilder().
		Entity(alanWatts()).
		Link(links.Of("/people/alan-watts"))
	illustrator := model.Hal().
		Entity(newAuthor("John Smith")).
		Link(links.Of("/people/john-smith"))

	m := model.Hal().
		PreviewFor(links.Rel("author"), author).
		Embed(links.Rel("illustrator"), illustrator).
		Link(links.Of("/books/the-way-of-zen")).
		Link(links.OfRel("/people/alan-watts", links.Rel("author"))).
		Link(links.OfRel("/people/john-smith", links.Rel("illustrator"))).
		Build()

	assertDocument(t, renderHAL(t, m), "hal-embedded-author-illustrator.json")
}

func TestSingleItem(t *testing.T) {
	cases := map[string]*model.Model{
		"hal builder": model.Hal().
			Entity(alanWatts()).
			Link(links.Of("/people/alan-watts")).
			Build(),
		"default builder": model.NewBuilder().
			Entity(alanWatts()).
			Link(links.Of("/people/alan-watts")).
			Build(),
	}
	for name, m := range cases {
		t.Run(name, func(t *testing.T) {
			assertDocument(t, renderHAL(t, m), "hal-single-item.json")
		})
	}
}

func authorModel(name string, id int) *model.Model {
	self, err := links.Of("http://localhost/author/{id}").Expand(id)
	if err != nil {
		panic(err)
	}
	return model.NewBuilder().
		Entity(newAuthor(name)).
		Link(self).
		Link(links.OfRel("http://localhost/authors", links.Rel("authors"))).
		Build()
}

func TestCollection(t *testing.T) {
	def := model.NewBuilder().
		Entity(authorModel("Greg L. Turnquist", 1)).
		Entity(authorModel("Craig Walls", 2)).
		Entity(authorModel("Oliver Drotbohm", 3)).
		Link(links.Of("http://localhost/authors")).
		Build()
	hal := model.Hal().
		Entity(authorModel("Greg L. Turnquist", 1)).
		Entity(authorModel("Craig Walls", 2)).
		Entity(authorModel("Oliver Drotbohm", 3)).
		Link(links.Of("http://localhost/authors")).
		Build()

	assertDocument(t, renderHAL(t, def), "hal-embedded-collection.json")
	assertDocument(t, renderHAL(t, hal), "hal-embedded-collection.json")
}

func TestProgressiveBuilding(t *testing.T) {
	builder := model.Hal()
	assertDocument(t, renderHAL(t, builder.Build()), "hal-empty.json")

	builder.Entity(authorModel("Greg L. Turnquist", 1))
	assertDocument(t, renderHAL(t, builder.Build()), "hal-one-thing.json")

	builder.Embed(links.Rel("products"), Product{Name: "Alf alarm clock", Price: 19.99}).Build()
	assertDocument(t, renderHAL(t, builder.Build()), "hal-two-things.json")
}

func differentlyTyped() []any {
	return []any{
		Staff{Name: "Frodo Baggins", Role: "ring bearer"},
		Staff{Name: "Bilbo Baggins", Role: "burglar"},
		Product{Name: "ring of power", Price: 999.99},
		Product{Name: "Saruman's staff", Price: 9.99},
	}
}

func TestDifferentlyTypedEntities(t *testing.T) {
	def := model.NewBuilder()
	hal := model.Hal()
	for _, entity := range differentlyTyped() {
		def.Entity(entity)
		hal.Entity(entity)
	}
	def.Link(links.Of("/people/alan-watts"))
	hal.Link(links.Of("/people/alan-watts"))

	assertDocument(t, renderHAL(t, def.Build()), "hal-multiple-types.json")
	assertDocument(t, renderHAL(t, hal.Build()), "hal-multiple-types.json")
}

func TestExplicitAndImplicitRelations(t *testing.T) {
	entities := differentlyTyped()
	builder := model.Hal()
	for _, entity := range entities {
		builder.Entity(entity)
	}
	m := builder.
		Link(links.Of("/people/alan-watts")).
		Embed(links.Rel("ring bearers"), entities[0]).
		Embed(links.Rel("burglars"), entities[1]).
		Link(links.OfRel("/people/frodo-baggins", links.Rel("frodo"))).
		Build()

	assertDocument(t, renderHAL(t, m), "hal-explicit-and-implicit-relations.json")
}

func TestZoomProtocol(t *testing.T) {
	products := map[int]ZoomProduct{
		998: {SomeProductProperty: "someValue", Favorite: true, Purchased: true},
		777: {SomeProductProperty: "someValue", Favorite: true, Purchased: false},
		444: {SomeProductProperty: "someValue", Favorite: false, Purchased: true},
		333: {SomeProductProperty: "someValue", Favorite: false, Purchased: true},
		222: {SomeProductProperty: "someValue", Favorite: false, Purchased: true},
		111: {SomeProductProperty: "someValue", Favorite: false, Purchased: true},
		555: {SomeProductProperty: "someValue", Favorite: false, Purchased: true},
		666: {SomeProductProperty: "someValue", Favorite: false, Purchased: true},
	}
	ids := make([]int, 0, len(products))
	for id := range products {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	favoriteProducts := links.Rel("favorite products")
	purchasedProducts := links.Rel("purchased products")

	builder := model.Hal()
	builder.Link(links.Of("/products").WithSelfRel())

	for _, id := range ids {
		product := products[id]
		self, err := links.Of("http://localhost/products/{id}").Expand(id)
		if err != nil {
			t.Fatalf("expand: %v", err)
		}
		entity := model.Of(product, self)
		required, err := entity.RequiredLink(links.Self)
		if err != nil {
			t.Fatalf("required link: %v", err)
		}
		if product.Favorite {
			builder.
				Embed(favoriteProducts, entity).
				Link(required.WithRel(favoriteProducts))
		}
		if product.Purchased {
			builder.
				Embed(purchasedProducts, entity).
				Link(required.WithRel(purchasedProducts))
		}
	}

	assertDocument(t, renderHAL(t, builder.Build()), "zoom-hypermedia.json")
}

func TestSecondEmbedPromotesToArray(t *testing.T) {
	rel := links.Rel("products")
	builder := model.Hal().Embed(rel, Product{Name: "v1", Price: 1})
	first := renderHAL(t, builder.Build())
	if string(first) != `{"_embedded":{"products":{"name":"v1","price":1}}}` {
		t.Fatalf("unexpected single embed document %s", first)
	}
	builder.Embed(rel, Product{Name: "v2", Price: 2})
	second := renderHAL(t, builder.Build())
	if string(second) != `{"_embedded":{"products":[{"name":"v1","price":1},{"name":"v2","price":2}]}}` {
		t.Fatalf("unexpected promoted document %s", second)
	}
}

type keepsDied struct {
	Name string  `json:"name"`
	Died *string `json:"died"`
}

func (keepsDied) KeepNullFields() []string { return []string{"died"} }

func TestNullFields(t *testing.T) {
	out := renderHAL(t, model.Of(keepsDied{Name: "x"}))
	if string(out) != `{"name":"x","died":null}` {
		t.Fatalf("expected kept null field, got %s", out)
	}
	out = renderHAL(t, model.Of(newAuthor("y")))
	if string(out) != `{"name":"y"}` {
		t.Fatalf("expected null fields omitted, got %s", out)
	}
}

func TestNonObjectEntityIsRejected(t *testing.T) {
	_, err := New().Render(model.Of("just a string"))
	var mismatch *render.StructuralMismatchError
	if !errors.As(err, &mismatch) || mismatch.Format != render.HAL {
		t.Fatalf("expected HAL structural mismatch, got %v", err)
	}
	if _, err := New().Render(nil); !errors.Is(err, render.ErrNilModel) {
		t.Fatalf("expected ErrNilModel, got %v", err)
	}
}

func TestTemplatedLinksAndArrays(t *testing.T) {
	m := model.NewBuilder().
		Link(links.Of("/orders")).
		Link(links.OfRel("/orders{?page}", links.Rel("search"))).
		Build()

	out := renderHAL(t, m)
	if string(out) != `{"_links":{"self":{"href":"/orders"},"search":{"href":"/orders{?page}","templated":true}}}` {
		t.Fatalf("unexpected document %s", out)
	}

	arrays, err := New(WithSingleLinksAsArray(true)).Render(m)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(arrays) != `{"_links":{"self":[{"href":"/orders"}],"search":[{"href":"/orders{?page}","templated":true}]}}` {
		t.Fatalf("unexpected array document %s", arrays)
	}

	selective, err := New(WithArrayRelations(links.Rel("search"))).Render(m)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(selective) != `{"_links":{"self":{"href":"/orders"},"search":[{"href":"/orders{?page}","templated":true}]}}` {
		t.Fatalf("unexpected selective document %s", selective)
	}
}

func TestIndent(t *testing.T) {
	out, err := New(WithIndent("  ")).Render(model.Empty(links.Of("/x")))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "{\n  \"_links\": {\n    \"self\": {\n      \"href\": \"/x\"\n    }\n  }\n}"
	if string(out) != want {
		t.Fatalf("unexpected indented output %q", out)
	}
}

func renderHAL(t *testing.T, m *model.Model) []byte {
	t.Helper()
	out, err := New().Render(m)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

// assertDocument compares got against a testdata file, key order included.
func assertDocument(t *testing.T, got []byte, file string) {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", file))
	if err != nil {
		t.Fatalf("read %s: %v", file, err)
	}
	var want bytes.Buffer
	if err := json.Compact(&want, raw); err != nil {
		t.Fatalf("compact %s: %v", file, err)
	}
	if bytes.Equal(want.Bytes(), got) {
		return
	}
	var wantTree, gotTree any
	_ = json.Unmarshal(want.Bytes(), &wantTree)
	_ = json.Unmarshal(got, &gotTree)
	if diff := cmp.Diff(wantTree, gotTree); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", file, diff)
	}
	t.Fatalf("%s key order mismatch:\nwant %s\ngot  %s", file, want.Bytes(), got)
}
