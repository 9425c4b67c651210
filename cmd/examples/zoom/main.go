package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/goliatone/go-hypermedia/pkg/config"
	"github.com/goliatone/go-hypermedia/pkg/hypermedia"
	"github.com/goliatone/go-hypermedia/pkg/interfaces/logger"
	"github.com/goliatone/go-hypermedia/pkg/links"
	"github.com/goliatone/go-hypermedia/pkg/model"
	"github.com/goliatone/go-hypermedia/pkg/render"
)

type product struct {
	SomeProductProperty string `json:"someProductProperty"`
	Favorite            bool   `json:"-"`
	Purchased           bool   `json:"-"`
}

func main() {
	configPath := flag.String("config", "", "optional YAML configuration file")
	format := flag.String("format", "hal", "media type or alias: hal, collection+json, uber")
	flag.Parse()

	cfg := config.Defaults()
	cfg.Render.Indent = "  "
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	module, err := hypermedia.NewModule(hypermedia.ModuleOptions{
		Config: cfg,
		Logger: logger.New(os.Stderr),
	})
	if err != nil {
		log.Fatalf("module: %v", err)
	}

	target, err := render.ParseFormat(*format)
	if err != nil {
		log.Fatalf("format: %v", err)
	}

	doc, err := zoom(module)
	if err != nil {
		log.Fatalf("build: %v", err)
	}

	out, err := module.Render(target, doc)
	var mismatch *render.StructuralMismatchError
	switch {
	case errors.As(err, &mismatch):
		fmt.Fprintf(os.Stderr, "%s cannot carry this document: %s\n", mismatch.Format, mismatch.Reason)
		os.Exit(2)
	case err != nil:
		log.Fatalf("render: %v", err)
	}
	fmt.Println(string(out))
}

// zoom embeds every product under the relations it belongs to and links each
// one from the top-level document.
func zoom(module *hypermedia.Module) (*model.Model, error) {
	products := map[int]product{
		998: {SomeProductProperty: "someValue", Favorite: true, Purchased: true},
		777: {SomeProductProperty: "someValue", Favorite: true},
		444: {SomeProductProperty: "someValue", Purchased: true},
		333: {SomeProductProperty: "someValue", Purchased: true},
		222: {SomeProductProperty: "someValue", Purchased: true},
		111: {SomeProductProperty: "someValue", Purchased: true},
		555: {SomeProductProperty: "someValue", Purchased: true},
		666: {SomeProductProperty: "someValue", Purchased: true},
	}
	ids := make([]int, 0, len(products))
	for id := range products {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	favorites := links.Rel("favorite products")
	purchased := links.Rel("purchased products")
	productLink := links.Of("http://localhost/products/{id}")

	builder := module.Hal().Link(links.Of("/products"))
	for _, id := range ids {
		p := products[id]
		self, err := productLink.Expand(id)
		if err != nil {
			return nil, err
		}
		entity := model.Of(p, self)
		if p.Favorite {
			builder.Embed(favorites, entity).Link(self.WithRel(favorites))
		}
		if p.Purchased {
			builder.Embed(purchased, entity).Link(self.WithRel(purchased))
		}
	}
	return builder.Build(), nil
}
