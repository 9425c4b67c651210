// Package model holds the format-neutral representation tree and the builders
// that assemble it.
//
// Builders are mutable accumulators meant for one goroutine's call chain; they
// carry no locks. Build snapshots the accumulated state into an immutable
// *Model, so a built model can be handed to renderers on other goroutines while
// the builder keeps changing.
//
//	m := model.Hal().
//		Embed(links.Rel("author"), model.NewBuilder().
//			Entity(author).
//			Link(links.Of("/people/alan-watts")).
//			Build()).
//		Link(links.Of("/books/the-way-of-zen")).
//		Build()
package model
