package render

import (
	"fmt"

	"github.com/goliatone/go-hypermedia/pkg/model"
)

// RequireFlatEmbeds rejects models a flat item-list format cannot express:
// embeds under more than one relation, or embedded and collected models that
// carry embeds of their own.
func RequireFlatEmbeds(format Format, m *model.Model) error {
	if m == nil {
		return ErrNilModel
	}
	if rels := m.EmbeddedRelations(); len(rels) > 1 {
		return Mismatch(format, fmt.Sprintf("embeds under %d distinct relations", len(rels)), rels...)
	}
	for _, entry := range m.Embeds() {
		for _, value := range entry.Values() {
			if err := requireLeaf(format, value); err != nil {
				return err
			}
		}
	}
	for _, item := range m.Items() {
		if err := requireLeaf(format, item); err != nil {
			return err
		}
	}
	if nested, ok := m.Content().(*model.Model); ok {
		return requireLeaf(format, nested)
	}
	return nil
}

func requireLeaf(format Format, value any) error {
	nested, ok := value.(*model.Model)
	if !ok || nested == nil {
		return nil
	}
	switch nested.Kind() {
	case model.KindEmbedded:
		return Mismatch(format, "nested embedding", nested.EmbeddedRelations()...)
	case model.KindCollection:
		return Mismatch(format, "nested collection")
	case model.KindEntity:
		return requireLeaf(format, nested.Content())
	}
	return nil
}
