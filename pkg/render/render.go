// Package render defines the contract shared by the format renderers. Each
// renderer turns an immutable *model.Model into a UTF-8 JSON document or
// refuses, with a *StructuralMismatchError, a model its format cannot express
// without losing data.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-hypermedia/pkg/links"
	"github.com/goliatone/go-hypermedia/pkg/model"
)

// Format identifies a wire format by its media type.
type Format string

const (
	HAL            Format = "application/hal+json"
	CollectionJSON Format = "application/vnd.collection+json"
	Uber           Format = "application/vnd.amundsen-uber+json"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{HAL, CollectionJSON, Uber}
}

func (f Format) String() string { return string(f) }

var aliases = map[string]Format{
	"hal":             HAL,
	"collection+json": CollectionJSON,
	"collectionjson":  CollectionJSON,
	"uber":            Uber,
}

// ParseFormat resolves a media type, optionally carrying parameters, or a
// short alias such as "hal" into a Format.
func ParseFormat(value string) (Format, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if idx := strings.IndexByte(value, ';'); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	if f, ok := aliases[value]; ok {
		return f, nil
	}
	for _, f := range Formats() {
		if string(f) == value {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
}

// Renderer serializes models into one format. Implementations are safe for
// concurrent use.
type Renderer interface {
	Format() Format
	Render(m *model.Model) ([]byte, error)
}

// NullFieldKeeper is implemented by entities that want specific null fields
// rendered instead of omitted.
type NullFieldKeeper interface {
	KeepNullFields() []string
}

var (
	// ErrNilModel is returned when a renderer receives a nil model.
	ErrNilModel = errors.New("render: model is nil")
	// ErrStructuralMismatch matches every *StructuralMismatchError.
	ErrStructuralMismatch = errors.New("render: structural mismatch")
	// ErrUnsupportedFormat is returned for media types outside Formats.
	ErrUnsupportedFormat = errors.New("render: unsupported format")
)

// StructuralMismatchError reports a model shape a format cannot express.
type StructuralMismatchError struct {
	Format    Format
	Reason    string
	Relations []links.Relation
}

func (e *StructuralMismatchError) Error() string {
	msg := fmt.Sprintf("render: %s cannot express model: %s", e.Format, e.Reason)
	if len(e.Relations) == 0 {
		return msg
	}
	rels := make([]string, len(e.Relations))
	for i, rel := range e.Relations {
		rels[i] = string(rel)
	}
	return msg + " (relations: " + strings.Join(rels, ", ") + ")"
}

// Is lets errors.Is(err, ErrStructuralMismatch) match.
func (e *StructuralMismatchError) Is(target error) bool {
	return target == ErrStructuralMismatch
}

// Mismatch builds a *StructuralMismatchError.
func Mismatch(format Format, reason string, rels ...links.Relation) *StructuralMismatchError {
	return &StructuralMismatchError{Format: format, Reason: reason, Relations: rels}
}
