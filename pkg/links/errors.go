package links

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyRelation is returned when a relation value is blank.
	ErrEmptyRelation = errors.New("links: relation must not be empty")
	// ErrExpansion matches every *ExpansionError.
	ErrExpansion = errors.New("links: template expansion failed")
	// ErrMissingLink matches every *MissingLinkError.
	ErrMissingLink = errors.New("links: required link missing")
)

// ExpansionError reports a mismatch between a template's variables and the
// values supplied to expand it.
type ExpansionError struct {
	Href    string
	Want    int
	Got     int
	Missing []string
	Unknown []string
}

func (e *ExpansionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "links: cannot expand %q", e.Href)
	if e.Want != e.Got {
		fmt.Fprintf(&b, ": want %d values, got %d", e.Want, e.Got)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		fmt.Fprintf(&b, ": unknown %s", strings.Join(e.Unknown, ", "))
	}
	return b.String()
}

// Is lets errors.Is(err, ErrExpansion) match.
func (e *ExpansionError) Is(target error) bool {
	return target == ErrExpansion
}

// MissingLinkError is returned when a required relation has no link.
type MissingLinkError struct {
	Rel Relation
}

func (e *MissingLinkError) Error() string {
	return fmt.Sprintf("links: no link with relation %q", string(e.Rel))
}

// Is lets errors.Is(err, ErrMissingLink) match.
func (e *MissingLinkError) Is(target error) bool {
	return target == ErrMissingLink
}
