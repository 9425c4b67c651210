package links

import "strings"

// Relation names the role a link plays relative to its resource.
type Relation string

// Self is the relation of a resource's canonical link.
const Self Relation = "self"

// Rel returns the relation for value. It panics when value is blank; use
// ParseRelation for untrusted input.
func Rel(value string) Relation {
	rel, err := ParseRelation(value)
	if err != nil {
		panic(err)
	}
	return rel
}

// ParseRelation validates value and returns it as a Relation.
func ParseRelation(value string) (Relation, error) {
	if strings.TrimSpace(value) == "" {
		return "", ErrEmptyRelation
	}
	return Relation(value), nil
}

func (r Relation) String() string { return string(r) }

// IsSelf reports whether r is the self relation.
func (r Relation) IsSelf() bool { return r == Self }

// IsCuried reports whether r already carries a namespace prefix ("ex:orders").
func (r Relation) IsCuried() bool {
	value := string(r)
	idx := strings.Index(value, ":")
	if idx <= 0 || strings.Contains(value[:idx], "/") {
		return false
	}
	return !strings.HasPrefix(value[idx+1:], "//")
}

// IsIANA reports whether r is a registered IANA link relation.
func (r Relation) IsIANA() bool {
	_, ok := ianaRelations[strings.ToLower(string(r))]
	return ok
}

var ianaRelations = map[string]struct{}{
	"about": {}, "alternate": {}, "appendix": {}, "archives": {}, "author": {},
	"bookmark": {}, "canonical": {}, "chapter": {}, "collection": {}, "contents": {},
	"copyright": {}, "create-form": {}, "current": {}, "describedby": {}, "describes": {},
	"disclosure": {}, "duplicate": {}, "edit": {}, "edit-form": {}, "edit-media": {},
	"enclosure": {}, "first": {}, "glossary": {}, "help": {}, "hosts": {}, "hub": {},
	"icon": {}, "index": {}, "item": {}, "last": {}, "latest-version": {}, "license": {},
	"lrdd": {}, "memento": {}, "monitor": {}, "monitor-group": {}, "next": {},
	"next-archive": {}, "nofollow": {}, "noreferrer": {}, "original": {}, "payment": {},
	"predecessor-version": {}, "prefetch": {}, "prev": {}, "prev-archive": {},
	"preview": {}, "previous": {}, "privacy-policy": {}, "profile": {}, "related": {},
	"replies": {}, "search": {}, "section": {}, "self": {}, "service": {}, "start": {},
	"stylesheet": {}, "subsection": {}, "successor-version": {}, "tag": {},
	"terms-of-service": {}, "timegate": {}, "timemap": {}, "type": {}, "up": {},
	"version-history": {}, "via": {}, "working-copy": {}, "working-copy-of": {},
}
