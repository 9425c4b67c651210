package links

// Links is an ordered list of links. Several links may share a relation.
type Links []Link

// Find returns the first link with rel.
func (ls Links) Find(rel Relation) (Link, bool) {
	for _, l := range ls {
		if l.Rel == rel {
			return l, true
		}
	}
	return Link{}, false
}

// Required returns the first link with rel or a *MissingLinkError.
func (ls Links) Required(rel Relation) (Link, error) {
	if l, ok := ls.Find(rel); ok {
		return l, nil
	}
	return Link{}, &MissingLinkError{Rel: rel}
}

// Has reports whether any link uses rel.
func (ls Links) Has(rel Relation) bool {
	_, ok := ls.Find(rel)
	return ok
}

// All returns every link with rel, in order.
func (ls Links) All(rel Relation) Links {
	var out Links
	for _, l := range ls {
		if l.Rel == rel {
			out = append(out, l)
		}
	}
	return out
}

// Without returns the links whose relation is not rel.
func (ls Links) Without(rel Relation) Links {
	var out Links
	for _, l := range ls {
		if l.Rel != rel {
			out = append(out, l)
		}
	}
	return out
}

// Relations lists the distinct relations in order of first appearance.
func (ls Links) Relations() []Relation {
	seen := make(map[Relation]struct{}, len(ls))
	var out []Relation
	for _, l := range ls {
		if _, ok := seen[l.Rel]; ok {
			continue
		}
		seen[l.Rel] = struct{}{}
		out = append(out, l.Rel)
	}
	return out
}

// Clone returns an independent copy of ls.
func (ls Links) Clone() Links {
	if len(ls) == 0 {
		return nil
	}
	out := make(Links, len(ls))
	copy(out, ls)
	return out
}
