package links

import "sort"

// Link is an immutable (relation, href, templated) value plus the optional
// attributes HAL documents carry. Two links with equal fields are
// interchangeable, so Link is comparable with ==.
type Link struct {
	Rel         Relation `json:"-"`
	Href        string   `json:"href"`
	Templated   bool     `json:"templated,omitempty"`
	Title       string   `json:"title,omitempty"`
	Name        string   `json:"name,omitempty"`
	Type        string   `json:"type,omitempty"`
	Hreflang    string   `json:"hreflang,omitempty"`
	Profile     string   `json:"profile,omitempty"`
	Deprecation string   `json:"deprecation,omitempty"`
}

// Of returns a self link for href.
func Of(href string) Link {
	return OfRel(href, Self)
}

// OfRel returns a link for href with the given relation.
func OfRel(href string, rel Relation) Link {
	return Link{
		Rel:       rel,
		Href:      href,
		Templated: isTemplated(href),
	}
}

// WithRel returns a copy of l using rel.
func (l Link) WithRel(rel Relation) Link {
	l.Rel = rel
	return l
}

// WithSelfRel is shorthand for WithRel(Self).
func (l Link) WithSelfRel() Link {
	return l.WithRel(Self)
}

// WithTitle returns a copy of l carrying a human readable title.
func (l Link) WithTitle(title string) Link {
	l.Title = title
	return l
}

// WithName returns a copy of l carrying a secondary key.
func (l Link) WithName(name string) Link {
	l.Name = name
	return l
}

// WithType returns a copy of l carrying a media type hint.
func (l Link) WithType(mediaType string) Link {
	l.Type = mediaType
	return l
}

// WithHreflang returns a copy of l carrying a language hint.
func (l Link) WithHreflang(lang string) Link {
	l.Hreflang = lang
	return l
}

// WithProfile returns a copy of l carrying a profile URI.
func (l Link) WithProfile(profile string) Link {
	l.Profile = profile
	return l
}

// WithDeprecation returns a copy of l flagged as deprecated, pointing at the
// document that explains the deprecation.
func (l Link) WithDeprecation(uri string) Link {
	l.Deprecation = uri
	return l
}

// HasRel reports whether l uses rel.
func (l Link) HasRel(rel Relation) bool {
	return l.Rel == rel
}

// Variables lists the distinct template variable names in order of appearance.
func (l Link) Variables() []string {
	return parseTemplate(l.Href).variables()
}

// Expand substitutes values positionally, one per distinct variable. The
// number of values must match exactly; partial expansion is not supported.
func (l Link) Expand(values ...any) (Link, error) {
	tpl := parseTemplate(l.Href)
	names := tpl.variables()
	if len(values) != len(names) {
		return Link{}, &ExpansionError{Href: l.Href, Want: len(names), Got: len(values)}
	}
	bound := make(map[string]any, len(names))
	for i, name := range names {
		bound[name] = values[i]
	}
	return l.expanded(tpl.expand(bound)), nil
}

// ExpandNamed substitutes values by variable name. Every variable must be
// bound and every key must name a variable.
func (l Link) ExpandNamed(values map[string]any) (Link, error) {
	tpl := parseTemplate(l.Href)
	names := tpl.variables()
	known := make(map[string]struct{}, len(names))
	var missing []string
	for _, name := range names {
		known[name] = struct{}{}
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	var unknown []string
	for key := range values {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(missing) > 0 || len(unknown) > 0 {
		sort.Strings(unknown)
		return Link{}, &ExpansionError{
			Href:    l.Href,
			Want:    len(names),
			Got:     len(values),
			Missing: missing,
			Unknown: unknown,
		}
	}
	return l.expanded(tpl.expand(values)), nil
}

func (l Link) expanded(href string) Link {
	l.Href = href
	l.Templated = false
	return l
}
