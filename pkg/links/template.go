package links

import (
	"fmt"
	"net/url"
	"strings"
)

type segment struct {
	literal string
	op      byte
	names   []string
	isExpr  bool
}

type template struct {
	segments []segment
}

func isTemplated(href string) bool {
	for _, seg := range parseTemplate(href).segments {
		if seg.isExpr {
			return true
		}
	}
	return false
}

// parseTemplate splits href into literals and {expressions}. An unterminated
// brace is kept as literal text.
func parseTemplate(href string) template {
	var tpl template
	rest := href
	for len(rest) > 0 {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			tpl.segments = append(tpl.segments, segment{literal: rest})
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			tpl.segments = append(tpl.segments, segment{literal: rest})
			break
		}
		if open > 0 {
			tpl.segments = append(tpl.segments, segment{literal: rest[:open]})
		}
		body := rest[open+1 : open+closing]
		if expr, ok := parseExpression(body); ok {
			tpl.segments = append(tpl.segments, expr)
		} else {
			tpl.segments = append(tpl.segments, segment{literal: rest[open : open+closing+1]})
		}
		rest = rest[open+closing+1:]
	}
	return tpl
}

func parseExpression(body string) (segment, bool) {
	if body == "" {
		return segment{}, false
	}
	expr := segment{isExpr: true}
	switch body[0] {
	case '+', '?', '&':
		expr.op = body[0]
		body = body[1:]
	}
	for _, name := range strings.Split(body, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			return segment{}, false
		}
		expr.names = append(expr.names, name)
	}
	return expr, true
}

func (t template) variables() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, seg := range t.segments {
		for _, name := range seg.names {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// expand renders the template with values. Nil values are treated as
// undefined: query pairs are dropped, path variables become empty.
func (t template) expand(values map[string]any) string {
	var b strings.Builder
	for _, seg := range t.segments {
		if !seg.isExpr {
			b.WriteString(seg.literal)
			continue
		}
		switch seg.op {
		case '?', '&':
			var pairs []string
			for _, name := range seg.names {
				value, ok := values[name]
				if !ok || value == nil {
					continue
				}
				pairs = append(pairs, url.QueryEscape(name)+"="+url.QueryEscape(format(value)))
			}
			if len(pairs) == 0 {
				continue
			}
			b.WriteByte(seg.op)
			b.WriteString(strings.Join(pairs, "&"))
		case '+':
			parts := make([]string, 0, len(seg.names))
			for _, name := range seg.names {
				parts = append(parts, format(values[name]))
			}
			b.WriteString(strings.Join(parts, ","))
		default:
			parts := make([]string, 0, len(seg.names))
			for _, name := range seg.names {
				parts = append(parts, url.PathEscape(format(values[name])))
			}
			b.WriteString(strings.Join(parts, ","))
		}
	}
	return b.String()
}

func format(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
