package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Selector is a parsed selector group.
type Selector struct {
	groups [][]compound
}

// compound is one whitespace-separated part of a selector.
type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

type attrOp int

const (
	attrExists attrOp = iota
	attrEquals
	attrPrefix
)

type attrMatch struct {
	key string
	op  attrOp
	val string
}

// Compile parses a selector such as `script[type^="math/tex"], pre[data-exec]`.
func Compile(sel string) Selector {
	var s Selector
	for _, group := range splitGroups(sel) {
		var parts []compound
		for _, part := range splitCompounds(group) {
			parts = append(parts, parseCompound(part))
		}
		if len(parts) > 0 {
			s.groups = append(s.groups, parts)
		}
	}
	return s
}

// splitGroups splits on commas outside brackets.
func splitGroups(sel string) []string {
	var groups []string
	depth, start := 0, 0
	for i, r := range sel {
		switch {
		case r == '[':
			depth++
		case r == ']':
			depth--
		case r == ',' && depth == 0:
			groups = append(groups, sel[start:i])
			start = i + 1
		}
	}
	return append(groups, sel[start:])
}

// splitCompounds splits on whitespace outside brackets.
func splitCompounds(sel string) []string {
	var parts []string
	var sb strings.Builder
	depth := 0
	for _, r := range sel {
		switch {
		case r == '[':
			depth++
		case r == ']':
			depth--
		case (r == ' ' || r == '\t' || r == '\n') && depth == 0:
			if sb.Len() > 0 {
				parts = append(parts, sb.String())
				sb.Reset()
			}
			continue
		}
		sb.WriteRune(r)
	}
	if sb.Len() > 0 {
		parts = append(parts, sb.String())
	}
	return parts
}

// parseCompound parses "tag#id.class[attr^=val]".
func parseCompound(sel string) compound {
	var c compound

	for {
		open := strings.IndexByte(sel, '[')
		if open < 0 {
			break
		}
		end := strings.IndexByte(sel[open:], ']')
		if end < 0 {
			end = len(sel) - open
		}
		c.attrs = append(c.attrs, parseAttr(sel[open+1:open+end]))
		rest := ""
		if open+end+1 < len(sel) {
			rest = sel[open+end+1:]
		}
		sel = sel[:open] + rest
	}

	if idx := strings.IndexByte(sel, '#'); idx >= 0 {
		idPart := sel[idx+1:]
		sel = sel[:idx]
		if dot := strings.IndexByte(idPart, '.'); dot >= 0 {
			sel += idPart[dot:]
			idPart = idPart[:dot]
		}
		c.id = idPart
	}

	if idx := strings.IndexByte(sel, '.'); idx >= 0 {
		for _, class := range strings.Split(sel[idx+1:], ".") {
			if class != "" {
				c.classes = append(c.classes, class)
			}
		}
		sel = sel[:idx]
	}

	c.tag = strings.ToLower(sel)
	return c
}

func parseAttr(s string) attrMatch {
	if idx := strings.Index(s, "^="); idx >= 0 {
		return attrMatch{key: s[:idx], op: attrPrefix, val: strings.Trim(s[idx+2:], `"'`)}
	}
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		return attrMatch{key: s[:idx], op: attrEquals, val: strings.Trim(s[idx+1:], `"'`)}
	}
	return attrMatch{key: s, op: attrExists}
}

// Matches reports whether n matches any group of the selector. Ancestors
// are only considered up to, and excluding, scope; a nil scope means the
// whole tree.
func (s Selector) Matches(n, scope *html.Node) bool {
	for _, group := range s.groups {
		if matchGroup(n, scope, group) {
			return true
		}
	}
	return false
}

func matchGroup(n, scope *html.Node, parts []compound) bool {
	last := len(parts) - 1
	if !parts[last].matches(n) {
		return false
	}
	cur := n.Parent
	for i := last - 1; i >= 0; i-- {
		for cur != nil && cur != scope && !parts[i].matches(cur) {
			cur = cur.Parent
		}
		if cur == nil || cur == scope {
			return false
		}
		cur = cur.Parent
	}
	return true
}

func (c compound) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if c.tag != "" && c.tag != "*" && n.Data != c.tag {
		return false
	}
	if c.id != "" && Attr(n, "id") != c.id {
		return false
	}
	if len(c.classes) > 0 {
		have := strings.Fields(Attr(n, "class"))
		for _, want := range c.classes {
			if !contains(have, want) {
				return false
			}
		}
	}
	for _, a := range c.attrs {
		val, ok := LookupAttr(n, a.key)
		if !ok {
			return false
		}
		switch a.op {
		case attrEquals:
			if val != a.val {
				return false
			}
		case attrPrefix:
			if !strings.HasPrefix(val, a.val) {
				return false
			}
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// QueryAll returns the descendants of root matching sel, in document order.
// root itself is not considered.
func QueryAll(root *html.Node, sel Selector) []*html.Node {
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if sel.Matches(c, root) {
				results = append(results, c)
			}
			walk(c)
		}
	}
	walk(root)
	return results
}

// Query returns the first descendant of root matching sel, or nil.
func Query(root *html.Node, sel Selector) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n != root && sel.Matches(n, root) {
			found = n
			return false
		}
		return true
	})
	return found
}

// Closest returns n or its nearest ancestor below scope matching sel.
func Closest(n, scope *html.Node, sel Selector) *html.Node {
	for cur := n; cur != nil && cur != scope; cur = cur.Parent {
		if sel.Matches(cur, scope) {
			return cur
		}
	}
	return nil
}
