package markup

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of an attribute, or "" when absent.
func Attr(n *html.Node, key string) string {
	val, _ := LookupAttr(n, key)
	return val
}

// LookupAttr returns the value of an attribute and whether it is present.
func LookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, adding it when absent.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// Text returns the concatenated text of all descendant text nodes.
func Text(n *html.Node) string {
	var sb strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	RemoveChildren(n)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// InnerHTML serialises the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// SetInnerHTML parses markup in the context of n and replaces its children.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return err
	}
	RemoveChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the children of the visited node.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// ByID returns the element with the given id, or nil.
func ByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && Attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Contains reports whether n is root or one of its descendants.
func Contains(root, n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}

// Hide sets display:none on an element, keeping any other inline style.
func Hide(n *html.Node) {
	style := strings.TrimSpace(Attr(n, "style"))
	if strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none") {
		return
	}
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	if style != "" {
		style += " "
	}
	SetAttr(n, "style", style+"display: none;")
}
