package atom

import (
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// strategy selects where a field is searched for relative to its parent element
type strategy int

const (
	// directChild matches immediate children by namespace-qualified name (atom:local)
	directChild strategy = iota
	// anyDescendant matches the whole subtree by local name only, ignoring namespaces.
	// Elements are visited breadth-first, so a direct child always wins over a nested
	// element with the same name (e.g. an entry id over its source/id). A nested foreign
	// element can still match when the expected one is missing.
	anyDescendant
)

// findAll returns all elements named local under parent, in document order for directChild
// and shallowest-first for anyDescendant
func (m *mapper) findAll(parent *etree.Element, local string, s strategy) []*etree.Element {
	res := []*etree.Element{}
	m.walk(parent, local, s, func(el *etree.Element) bool {
		res = append(res, el)
		return true
	})
	return res
}

// find returns the first element named local under parent or nil
func (m *mapper) find(parent *etree.Element, local string, s strategy) *etree.Element {
	var res *etree.Element
	m.walk(parent, local, s, func(el *etree.Element) bool {
		res = el
		return false
	})
	return res
}

// walk calls fn for every match until fn returns false
func (m *mapper) walk(parent *etree.Element, local string, s strategy, fn func(*etree.Element) bool) {
	if s == directChild {
		space := m.ns[Prefix]
		for _, el := range parent.ChildElements() {
			if el.Tag == local && el.NamespaceURI() == space {
				if !fn(el) {
					return
				}
			}
		}
		return
	}

	level := parent.ChildElements()
	for len(level) > 0 {
		var next []*etree.Element
		for _, el := range level {
			if el.Tag == local {
				if !fn(el) {
					return
				}
			}
			next = append(next, el.ChildElements()...)
		}
		level = next
	}
}

// attr returns the value of an unqualified attribute
func attr(el *etree.Element, key string) (string, bool) {
	for _, a := range el.Attr {
		if a.Space == "" && a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// attrOr returns the value of an unqualified attribute or an empty string
func attrOr(el *etree.Element, key string) string {
	v, _ := attr(el, key)
	return v
}

// hasAttributes reports whether el carries any attribute besides namespace declarations
func hasAttributes(el *etree.Element) bool {
	for _, a := range el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		return true
	}
	return false
}

func hasChildElements(el *etree.Element) bool {
	return len(el.ChildElements()) > 0
}

// textContent concatenates all character data of el and its descendants
func textContent(el *etree.Element) string {
	var text strings.Builder
	for _, node := range el.Child {
		switch token := node.(type) {
		case *etree.CharData:
			text.WriteString(token.Data)
		case *etree.Element:
			text.WriteString(textContent(token))
		}
	}
	return text.String()
}

// innerXML serializes the children of el, falling back to its text if serialization fails
func innerXML(el *etree.Element) string {
	doc := etree.NewDocument()
	wrap := doc.CreateElement("wrap")
	decls := namespaceDecls(el)
	for _, node := range el.Child {
		switch token := node.(type) {
		case *etree.Element:
			cp := token.Copy()
			bindPrefixes(cp, decls)
			wrap.AddChild(cp)
		case *etree.CharData:
			wrap.CreateText(token.Data)
		}
	}
	out, err := doc.WriteToString()
	if err != nil {
		return textContent(el)
	}
	out = strings.TrimPrefix(out, "<wrap>")
	return strings.TrimSuffix(out, "</wrap>")
}

// namespaceDecls returns the prefixed namespace declarations in scope at el, keyed by prefix
func namespaceDecls(el *etree.Element) map[string]string {
	res := map[string]string{}
	for e := el; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if _, ok := res[a.Key]; a.Space == "xmlns" && !ok {
				res[a.Key] = a.Value
			}
		}
	}
	return res
}

// bindPrefixes declares on el every prefix its subtree uses but doesn't declare itself,
// so the serialized element stands alone
func bindPrefixes(el *etree.Element, decls map[string]string) {
	used := map[string]bool{}
	var collect func(e *etree.Element)
	collect = func(e *etree.Element) {
		if e.Space != "" {
			used[e.Space] = true
		}
		for _, a := range e.Attr {
			if a.Space != "" && a.Space != "xmlns" && a.Space != "xml" {
				used[a.Space] = true
			}
		}
		for _, c := range e.ChildElements() {
			collect(c)
		}
	}
	collect(el)

	prefixes := make([]string, 0, len(used))
	for p := range used {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	for _, p := range prefixes {
		uri, ok := decls[p]
		if !ok || el.SelectAttr("xmlns:"+p) != nil {
			continue
		}
		el.CreateAttr("xmlns:"+p, uri)
	}
}
