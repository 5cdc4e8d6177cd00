package atom

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// mapLink maps atom:link. A length that is not a non-negative integer is left unset in any mode.
func (m *mapper) mapLink(el *etree.Element, scope string) (Link, bool, error) {
	href, ok := attr(el, "href")
	if !ok {
		return Link{}, false, m.violation(&MissingFieldError{Scope: scope, Field: "href"})
	}

	res := Link{
		Href:     href,
		Rel:      attrOr(el, "rel"),
		Type:     attrOr(el, "type"),
		HrefLang: attrOr(el, "hreflang"),
		Title:    attrOr(el, "title"),
	}
	if raw, ok := attr(el, "length"); ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && n >= 0 {
			res.Length = &n
		}
	}
	return res, true, nil
}

func (m *mapper) mapCategory(el *etree.Element, scope string) (Category, bool, error) {
	term, ok := attr(el, "term")
	if !ok {
		return Category{}, false, m.violation(&MissingFieldError{Scope: scope, Field: "term"})
	}
	return Category{Term: term, Scheme: attrOr(el, "scheme"), Label: attrOr(el, "label")}, true, nil
}

// mapGenerator maps atom:generator, the element text is mandatory
func (m *mapper) mapGenerator(el *etree.Element, scope string) (Generator, bool, error) {
	value := textContent(el)
	if strings.TrimSpace(value) == "" {
		return Generator{}, false, m.violation(&MissingFieldError{Scope: scope, Field: "value"})
	}
	return Generator{Value: value, URI: attrOr(el, "uri"), Version: attrOr(el, "version")}, true, nil
}
