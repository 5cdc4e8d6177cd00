package atom

import (
	"github.com/beevik/etree"
)

// mapText maps a text construct. An absent type attribute means text; an unknown one
// fails in strict mode and falls back to text otherwise.
func (m *mapper) mapText(el *etree.Element, scope string) (Text, error) {
	res := Text{Value: textContent(el), Type: TextPlain}
	raw, ok := attr(el, "type")
	if !ok {
		return res, nil
	}

	switch raw {
	case "text":
		res.Type = TextPlain
	case "html":
		res.Type = TextHTML
	case "xhtml":
		res.Type = TextXHTML
	default:
		if err := m.violation(&InvalidEnumError{Scope: scope, Field: "type", Value: raw}); err != nil {
			return Text{}, err
		}
	}
	return res, nil
}

// mapContent maps atom:content. Value is set only when the element has content, markup
// children (xhtml payloads) are kept serialized.
func mapContent(el *etree.Element) Content {
	res := Content{Src: attrOr(el, "src"), Type: attrOr(el, "type")}
	if hasChildElements(el) {
		res.Value = innerXML(el)
		return res
	}
	res.Value = textContent(el)
	return res
}
