package atom

import (
	"github.com/beevik/etree"
)

// mapPerson maps an author or contributor construct. The result has no role, the caller
// sets it when adding the person to a collection. Scope names the calling context.
func (m *mapper) mapPerson(el *etree.Element, scope string) (Person, bool, error) {
	name := m.find(el, "name", anyDescendant)
	if name == nil {
		return Person{}, false, m.violation(&MissingFieldError{Scope: scope, Field: "name"})
	}

	res := Person{Name: textContent(name)}
	if email := m.find(el, "email", anyDescendant); email != nil {
		res.Email = textContent(email)
	}
	if uri := m.find(el, "uri", anyDescendant); uri != nil {
		res.URI = textContent(uri)
	}
	return res, true, nil
}
