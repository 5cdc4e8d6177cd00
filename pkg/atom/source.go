package atom

import (
	"github.com/beevik/etree"
	"github.com/go-pkgz/lgr"
)

// mapSource maps atom:source. An unparsable updated value is left zero in both modes.
func (m *mapper) mapSource(el *etree.Element, scope string) (Source, bool, error) {
	id := m.find(el, "id", anyDescendant)
	if id == nil {
		return Source{}, false, m.violation(&MissingFieldError{Scope: scope, Field: "id"})
	}
	titleEl := m.find(el, "title", anyDescendant)
	if titleEl == nil {
		return Source{}, false, m.violation(&MissingFieldError{Scope: scope, Field: "title"})
	}
	title, err := m.mapText(titleEl, scope+"/title")
	if err != nil {
		return Source{}, false, err
	}

	res := Source{ID: textContent(id), Title: title}
	if updated := m.find(el, "updated", anyDescendant); updated != nil {
		if t, err := m.parseTime(textContent(updated)); err == nil {
			res.Updated = t
		} else {
			lgr.Printf("[DEBUG] %s: ignored updated %q, %v", scope, textContent(updated), err)
		}
	}
	return res, true, nil
}
