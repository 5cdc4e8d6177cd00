package atom

import (
	"github.com/beevik/etree"
	"github.com/go-pkgz/lgr"
)

// mapEntry maps atom:entry. Fields are searched anywhere below the entry element.
// An entry with a missing or invalid mandatory field is dropped in lenient mode,
// it is never repaired with defaults.
func (m *mapper) mapEntry(el *etree.Element, scope string) (Entry, bool, error) {
	id := m.find(el, "id", anyDescendant)
	if id == nil {
		return Entry{}, false, m.violation(&MissingFieldError{Scope: scope, Field: "id"})
	}
	title := m.find(el, "title", anyDescendant)
	if title == nil {
		return Entry{}, false, m.violation(&MissingFieldError{Scope: scope, Field: "title"})
	}
	updatedEl := m.find(el, "updated", anyDescendant)
	if updatedEl == nil {
		return Entry{}, false, m.violation(&MissingFieldError{Scope: scope, Field: "updated"})
	}
	updated, err := m.parseTime(textContent(updatedEl))
	if err != nil {
		return Entry{}, false, m.violation(&InvalidValueError{Scope: scope, Field: "updated", Value: textContent(updatedEl), Err: err})
	}

	res := Entry{ID: textContent(id), Title: textContent(title), Updated: updated}
	if res.Authors, err = m.collectPersons(el, RoleAuthor, scope); err != nil {
		return Entry{}, false, err
	}
	if res.Links, err = m.collectLinks(el, scope); err != nil {
		return Entry{}, false, err
	}
	if res.Categories, err = m.collectCategories(el, scope); err != nil {
		return Entry{}, false, err
	}
	if res.Contributors, err = m.collectPersons(el, RoleContributor, scope); err != nil {
		return Entry{}, false, err
	}

	if content := m.find(el, "content", anyDescendant); content != nil {
		c := mapContent(content)
		res.Content = &c
	}
	if res.Summary, err = m.optionalText(el, "summary", scope, anyDescendant); err != nil {
		return Entry{}, false, err
	}
	if res.Rights, err = m.optionalText(el, "rights", scope, anyDescendant); err != nil {
		return Entry{}, false, err
	}
	if published := m.find(el, "published", anyDescendant); published != nil {
		if t, perr := m.parseTime(textContent(published)); perr == nil {
			res.Published = &t
		} else {
			lgr.Printf("[DEBUG] %s: ignored published %q, %v", scope, textContent(published), perr)
		}
	}
	if sourceEl := m.find(el, "source", anyDescendant); sourceEl != nil {
		src, ok, serr := m.mapSource(sourceEl, scope+"/source")
		if serr != nil {
			return Entry{}, false, serr
		}
		if ok {
			res.Source = &src
		}
	}
	return res, true, nil
}

// optionalText maps an optional text construct, nil if there is no such element
func (m *mapper) optionalText(el *etree.Element, local, scope string, s strategy) (*Text, error) {
	found := m.find(el, local, s)
	if found == nil {
		return nil, nil
	}
	t, err := m.mapText(found, scope+"/"+local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
