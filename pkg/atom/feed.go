package atom

import (
	"github.com/beevik/etree"
	"github.com/go-pkgz/lgr"
)

// mapFeed maps the root element. Feed fields are direct atom:* children of the root.
// In lenient mode missing mandatory fields are defaulted to their zero values.
func (m *mapper) mapFeed(root *etree.Element) (*Feed, error) {
	const scope = "feed"
	res := &Feed{Title: Text{Type: TextPlain}}

	if id := m.find(root, "id", directChild); id != nil {
		res.ID = textContent(id)
	} else if err := m.violation(&MissingFieldError{Scope: scope, Field: "id"}); err != nil {
		return nil, err
	}

	if titleEl := m.find(root, "title", directChild); titleEl != nil {
		title, err := m.mapText(titleEl, scope+"/title")
		if err != nil {
			return nil, err
		}
		res.Title = title
	} else if err := m.violation(&MissingFieldError{Scope: scope, Field: "title"}); err != nil {
		return nil, err
	}

	if updatedEl := m.find(root, "updated", directChild); updatedEl != nil {
		updated, err := m.parseTime(textContent(updatedEl))
		if err != nil {
			if verr := m.violation(&InvalidValueError{Scope: scope, Field: "updated", Value: textContent(updatedEl), Err: err}); verr != nil {
				return nil, verr
			}
		} else {
			res.Updated = updated
		}
	} else if err := m.violation(&MissingFieldError{Scope: scope, Field: "updated"}); err != nil {
		return nil, err
	}

	var err error
	res.Entries, err = collect(m, root, "entry", hasChildElements, func(el *etree.Element) (Entry, bool, error) {
		return m.mapEntry(el, scope+"/entry")
	})
	if err != nil {
		return nil, err
	}
	if res.Authors, err = m.collectPersons(root, RoleAuthor, scope); err != nil {
		return nil, err
	}
	if res.Links, err = m.collectLinks(root, scope); err != nil {
		return nil, err
	}
	if res.Categories, err = m.collectCategories(root, scope); err != nil {
		return nil, err
	}
	if res.Contributors, err = m.collectPersons(root, RoleContributor, scope); err != nil {
		return nil, err
	}

	// optional singletons, a generator that can't be mapped is omitted in both modes
	if genEl := m.find(root, "generator", directChild); genEl != nil {
		lenient := &mapper{ns: m.ns, relaxedDates: m.relaxedDates}
		if gen, ok, _ := lenient.mapGenerator(genEl, scope+"/generator"); ok {
			res.Generator = &gen
		}
	}
	if icon := m.find(root, "icon", directChild); icon != nil {
		res.Icon = textContent(icon)
	}
	if logo := m.find(root, "logo", directChild); logo != nil {
		res.Logo = textContent(logo)
	}
	if res.Rights, err = m.optionalText(root, "rights", scope, directChild); err != nil {
		return nil, err
	}
	if res.Subtitle, err = m.optionalText(root, "subtitle", scope, directChild); err != nil {
		return nil, err
	}

	lgr.Printf("[DEBUG] mapped feed %q with %d entries", res.ID, len(res.Entries))
	return res, nil
}
