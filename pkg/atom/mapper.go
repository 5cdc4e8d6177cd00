package atom

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/beevik/etree"
	"github.com/go-pkgz/lgr"
)

// mapper is the per-call context shared by all construct mappers. It holds no state
// between calls; every mapped value is built fresh and owned by its parent.
type mapper struct {
	strict       bool
	relaxedDates bool
	ns           map[string]string
}

// violation reports a broken constraint. Strict mode returns err to abort the call,
// lenient mode logs it and returns nil so the caller defaults or drops the value.
func (m *mapper) violation(err error) error {
	if m.strict {
		return err
	}
	lgr.Printf("[DEBUG] %v", err)
	return nil
}

// parseTime parses an RFC 3339 date-time, any layout dateparse knows is accepted with relaxedDates
func (m *mapper) parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err == nil || !m.relaxedDates {
		return t, err
	}
	if relaxed, rerr := dateparse.ParseAny(raw); rerr == nil {
		return relaxed, nil
	}
	return time.Time{}, err
}

// collect maps every direct child named local. Candidates failing keep are skipped before
// mapping, candidates the mapper rejects in lenient mode are dropped, siblings are unaffected.
func collect[T any](m *mapper, parent *etree.Element, local string, keep func(*etree.Element) bool,
	mapFn func(el *etree.Element) (T, bool, error)) ([]T, error) {
	res := make([]T, 0)
	for _, el := range m.findAll(parent, local, directChild) {
		if !keep(el) {
			continue
		}
		v, ok, err := mapFn(el)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		res = append(res, v)
	}
	return res, nil
}

// collectPersons maps author or contributor children and tags them with role
func (m *mapper) collectPersons(parent *etree.Element, role Role, scope string) ([]Person, error) {
	local := role.String()
	return collect(m, parent, local, hasChildElements, func(el *etree.Element) (Person, bool, error) {
		p, ok, err := m.mapPerson(el, scope+"/"+local)
		p.Role = role
		return p, ok, err
	})
}

func (m *mapper) collectLinks(parent *etree.Element, scope string) ([]Link, error) {
	return collect(m, parent, "link", hasAttributes, func(el *etree.Element) (Link, bool, error) {
		return m.mapLink(el, scope+"/link")
	})
}

func (m *mapper) collectCategories(parent *etree.Element, scope string) ([]Category, error) {
	return collect(m, parent, "category", hasAttributes, func(el *etree.Element) (Category, bool, error) {
		return m.mapCategory(el, scope+"/category")
	})
}
