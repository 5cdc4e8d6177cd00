package atom

import (
	"fmt"
	"time"
)

// Feed is a mapped Atom feed document
type Feed struct {
	ID           string     `json:"id" yaml:"id"`
	Title        Text       `json:"title" yaml:"title"`
	Updated      time.Time  `json:"updated" yaml:"updated"`
	Entries      []Entry    `json:"entries" yaml:"entries"`
	Authors      []Person   `json:"authors" yaml:"authors"`
	Contributors []Person   `json:"contributors" yaml:"contributors"`
	Links        []Link     `json:"links" yaml:"links"`
	Categories   []Category `json:"categories" yaml:"categories"`
	Generator    *Generator `json:"generator,omitempty" yaml:"generator,omitempty"`
	Icon         string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	Logo         string     `json:"logo,omitempty" yaml:"logo,omitempty"`
	Rights       *Text      `json:"rights,omitempty" yaml:"rights,omitempty"`
	Subtitle     *Text      `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
}

// Entry is a single item of a feed. Title is plain text, unlike the feed title.
type Entry struct {
	ID           string     `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Updated      time.Time  `json:"updated" yaml:"updated"`
	Authors      []Person   `json:"authors" yaml:"authors"`
	Contributors []Person   `json:"contributors" yaml:"contributors"`
	Links        []Link     `json:"links" yaml:"links"`
	Categories   []Category `json:"categories" yaml:"categories"`
	Content      *Content   `json:"content,omitempty" yaml:"content,omitempty"`
	Summary      *Text      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Published    *time.Time `json:"published,omitempty" yaml:"published,omitempty"`
	Rights       *Text      `json:"rights,omitempty" yaml:"rights,omitempty"`
	Source       *Source    `json:"source,omitempty" yaml:"source,omitempty"`
}

// Source identifies the originating feed of a relocated entry
type Source struct {
	ID      string    `json:"id" yaml:"id"`
	Title   Text      `json:"title" yaml:"title"`
	Updated time.Time `json:"updated" yaml:"updated"`
}

// TextType is the content type of a text construct
type TextType int

// text construct types, TextPlain is the default
const (
	TextPlain TextType = iota
	TextHTML
	TextXHTML
)

// String returns the attribute form of the type
func (t TextType) String() string {
	switch t {
	case TextPlain:
		return "text"
	case TextHTML:
		return "html"
	case TextXHTML:
		return "xhtml"
	default:
		return fmt.Sprintf("TextType(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler
func (t TextType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *TextType) UnmarshalText(b []byte) error {
	for _, v := range []TextType{TextPlain, TextHTML, TextXHTML} {
		if v.String() == string(b) {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("unknown text type %q", string(b))
}

// Text is a text construct (title, subtitle, summary, rights)
type Text struct {
	Value string   `json:"value" yaml:"value"`
	Type  TextType `json:"type" yaml:"type"`
}

// Content holds entry content, either inline (Value) or out-of-line (Src)
type Content struct {
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Src   string `json:"src,omitempty" yaml:"src,omitempty"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Role tags a person as author or contributor
type Role int

// person roles
const (
	RoleAuthor Role = iota + 1
	RoleContributor
)

// String returns the element name of the role
func (r Role) String() string {
	switch r {
	case RoleAuthor:
		return "author"
	case RoleContributor:
		return "contributor"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Role) UnmarshalText(b []byte) error {
	switch string(b) {
	case "author":
		*r = RoleAuthor
	case "contributor":
		*r = RoleContributor
	default:
		return fmt.Errorf("unknown role %q", string(b))
	}
	return nil
}

// Person is an author or contributor, the role is set by the collection it was added to
type Person struct {
	Role  Role   `json:"role" yaml:"role"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	URI   string `json:"uri,omitempty" yaml:"uri,omitempty"`
}

// Link is an atom:link reference. Length is nil when missing or not a non-negative integer.
type Link struct {
	Href     string `json:"href" yaml:"href"`
	Rel      string `json:"rel,omitempty" yaml:"rel,omitempty"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	HrefLang string `json:"hreflang,omitempty" yaml:"hreflang,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Length   *int64 `json:"length,omitempty" yaml:"length,omitempty"`
}

// Category is an atom:category
type Category struct {
	Term   string `json:"term" yaml:"term"`
	Scheme string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Generator names the agent that produced the feed
type Generator struct {
	Value   string `json:"value" yaml:"value"`
	URI     string `json:"uri,omitempty" yaml:"uri,omitempty"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Link returns the first link with the given relation. An empty rel matches "alternate",
// which is also the relation of links without a rel attribute.
func (f *Feed) Link(rel string) (Link, bool) {
	return findLink(f.Links, rel)
}

// Link returns the first entry link with the given relation, see Feed.Link
func (e *Entry) Link(rel string) (Link, bool) {
	return findLink(e.Links, rel)
}

func findLink(links []Link, rel string) (Link, bool) {
	if rel == "" {
		rel = "alternate"
	}
	for _, l := range links {
		linkRel := l.Rel
		if linkRel == "" {
			linkRel = "alternate"
		}
		if linkRel == rel {
			return l, true
		}
	}
	return Link{}, false
}
