// Package atom maps Atom 1.0 syndication documents to typed values.
//
// Two validation policies are supported. Strict mode aborts on the first violated
// constraint with a typed error (ErrEmptyInput, MalformedDocumentError, MissingFieldError,
// InvalidValueError, InvalidEnumError). Lenient mode, the default, substitutes zero values
// for missing feed fields, coerces unknown text types to text and drops entries, persons,
// links, categories, generators and sources that can't be mapped, keeping their siblings.
//
// Feed-level fields are looked up as direct atom:* children of the root element. Fields
// of entries, persons and sources are matched by local name anywhere below their element.
package atom

import (
	"fmt"
	"io"
)

// Options controls the validation policy, the zero value is lenient
type Options struct {
	Strict       bool // fail on the first violated constraint
	RelaxedDates bool // accept non RFC 3339 dates in any layout dateparse recognizes
}

// Parse reads a document from r and maps it to a Feed. In lenient mode an empty, malformed
// or rootless document yields a nil Feed and a nil error; a document without a root element
// yields nil, nil in strict mode too. Read errors are returned in both modes.
func Parse(r io.Reader, opts Options) (*Feed, error) {
	if r == nil {
		return ParseBytes(nil, opts)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return ParseBytes(data, opts)
}

// ParseString maps a document given as a string, see Parse
func ParseString(s string, opts Options) (*Feed, error) {
	return ParseBytes([]byte(s), opts)
}

// ParseBytes maps a document given as a byte slice, see Parse
func ParseBytes(data []byte, opts Options) (*Feed, error) {
	doc, err := loadDocument(data, opts.Strict)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	m := &mapper{strict: opts.Strict, relaxedDates: opts.RelaxedDates, ns: doc.namespaces}
	return m.mapFeed(doc.root)
}
