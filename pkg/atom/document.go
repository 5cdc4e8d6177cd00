package atom

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/go-pkgz/lgr"
	"golang.org/x/net/html/charset"
)

const (
	// Namespace is the Atom 1.0 XML namespace
	Namespace = "http://www.w3.org/2005/Atom"
	// Prefix is bound to Namespace for qualified lookups
	Prefix = "atom"
)

// document is a loaded element tree with the namespace bindings used for qualified lookups
type document struct {
	root       *etree.Element
	namespaces map[string]string
}

// loadDocument builds the element tree. A nil document with a nil error means there is
// nothing to map: empty or malformed input in lenient mode, or no root element in any mode.
func loadDocument(data []byte, strict bool) (*document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		if strict {
			return nil, ErrEmptyInput
		}
		lgr.Printf("[DEBUG] empty input, nothing to map")
		return nil, nil
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	err := doc.ReadFromBytes(data)
	if err == nil {
		err = checkTopLevel(doc)
	}
	if err != nil {
		if strict {
			return nil, &MalformedDocumentError{Err: err}
		}
		lgr.Printf("[DEBUG] malformed document: %v", err)
		return nil, nil
	}

	root := doc.Root()
	if root == nil {
		lgr.Printf("[DEBUG] document has no root element")
		return nil, nil
	}

	return &document{root: root, namespaces: map[string]string{Prefix: Namespace}}, nil
}

// checkTopLevel rejects what encoding/xml lets through outside the root element:
// non-blank text and a second root. Comments, processing instructions and
// directives are allowed.
func checkTopLevel(doc *etree.Document) error {
	roots := 0
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if roots++; roots > 1 {
				return fmt.Errorf("%w: element <%s> after the root element", etree.ErrXML, t.FullTag())
			}
		case *etree.CharData:
			if text := strings.TrimSpace(t.Data); text != "" {
				return fmt.Errorf("%w: text %q outside the root element", etree.ErrXML, text)
			}
		}
	}
	return nil
}
