package atom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// atomDoc wraps body into a feed root with the Atom default namespace
func atomDoc(body string) string {
	return fmt.Sprintf(`<feed xmlns="http://www.w3.org/2005/Atom">%s</feed>`, body)
}

const feedHead = `<id>u1</id><title>T</title><updated>2024-01-01T00:00:00Z</updated>`

func TestMapFeed_MandatoryFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		field   string
		invalid bool
		check   func(t *testing.T, feed *Feed)
	}{
		{
			name:  "missing id",
			body:  `<title>T</title><updated>2024-01-01T00:00:00Z</updated>`,
			field: "id",
			check: func(t *testing.T, feed *Feed) { assert.Equal(t, "", feed.ID) },
		},
		{
			name:  "missing title",
			body:  `<id>u1</id><updated>2024-01-01T00:00:00Z</updated>`,
			field: "title",
			check: func(t *testing.T, feed *Feed) { assert.Equal(t, Text{Type: TextPlain}, feed.Title) },
		},
		{
			name:  "missing updated",
			body:  `<id>u1</id><title>T</title>`,
			field: "updated",
			check: func(t *testing.T, feed *Feed) { assert.True(t, feed.Updated.IsZero()) },
		},
		{
			name:    "bad updated",
			body:    `<id>u1</id><title>T</title><updated>2024-13-45</updated>`,
			field:   "updated",
			invalid: true,
			check:   func(t *testing.T, feed *Feed) { assert.True(t, feed.Updated.IsZero()) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(atomDoc(tt.body), Options{Strict: true})
			require.Error(t, err)
			if tt.invalid {
				var invalidErr *InvalidValueError
				require.ErrorAs(t, err, &invalidErr)
				assert.Equal(t, "feed", invalidErr.Scope)
				assert.Equal(t, tt.field, invalidErr.Field)
			} else {
				var missingErr *MissingFieldError
				require.ErrorAs(t, err, &missingErr)
				assert.Equal(t, &MissingFieldError{Scope: "feed", Field: tt.field}, missingErr)
			}

			feed, err := ParseString(atomDoc(tt.body), Options{})
			require.NoError(t, err)
			require.NotNil(t, feed)
			tt.check(t, feed)
		})
	}
}

func TestMapFeed_TitleType(t *testing.T) {
	doc := atomDoc(`<id>u1</id><title type="markdown">*T*</title><updated>2024-01-01T00:00:00Z</updated>`)

	_, err := ParseString(doc, Options{Strict: true})
	require.Error(t, err)
	var enumErr *InvalidEnumError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, &InvalidEnumError{Scope: "feed/title", Field: "type", Value: "markdown"}, enumErr)
	assert.Equal(t, `feed/title: unrecognized value "markdown" for field "type"`, err.Error())

	feed, err := ParseString(doc, Options{})
	require.NoError(t, err)
	assert.Equal(t, Text{Value: "*T*", Type: TextPlain}, feed.Title)
}

func TestMapFeed_Namespaces(t *testing.T) {
	t.Run("prefixed atom namespace", func(t *testing.T) {
		doc := `<a:feed xmlns:a="http://www.w3.org/2005/Atom"><a:id>u1</a:id><a:title>T</a:title>` +
			`<a:updated>2024-01-01T00:00:00Z</a:updated><a:link href="http://x"/></a:feed>`
		feed, err := ParseString(doc, Options{Strict: true})
		require.NoError(t, err)
		assert.Equal(t, "u1", feed.ID)
		assert.Len(t, feed.Links, 1)
	})

	t.Run("no namespace", func(t *testing.T) {
		doc := `<feed>` + feedHead + `</feed>`
		_, err := ParseString(doc, Options{Strict: true})
		require.Error(t, err)
		assert.Equal(t, &MissingFieldError{Scope: "feed", Field: "id"}, err)

		feed, err := ParseString(doc, Options{})
		require.NoError(t, err)
		assert.Equal(t, "", feed.ID)
	})

	t.Run("foreign element with the same name", func(t *testing.T) {
		doc := atomDoc(`<x:id xmlns:x="urn:other">foreign</x:id>` + feedHead)
		feed, err := ParseString(doc, Options{Strict: true})
		require.NoError(t, err)
		assert.Equal(t, "u1", feed.ID)
	})

	t.Run("nested fields are not feed fields", func(t *testing.T) {
		doc := atomDoc(`<title>T</title><updated>2024-01-01T00:00:00Z</updated><wrap><id>nested</id></wrap>`)
		feed, err := ParseString(doc, Options{})
		require.NoError(t, err)
		assert.Equal(t, "", feed.ID)
	})
}

func TestMapFeed_Collections(t *testing.T) {
	t.Run("entries keep document order", func(t *testing.T) {
		body := feedHead
		for i := 1; i <= 5; i++ {
			body += fmt.Sprintf(`<entry><id>e%d</id><title>E%d</title><updated>2024-01-0%dT00:00:00Z</updated></entry>`, i, i, i)
		}
		feed, err := ParseString(atomDoc(body), Options{Strict: true})
		require.NoError(t, err)
		require.Len(t, feed.Entries, 5)
		for i, e := range feed.Entries {
			assert.Equal(t, fmt.Sprintf("e%d", i+1), e.ID)
		}
	})

	t.Run("invalid entry dropped, siblings kept", func(t *testing.T) {
		body := feedHead +
			`<entry><id>e1</id><title>E1</title><updated>2024-01-01T00:00:00Z</updated></entry>` +
			`<entry><id>e2</id><updated>2024-01-01T00:00:00Z</updated></entry>` +
			`<entry><id>e3</id><title>E3</title><updated>2024-01-01T00:00:00Z</updated></entry>`

		_, err := ParseString(atomDoc(body), Options{Strict: true})
		require.Error(t, err)
		assert.Equal(t, &MissingFieldError{Scope: "feed/entry", Field: "title"}, err)

		feed, err := ParseString(atomDoc(body), Options{})
		require.NoError(t, err)
		require.Len(t, feed.Entries, 2)
		assert.Equal(t, "e1", feed.Entries[0].ID)
		assert.Equal(t, "e3", feed.Entries[1].ID)
	})

	t.Run("pre-filter skips empty candidates in any mode", func(t *testing.T) {
		body := feedHead + `<entry/><entry>text only</entry><author/><contributor>x</contributor><link/><category/>`
		feed, err := ParseString(atomDoc(body), Options{Strict: true})
		require.NoError(t, err)
		assert.Empty(t, feed.Entries)
		assert.Empty(t, feed.Authors)
		assert.Empty(t, feed.Contributors)
		assert.Empty(t, feed.Links)
		assert.Empty(t, feed.Categories)
	})

	t.Run("namespace declaration is not an attribute", func(t *testing.T) {
		body := feedHead + `<link xmlns="http://www.w3.org/2005/Atom"/>`
		feed, err := ParseString(atomDoc(body), Options{Strict: true})
		require.NoError(t, err)
		assert.Empty(t, feed.Links)
	})

	t.Run("invalid persons links and categories", func(t *testing.T) {
		body := feedHead +
			`<author><email>a@example.com</email></author><author><name>A</name></author>` +
			`<link rel="self"/><link href="http://x"/>` +
			`<category scheme="s"/><category term="t"/>` +
			`<contributor><uri>http://c</uri></contributor>`

		tests := []struct {
			name string
			body string
			want *MissingFieldError
		}{
			{"author", `<author><email>a@example.com</email></author>`, &MissingFieldError{Scope: "feed/author", Field: "name"}},
			{"link", `<link rel="self"/>`, &MissingFieldError{Scope: "feed/link", Field: "href"}},
			{"category", `<category scheme="s"/>`, &MissingFieldError{Scope: "feed/category", Field: "term"}},
			{"contributor", `<contributor><uri>http://c</uri></contributor>`, &MissingFieldError{Scope: "feed/contributor", Field: "name"}},
		}
		for _, tt := range tests {
			_, err := ParseString(atomDoc(feedHead+tt.body), Options{Strict: true})
			assert.Equal(t, tt.want, err, tt.name)
		}

		feed, err := ParseString(atomDoc(body), Options{})
		require.NoError(t, err)
		assert.Equal(t, []Person{{Role: RoleAuthor, Name: "A"}}, feed.Authors)
		assert.Equal(t, []Link{{Href: "http://x"}}, feed.Links)
		assert.Equal(t, []Category{{Term: "t"}}, feed.Categories)
		assert.Empty(t, feed.Contributors)
	})
}

func TestMapFeed_OptionalFields(t *testing.T) {
	t.Run("empty generator omitted in any mode", func(t *testing.T) {
		doc := atomDoc(feedHead + `<generator uri="http://gen">  </generator>`)
		for _, strict := range []bool{false, true} {
			feed, err := ParseString(doc, Options{Strict: strict})
			require.NoError(t, err)
			assert.Nil(t, feed.Generator)
		}
	})

	// optional fields otherwise never fail a call, but the text type rule applies to every
	// text construct, so an unknown type on an optional subtitle or rights fails in strict mode
	t.Run("optional subtitle with unknown type fails strict, coerced lenient", func(t *testing.T) {
		doc := atomDoc(feedHead + `<subtitle type="rtf">S</subtitle>`)
		_, err := ParseString(doc, Options{Strict: true})
		assert.True(t, IsInvalidEnum(err))

		feed, err := ParseString(doc, Options{})
		require.NoError(t, err)
		assert.Equal(t, &Text{Value: "S", Type: TextPlain}, feed.Subtitle)
	})

	t.Run("optional rights with unknown type fails strict, coerced lenient", func(t *testing.T) {
		doc := atomDoc(feedHead + `<rights type="markdown">R</rights>`)
		_, err := ParseString(doc, Options{Strict: true})
		assert.True(t, IsInvalidEnum(err))

		feed, err := ParseString(doc, Options{})
		require.NoError(t, err)
		assert.Equal(t, &Text{Value: "R", Type: TextPlain}, feed.Rights)
	})

	t.Run("xhtml rights", func(t *testing.T) {
		doc := atomDoc(feedHead + `<rights type="xhtml"><div xmlns="http://www.w3.org/1999/xhtml">All <b>rights</b></div></rights>`)
		feed, err := ParseString(doc, Options{Strict: true})
		require.NoError(t, err)
		assert.Equal(t, &Text{Value: "All rights", Type: TextXHTML}, feed.Rights)
	})

	t.Run("icon and logo", func(t *testing.T) {
		doc := atomDoc(feedHead + `<icon>i.png</icon><logo></logo>`)
		feed, err := ParseString(doc, Options{})
		require.NoError(t, err)
		assert.Equal(t, "i.png", feed.Icon)
		assert.Equal(t, "", feed.Logo)
	})
}
