package feed

import (
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/atomfeed/pkg/atom"
)

// Generator renders mapped atom feeds as RSS 2.0 and OPML documents
type Generator struct {
	ugc      *bluemonday.Policy // markup allowed in descriptions
	strip    *bluemonday.Policy // plain text fields
	sanitize bool
}

// NewGenerator creates a new feed generator. With sanitize set, html in descriptions
// is reduced to a safe subset, otherwise it is passed through.
func NewGenerator(sanitize bool) *Generator {
	return &Generator{ugc: bluemonday.UGCPolicy(), strip: bluemonday.StrictPolicy(), sanitize: sanitize}
}

// GenerateRSS converts an atom feed to an RSS 2.0 document
func (g *Generator) GenerateRSS(f *atom.Feed) (string, error) {
	if f == nil {
		return "", fmt.Errorf("nil feed")
	}

	channel := &RSSChannel{
		Title:       g.plain(f.Title),
		Description: g.plain(f.Title),
		Items:       make([]*RSSItem, 0, len(f.Entries)),
	}
	if alt, ok := f.Link("alternate"); ok {
		channel.Link = alt.Href
	}
	if self, ok := f.Link("self"); ok {
		channel.AtomLink = &AtomLink{Href: self.Href, Rel: "self", Type: "application/rss+xml"}
	}
	if f.Subtitle != nil {
		channel.Description = g.markup(*f.Subtitle)
	}
	if !f.Updated.IsZero() {
		channel.LastBuildDate = f.Updated.Format(time.RFC1123Z)
	}
	if f.Rights != nil {
		channel.Copyright = g.plain(*f.Rights)
	}
	if f.Generator != nil {
		channel.Generator = strings.TrimSpace(f.Generator.Value)
	}
	if f.Logo != "" {
		channel.Image = &RSSImage{URL: f.Logo, Title: channel.Title, Link: channel.Link}
	}
	for _, c := range f.Categories {
		channel.Categories = append(channel.Categories, categoryName(c))
	}

	for _, e := range f.Entries {
		channel.Items = append(channel.Items, g.convertToRSSItem(e))
	}

	feed := &RSS{Version: "2.0", Atom: atom.Namespace, Channel: channel}
	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

// convertToRSSItem converts an atom entry to an RSS item
func (g *Generator) convertToRSSItem(e atom.Entry) *RSSItem {
	item := &RSSItem{
		Title: e.Title,
		GUID:  &RSSGUID{Value: e.ID, IsPermaLink: "false"},
	}
	if alt, ok := e.Link("alternate"); ok {
		item.Link = alt.Href
	}
	if enc, ok := e.Link("enclosure"); ok {
		item.Enclosure = &RSSEnclosure{URL: enc.Href, Type: enc.Type}
		if enc.Length != nil {
			item.Enclosure.Length = *enc.Length
		}
	}

	// content wins over summary when it is inline text or markup
	if e.Content != nil && e.Content.Value != "" {
		switch e.Content.Type {
		case "", "text":
			item.Description = e.Content.Value
		case "html", "xhtml", "text/html", "application/xhtml+xml":
			item.Description = g.sanitized(e.Content.Value)
		}
	}
	if item.Description == "" && e.Summary != nil {
		item.Description = g.markup(*e.Summary)
	}

	if len(e.Authors) > 0 {
		item.Author = personName(e.Authors[0])
	}

	published := e.Updated
	if e.Published != nil {
		published = *e.Published
	}
	item.PubDate = published.Format(time.RFC1123Z)

	for _, c := range e.Categories {
		item.Categories = append(item.Categories, categoryName(c))
	}
	return item
}

// GenerateOPML creates an OPML file listing loaded feeds, failed results are skipped
func (g *Generator) GenerateOPML(results []Result) (string, error) {
	type outline struct {
		XMLName xml.Name `xml:"outline"`
		Text    string   `xml:"text,attr"`
		Title   string   `xml:"title,attr"`
		Type    string   `xml:"type,attr"`
		XMLUrl  string   `xml:"xmlUrl,attr"`
		HTMLUrl string   `xml:"htmlUrl,attr,omitempty"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(results))
	for _, r := range results {
		if r.Err != nil || r.Feed == nil {
			continue
		}
		title := g.plain(r.Feed.Title)
		o := outline{Text: title, Title: title, Type: "atom", XMLUrl: r.Source}
		if self, ok := r.Feed.Link("self"); ok {
			o.XMLUrl = self.Href
		}
		if alt, ok := r.Feed.Link("alternate"); ok {
			o.HTMLUrl = alt.Href
		}
		outlines = append(outlines, o)
	}

	doc := opml{
		Version: "2.0",
		Head: head{
			Title:       "Atom Feed Subscriptions",
			DateCreated: time.Now().Format(time.RFC1123Z),
		},
		Body: body{Outlines: outlines},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}

// plain returns the text of a text construct with any markup removed
func (g *Generator) plain(t atom.Text) string {
	if t.Type == atom.TextPlain {
		return t.Value
	}
	return strings.TrimSpace(html.UnescapeString(g.strip.Sanitize(t.Value)))
}

// markup returns a text construct as html, plain text is returned as is
func (g *Generator) markup(t atom.Text) string {
	if t.Type == atom.TextPlain {
		return t.Value
	}
	return g.sanitized(t.Value)
}

func (g *Generator) sanitized(s string) string {
	if !g.sanitize {
		return s
	}
	return g.ugc.Sanitize(s)
}

// personName formats a person the way RSS author fields usually look, "email (name)"
func personName(p atom.Person) string {
	if p.Email == "" {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Email, p.Name)
}

func categoryName(c atom.Category) string {
	if c.Label != "" {
		return c.Label
	}
	return c.Term
}
