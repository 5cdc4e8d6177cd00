package feed_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/atomfeed/pkg/atom"
	"github.com/umputun/atomfeed/pkg/feed"
	"github.com/umputun/atomfeed/pkg/feed/mocks"
)

const validAtom = `<feed xmlns="http://www.w3.org/2005/Atom">
	<id>urn:feed</id>
	<title>Loader Feed</title>
	<updated>2024-05-01T10:00:00Z</updated>
	<entry>
		<id>urn:entry:1</id>
		<title>One</title>
		<updated>2024-05-01T10:00:00Z</updated>
	</entry>
</feed>`

const rssDocument = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>RSS</title><link>https://example.com</link><description>d</description></channel></rss>`

func TestLoader_Load(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feed.xml")
		require.NoError(t, os.WriteFile(path, []byte(validAtom), 0o600))

		loader := feed.NewLoader(feed.LoaderParams{})
		f, err := loader.Load(context.Background(), path)
		require.NoError(t, err)
		require.NotNil(t, f)
		assert.Equal(t, "urn:feed", f.ID)
		assert.Equal(t, "Loader Feed", f.Title.Value)
		require.Len(t, f.Entries, 1)
		assert.Equal(t, "One", f.Entries[0].Title)
	})

	t.Run("missing file", func(t *testing.T) {
		loader := feed.NewLoader(feed.LoaderParams{})
		_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "nope.xml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("stdin", func(t *testing.T) {
		loader := feed.NewLoader(feed.LoaderParams{Stdin: strings.NewReader(validAtom)})
		f, err := loader.Load(context.Background(), "-")
		require.NoError(t, err)
		assert.Equal(t, "urn:feed", f.ID)
	})

	t.Run("stdin over size limit", func(t *testing.T) {
		loader := feed.NewLoader(feed.LoaderParams{Stdin: strings.NewReader(validAtom), MaxSize: 10})
		_, err := loader.Load(context.Background(), "-")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read stdin")
	})

	t.Run("url", func(t *testing.T) {
		fetcher := &mocks.FetcherMock{
			FetchFunc: func(ctx context.Context, url string) ([]byte, error) {
				return []byte(validAtom), nil
			},
		}
		loader := feed.NewLoader(feed.LoaderParams{Fetcher: fetcher})
		f, err := loader.Load(context.Background(), "https://example.com/atom.xml")
		require.NoError(t, err)
		assert.Equal(t, "urn:feed", f.ID)
		require.Len(t, fetcher.FetchCalls(), 1)
		assert.Equal(t, "https://example.com/atom.xml", fetcher.FetchCalls()[0].URL)
	})

	t.Run("url fetch error", func(t *testing.T) {
		fetcher := &mocks.FetcherMock{
			FetchFunc: func(ctx context.Context, url string) ([]byte, error) {
				return nil, errors.New("connection refused")
			},
		}
		loader := feed.NewLoader(feed.LoaderParams{Fetcher: fetcher})
		_, err := loader.Load(context.Background(), "http://example.com/atom.xml")
		require.EqualError(t, err, "connection refused")
	})

	t.Run("url without fetcher", func(t *testing.T) {
		loader := feed.NewLoader(feed.LoaderParams{})
		_, err := loader.Load(context.Background(), "https://example.com/atom.xml")
		require.Error(t, err)
	})

	t.Run("rss rejected", func(t *testing.T) {
		loader := feed.NewLoader(feed.LoaderParams{Stdin: strings.NewReader(rssDocument)})
		_, err := loader.Load(context.Background(), "-")
		require.ErrorIs(t, err, feed.ErrNotAtom)
	})

	t.Run("json feed rejected", func(t *testing.T) {
		doc := `{"version": "https://jsonfeed.org/version/1.1", "title": "JSON", "items": []}`
		loader := feed.NewLoader(feed.LoaderParams{Stdin: strings.NewReader(doc)})
		_, err := loader.Load(context.Background(), "-")
		require.ErrorIs(t, err, feed.ErrNotAtom)
	})

	t.Run("lenient empty input", func(t *testing.T) {
		loader := feed.NewLoader(feed.LoaderParams{Stdin: strings.NewReader("")})
		f, err := loader.Load(context.Background(), "-")
		require.ErrorIs(t, err, feed.ErrNoFeed)
		assert.Nil(t, f)
	})

	t.Run("strict empty input", func(t *testing.T) {
		loader := feed.NewLoader(feed.LoaderParams{Stdin: strings.NewReader("  \n"), Options: atom.Options{Strict: true}})
		_, err := loader.Load(context.Background(), "-")
		require.ErrorIs(t, err, atom.ErrEmptyInput)
	})

	t.Run("strict missing id", func(t *testing.T) {
		doc := `<feed xmlns="http://www.w3.org/2005/Atom"><title>t</title><updated>2024-05-01T10:00:00Z</updated></feed>`
		loader := feed.NewLoader(feed.LoaderParams{Stdin: strings.NewReader(doc), Options: atom.Options{Strict: true}})
		_, err := loader.Load(context.Background(), "-")
		require.Error(t, err)
		assert.True(t, atom.IsMissingField(err))
		assert.Contains(t, err.Error(), "map -:")
	})

	t.Run("lenient missing id", func(t *testing.T) {
		doc := `<feed xmlns="http://www.w3.org/2005/Atom"><title>t</title></feed>`
		loader := feed.NewLoader(feed.LoaderParams{Stdin: strings.NewReader(doc)})
		f, err := loader.Load(context.Background(), "-")
		require.NoError(t, err)
		assert.Empty(t, f.ID)
		assert.Equal(t, "t", f.Title.Value)
	})

	t.Run("strict malformed", func(t *testing.T) {
		loader := feed.NewLoader(feed.LoaderParams{Stdin: strings.NewReader("<feed><id>x</feed>"), Options: atom.Options{Strict: true}})
		_, err := loader.Load(context.Background(), "-")
		require.Error(t, err)
		assert.True(t, atom.IsMalformed(err))
	})
}
