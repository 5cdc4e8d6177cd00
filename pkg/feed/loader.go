package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/atomfeed/pkg/atom"
)

//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher

// ErrNotAtom is returned for documents detected as RSS or JSON feeds
var ErrNotAtom = errors.New("not an atom feed")

// ErrNoFeed is returned when lenient mapping finds nothing to map
var ErrNoFeed = errors.New("no feed in document")

// Fetcher retrieves remote documents
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Loader reads a document from a source and maps it to an atom feed.
// A source is "-" for stdin, an http(s) URL or a file path.
type Loader struct {
	fetcher Fetcher
	opts    atom.Options
	stdin   io.Reader
	maxSize int64
}

// LoaderParams defines Loader settings
type LoaderParams struct {
	Fetcher Fetcher
	Options atom.Options
	Stdin   io.Reader // defaults to os.Stdin
	MaxSize int64     // file and stdin size limit in bytes, 0 for no limit
}

// NewLoader makes a loader
func NewLoader(params LoaderParams) *Loader {
	res := &Loader{fetcher: params.Fetcher, opts: params.Options, stdin: params.Stdin, maxSize: params.MaxSize}
	if res.stdin == nil {
		res.stdin = os.Stdin
	}
	return res
}

// Load reads and maps a single source
func (l *Loader) Load(ctx context.Context, src string) (*atom.Feed, error) {
	data, err := l.read(ctx, src)
	if err != nil {
		return nil, err
	}

	if ft := gofeed.DetectFeedType(bytes.NewReader(data)); ft == gofeed.FeedTypeRSS || ft == gofeed.FeedTypeJSON {
		return nil, fmt.Errorf("%s: %w", src, ErrNotAtom)
	}

	feed, err := atom.ParseBytes(data, l.opts)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", src, err)
	}
	if feed == nil {
		return nil, fmt.Errorf("%s: %w", src, ErrNoFeed)
	}
	return feed, nil
}

// read returns the raw document of src
func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	switch {
	case src == "-":
		data, err := readLimited(l.stdin, l.maxSize)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	case strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://"):
		if l.fetcher == nil {
			return nil, fmt.Errorf("no fetcher for %s", src)
		}
		return l.fetcher.Fetch(ctx, src)
	default:
		fh, err := os.Open(src) //nolint:gosec // source path comes from CLI
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", src, err)
		}
		defer fh.Close()
		data, err := readLimited(fh, l.maxSize)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src, err)
		}
		return data, nil
	}
}
