package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"

	"github.com/umputun/atomfeed/pkg/atom"
	"github.com/umputun/atomfeed/pkg/config"
	"github.com/umputun/atomfeed/pkg/feed"
)

// Opts with all CLI options
type Opts struct {
	Config  string        `short:"c" long:"config" env:"CONFIG" description:"config file (yaml)"`
	Strict  bool          `short:"s" long:"strict" description:"fail on the first violation instead of skipping it"`
	Relaxed bool          `long:"relaxed-dates" description:"accept dates in non RFC 3339 layouts"`
	Format  string        `short:"f" long:"format" choice:"json" choice:"yaml" choice:"rss" choice:"opml" description:"output format"`
	Timeout time.Duration `long:"timeout" description:"HTTP request timeout"`

	Args struct {
		Sources []string `positional-arg-name:"source" description:"feed file, http(s) URL or - for stdin"`
	} `positional-args:"yes"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// sourceResult is the output record of one source when several are loaded
type sourceResult struct {
	Source string     `json:"source" yaml:"source"`
	Feed   *atom.Feed `json:"feed,omitempty" yaml:"feed,omitempty"`
	Error  string     `json:"error,omitempty" yaml:"error,omitempty"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] [source...]"
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, opts, os.Stdin, os.Stdout)
	cancel()

	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// run loads all sources and writes them to out in the configured format
func run(ctx context.Context, opts Opts, stdin io.Reader, out io.Writer) error {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	applyOverrides(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	sources := opts.Args.Sources
	if len(sources) == 0 {
		sources = []string{"-"}
	}
	if cfg.Output.Format == config.FormatRSS && len(sources) != 1 {
		return fmt.Errorf("rss output needs exactly one source, got %d", len(sources))
	}

	fetcher := feed.NewHTTPFetcher(feed.FetcherParams{
		Timeout:   cfg.Fetch.Timeout,
		UserAgent: cfg.Fetch.UserAgent,
		Retries:   cfg.Fetch.Retries,
		MaxSize:   cfg.Fetch.SizeLimit(),
	})
	loader := feed.NewLoader(feed.LoaderParams{
		Fetcher: fetcher,
		Options: atom.Options{Strict: cfg.Parse.Strict, RelaxedDates: cfg.Parse.RelaxedDates},
		Stdin:   stdin,
		MaxSize: cfg.Fetch.SizeLimit(),
	})

	lgr.Printf("[DEBUG] loading %d sources, strict=%v", len(sources), cfg.Parse.Strict)
	results := feed.NewManager(loader, cfg.Fetch.MaxConcurrent).LoadAll(ctx, sources)

	if err := write(out, cfg.Output, results); err != nil {
		return err
	}
	return failures(results)
}

// applyOverrides sets config values given on the command line
func applyOverrides(cfg *config.Config, opts Opts) {
	if opts.Strict {
		cfg.Parse.Strict = true
	}
	if opts.Relaxed {
		cfg.Parse.RelaxedDates = true
	}
	if opts.Format != "" {
		cfg.Output.Format = opts.Format
	}
	if opts.Timeout > 0 {
		cfg.Fetch.Timeout = opts.Timeout
	}
}

// write renders results. A single source is written as a bare feed, several as a list of records.
func write(out io.Writer, params config.OutputConfig, results []feed.Result) error {
	gen := feed.NewGenerator(!params.RawHTML)

	switch params.Format {
	case config.FormatRSS:
		if results[0].Err != nil {
			return nil // reported by failures
		}
		rss, err := gen.GenerateRSS(results[0].Feed)
		if err != nil {
			return fmt.Errorf("failed to generate rss: %w", err)
		}
		_, err = io.WriteString(out, rss+"\n")
		return err
	case config.FormatOPML:
		opml, err := gen.GenerateOPML(results)
		if err != nil {
			return fmt.Errorf("failed to generate opml: %w", err)
		}
		_, err = io.WriteString(out, opml+"\n")
		return err
	}

	var value any
	if len(results) == 1 {
		if results[0].Err != nil {
			return nil
		}
		value = results[0].Feed
	} else {
		records := make([]sourceResult, 0, len(results))
		for _, r := range results {
			rec := sourceResult{Source: r.Source, Feed: r.Feed}
			if r.Err != nil {
				rec.Error = r.Err.Error()
			}
			records = append(records, rec)
		}
		value = records
	}

	if params.Format == config.FormatYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if !params.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// failures returns the error of a single failed source or a summary for several
func failures(results []feed.Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	switch {
	case len(errs) == 0:
		return nil
	case len(results) == 1:
		return errs[0]
	default:
		return fmt.Errorf("%d of %d sources failed: %w", len(errs), len(results), errors.Join(errs...))
	}
}

// setupLog sends logs to stderr, stdout is reserved for the output document
func setupLog(dbg bool) {
	logOpts := []lgr.Option{lgr.Out(os.Stderr), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError, lgr.Out(os.Stderr), lgr.Err(io.Discard)}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
