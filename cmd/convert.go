// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// fetch → parse → normalize → render → write.
//
// Several inputs are converted concurrently, each with its own options.
package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/gaurav-prasanna/semanticmd/core/ast"
	"github.com/gaurav-prasanna/semanticmd/core/config"
	"github.com/gaurav-prasanna/semanticmd/core/extract"
	"github.com/gaurav-prasanna/semanticmd/core/fetch"
	"github.com/gaurav-prasanna/semanticmd/core/htmldom"
	"github.com/gaurav-prasanna/semanticmd/core/lower"
	"github.com/gaurav-prasanna/semanticmd/core/normalize"
	"github.com/gaurav-prasanna/semanticmd/core/output"
	"github.com/gaurav-prasanna/semanticmd/core/render"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// Flag variables.
var (
	flagConfig       string
	flagEngine       string
	flagFormat       string
	flagOutputDir    string
	flagMirror       bool
	flagStdout       bool
	flagBrowser      bool
	flagConcurrency  int
	flagMain         bool
	flagMeta         string
	flagRefify       bool
	flagTrackColumns bool
	flagDomain       string
	flagDebug        bool
	flagMarkMain     bool
	flagStripChrome  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <url|file>...",
	Short: "Convert pages or HTML files to semantic Markdown, JSON or PDF",
	Long: `Convert fetches each input (an http(s) URL or a local HTML file), optionally
narrows it to its main content, converts it to Markdown and writes it in the
selected format.

Examples:
  semanticmd convert https://example.com
  semanticmd convert https://example.com --main --meta extended --format json
  semanticmd convert page.html --refify --track-columns --stdout
  semanticmd convert https://a.com https://b.com --output_dir ./out --mirror`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	f := convertCmd.Flags()
	f.StringVar(&flagConfig, "config", "semanticmd.yaml", "YAML config file (optional)")

	// Pipeline flags.
	f.StringVar(&flagEngine, "engine", "semantic", "Conversion engine: semantic or commonmark")
	f.StringVar(&flagFormat, "format", "markdown", "Output format: markdown, json or pdf")
	f.BoolVar(&flagBrowser, "browser", false, "Render pages in headless Chrome before converting")
	f.IntVar(&flagConcurrency, "concurrency", 4, "Number of inputs converted at once")

	// Conversion flags.
	f.BoolVar(&flagMain, "main", false, "Convert only the detected main content")
	f.StringVar(&flagMeta, "meta", "", "Emit front matter from <head>: basic or extended")
	f.BoolVar(&flagRefify, "refify", false, "Replace long and media URLs with reference tokens")
	f.BoolVar(&flagTrackColumns, "track-columns", false, "Annotate table cells with column ids")
	f.StringVar(&flagDomain, "domain", "", "Website domain stripped from links to make them relative")
	f.BoolVar(&flagDebug, "debug", false, "Log every conversion step")
	f.BoolVar(&flagMarkMain, "mark-main", false, "Wrap the detected main content in <main> so the Markdown carries main markers")
	f.BoolVar(&flagStripChrome, "strip-chrome", false, "Keep only the main region of the Markdown, dropping nav, header, footer and aside")

	// Output flags.
	f.StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	f.BoolVar(&flagMirror, "mirror", false, "Lay out files by URL path instead of flat names")
	f.BoolVar(&flagStdout, "stdout", false, "Print results instead of writing files")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	renderer, err := render.New(cfg.Format)
	if err != nil {
		return err
	}
	normalizer, err := normalize.New(cfg.Engine)
	if err != nil {
		return err
	}
	if cfg.Conversion.StripChrome {
		normalizer = normalize.MainOnly(normalizer)
	}

	var writer *output.Writer
	if !flagStdout {
		writer, err = output.New(cfg.OutputDir, flagMirror)
		if err != nil {
			return fmt.Errorf("initializing output writer: %w", err)
		}
	}

	sources := dedupe(args)
	results := make([]result, len(sources))

	// Inputs that would overwrite another input's file are refused up front.
	var conflicts map[string]error
	if writer != nil {
		conflicts = writer.Conflicts(sources, renderer.Extension())
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Concurrency)
	for i, src := range sources {
		if err := conflicts[src]; err != nil {
			results[i] = result{source: src, err: fmt.Errorf("output: %w", err)}
			continue
		}
		g.Go(func() error {
			results[i] = convertOne(ctx, src, cfg, normalizer, renderer, writer)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var errCount int
	for _, r := range results {
		switch {
		case r.err != nil:
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.source, r.err)
			errCount++
		case flagStdout:
			os.Stdout.Write(r.data)
		default:
			fmt.Fprintf(os.Stdout, "✓ Written: %s\n", r.path)
			if r.mapPath != "" {
				fmt.Fprintf(os.Stdout, "  URL map: %s\n", r.mapPath)
			}
		}
	}
	if errCount > 0 {
		return fmt.Errorf("%d/%d inputs failed", errCount, len(sources))
	}
	return nil
}

type result struct {
	source  string
	data    []byte
	path    string
	mapPath string
	err     error
}

// convertOne runs a single input through the full pipeline.
func convertOne(
	ctx context.Context,
	src string,
	cfg *config.Config,
	normalizer core.Normalizer,
	renderer core.Renderer,
	writer *output.Writer,
) result {
	res := result{source: src}
	opts := cfg.Options()

	// 1. Fetch
	fetched, err := fetcherFor(src, cfg).Fetch(ctx, src)
	if err != nil {
		res.err = fmt.Errorf("fetch: %w", err)
		return res
	}

	// 2. Parse
	parser, err := opts.HTMLParser()
	if err != nil {
		res.err = err
		return res
	}
	doc, err := parser.ParseHTML(strings.NewReader(fetched.HTML))
	if err != nil {
		res.err = fmt.Errorf("parse: %w", err)
		return res
	}
	meta := buildMetadata(src, doc)
	if cfg.Conversion.MarkMainContent {
		extract.WrapMainContent(extract.New(opts).FindMainContent(doc))
	}

	// 3. Normalize to Markdown
	normalized, err := normalizer.Normalize(doc, opts)
	if err != nil {
		res.err = fmt.Errorf("normalize: %w", err)
		return res
	}
	if title := metaTitle(normalized.AST); title != "" {
		meta.Title = title
	}

	// 4. Render to output format
	res.data, err = renderer.Render(normalized, meta)
	if err != nil {
		res.err = fmt.Errorf("render: %w", err)
		return res
	}

	// 5. Write
	if writer == nil {
		return res
	}
	if res.path, err = writer.Write(src, res.data, renderer.Extension()); err != nil {
		res.err = err
		return res
	}
	if len(normalized.URLMap) > 0 && cfg.Format != "json" {
		if res.mapPath, err = writer.WriteURLMap(src, normalized.URLMap); err != nil {
			res.err = err
		}
	}
	return res
}

// applyFlags overrides config values with flags the user set explicitly.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("engine", func() { cfg.Engine = flagEngine })
	set("format", func() { cfg.Format = flagFormat })
	set("output_dir", func() { cfg.OutputDir = flagOutputDir })
	set("browser", func() { cfg.Browser = flagBrowser })
	set("concurrency", func() { cfg.Concurrency = flagConcurrency })
	set("main", func() { cfg.Conversion.ExtractMainContent = flagMain })
	set("meta", func() { cfg.Conversion.IncludeMetaData = flagMeta })
	set("refify", func() { cfg.Conversion.RefifyURLs = flagRefify })
	set("track-columns", func() { cfg.Conversion.TrackTableColumns = flagTrackColumns })
	set("domain", func() { cfg.Conversion.WebsiteDomain = flagDomain })
	set("debug", func() { cfg.Conversion.Debug = flagDebug })
	set("mark-main", func() { cfg.Conversion.MarkMainContent = flagMarkMain })
	set("strip-chrome", func() { cfg.Conversion.StripChrome = flagStripChrome })
}

// fetcherFor picks the fetcher for an input: files are read from disk,
// URLs go over HTTP or through the browser.
func fetcherFor(src string, cfg *config.Config) core.Fetcher {
	if !isURL(src) {
		return fetch.NewFile()
	}
	if cfg.Browser {
		b := fetch.NewBrowser(cfg.Conversion.Debug)
		b.Timeout = cfg.Timeout()
		return b
	}
	return fetch.NewWithTimeout(cfg.Timeout())
}

func isURL(src string) bool {
	parsed, err := url.Parse(src)
	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// dedupe drops repeated inputs, keeping first-seen order.
func dedupe(sources []string) []string {
	seen := make(map[string]bool, len(sources))
	out := sources[:0:0]
	for _, s := range sources {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// buildMetadata constructs PageMetadata from the source and parsed document.
func buildMetadata(src string, doc *html.Node) core.PageMetadata {
	meta := core.PageMetadata{
		URL:       src,
		Language:  "en",
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if parsed, err := url.Parse(src); err == nil && parsed.Host != "" {
		meta.Domain = parsed.Host
		meta.Path = parsed.Path
	} else {
		meta.Path = src
	}
	if title := htmldom.Query(doc, "title"); title != nil {
		meta.Title = strings.TrimSpace(htmldom.TextContent(title))
	}
	if lang := htmldom.AttrOr(htmldom.DocumentElement(doc), "lang", ""); lang != "" {
		meta.Language = lang
	}
	return meta
}

// metaTitle returns the title carried by the AST's Meta node, unescaped
// for display.
func metaTitle(nodes []ast.Node) string {
	m, ok := ast.Find(nodes, ast.OfType(ast.TypeMeta)).(*ast.Meta)
	if !ok {
		return ""
	}
	title, _ := m.Standard.Get("title")
	return lower.Unescape(title)
}
