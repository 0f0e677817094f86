package core

import (
	"errors"
	"log"

	"github.com/gaurav-prasanna/semanticmd/core/ast"
	"github.com/gaurav-prasanna/semanticmd/core/htmldom"
	"golang.org/x/net/html"
)

// DefaultMaxDepth bounds lowering and rendering recursion when
// Options.MaxDepth is unset.
const DefaultMaxDepth = 512

var (
	// ErrNoParser is returned when neither Options.Parser nor DefaultParser is set.
	ErrNoParser = errors.New("no HTML parser available: set Options.Parser")
	// ErrTooDeep is returned when a tree nests deeper than the configured limit.
	ErrTooDeep = errors.New("document nesting exceeds maximum depth")
)

// DefaultParser is used when Options.Parser is nil.
var DefaultParser Parser = htmldom.Parser{}

// MetaDataMode selects how much <head> metadata is emitted.
type MetaDataMode string

const (
	MetaOff      MetaDataMode = ""
	MetaBasic    MetaDataMode = "basic"
	MetaExtended MetaDataMode = "extended"
)

// Enabled reports whether any metadata is requested.
func (m MetaDataMode) Enabled() bool { return m != MetaOff }

// Extended reports whether Open Graph, Twitter and JSON-LD data are requested.
func (m MetaDataMode) Extended() bool { return m == MetaExtended }

// ElementHook lowers a DOM node itself. A non-empty result replaces the
// built-in handling for that node.
type ElementHook func(n *html.Node, opts *Options, indentLevel int) ([]ast.Node, error)

// NodeRenderHook renders an AST node itself. ok=true takes precedence over
// built-in rendering, even when the returned string is empty.
type NodeRenderHook func(node ast.Node, opts *Options, indentLevel int) (out string, ok bool, err error)

// CustomRenderHook renders Custom nodes.
type CustomRenderHook func(node *ast.Custom, opts *Options, indentLevel int) (string, error)

// Options configures one conversion. It is read-only during a call except
// for URLMap, which the refify pass fills in. Sharing one Options value
// between concurrent conversions is not safe.
type Options struct {
	// WebsiteDomain is stripped from the front of matching hrefs and srcs.
	WebsiteDomain string
	// ExtractMainContent narrows the document to its detected main content.
	ExtractMainContent bool
	// IncludeMetaData emits a front-matter block built from <head>.
	IncludeMetaData MetaDataMode
	// RefifyURLs replaces long and media URLs with short reference tokens.
	RefifyURLs bool
	// URLMap receives the prefix-to-token table when RefifyURLs is set.
	URLMap map[string]string
	// EnableTableColumnTracking annotates table cells with column ids.
	EnableTableColumnTracking bool
	// Debug logs each lowering and detection step.
	Debug bool
	// Parser overrides DefaultParser.
	Parser Parser

	OverrideElementProcessing ElementHook
	ProcessUnhandledElement   ElementHook
	OverrideNodeRenderer      NodeRenderHook
	RenderCustomNode          CustomRenderHook

	// Logger receives debug traces and recovered errors. Defaults to log.Default().
	Logger *log.Logger
	// MaxDepth bounds recursion. Defaults to DefaultMaxDepth.
	MaxDepth int
}

// Meta returns the metadata mode, tolerating a nil receiver.
func (o *Options) Meta() MetaDataMode {
	if o == nil {
		return MetaOff
	}
	return o.IncludeMetaData
}

// Depth returns the effective recursion limit.
func (o *Options) Depth() int {
	if o == nil || o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// HTMLParser returns the parser to use, or ErrNoParser.
func (o *Options) HTMLParser() (Parser, error) {
	if o != nil && o.Parser != nil {
		return o.Parser, nil
	}
	if DefaultParser != nil {
		return DefaultParser, nil
	}
	return nil, ErrNoParser
}

func (o *Options) logger() *log.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// Debugf logs only when Debug is set.
func (o *Options) Debugf(format string, args ...any) {
	if o == nil || !o.Debug {
		return
	}
	o.logger().Printf(format, args...)
}

// Warnf logs a recovered, non-fatal problem.
func (o *Options) Warnf(format string, args ...any) {
	o.logger().Printf(format, args...)
}
