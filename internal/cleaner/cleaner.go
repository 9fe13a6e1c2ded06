// Package cleaner strips boilerplate from a blog post before it is rendered.
//
// The pipeline runs in a fixed order on a goquery document:
//
//  1. remove every element matching a noise rule
//  2. drop presentational marker classes, keeping their elements
//  3. append a page-break-avoidance style to <head>
//  4. remove every <script>
//
// The document is owned by the pipeline while it runs and is serialized to
// a self-contained HTML page afterwards.
package cleaner

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultPageBreakCSS keeps blocks and paragraphs on a single PDF page
const DefaultPageBreakCSS = "div, p { page-break-inside: avoid; }"

// ErrNoRoot is returned when a document has no <html> element to serialize.
var ErrNoRoot = errors.New("document has no html element")

// Rule matches elements by tag name, class, or both
type Rule struct {
	Tag   string `yaml:"tag"`
	Class string `yaml:"class"`
}

// Selector returns the CSS selector for the rule, or "" for an empty rule
func (r Rule) Selector() string {
	sel := r.Tag
	if r.Class != "" {
		sel += "." + r.Class
	}
	return sel
}

// DefaultNoise lists the boilerplate blocks of the archived blog theme
var DefaultNoise = []Rule{
	{Tag: "header"},
	{Tag: "footer"},
	{Tag: "section", Class: "cont-breadcrumb-sec"},
	{Tag: "div", Class: "blogdetail-right"},
	{Tag: "section", Class: "cont-keep-reading"},
	{Tag: "section", Class: "cont-worldwide-publishers"},
	{Tag: "section", Class: "cont-fixed-sec"},
}

// DefaultMarkers lists classes that are removed while their elements stay
var DefaultMarkers = []Rule{
	{Tag: "body", Class: "single-post"},
	{Tag: "section", Class: "cont-case-detail-content"},
}

// Config selects the rules a Cleaner applies. Nil slices fall back to the
// defaults; empty non-nil slices disable a step.
type Config struct {
	Noise   []Rule
	Markers []Rule
	CSS     string
}

// Cleaner applies the cleaning pipeline
type Cleaner struct {
	noise   []Rule
	markers []Rule
	css     string
}

// New creates a Cleaner from cfg
func New(cfg Config) *Cleaner {
	c := &Cleaner{
		noise:   cfg.Noise,
		markers: cfg.Markers,
		css:     cfg.CSS,
	}
	if c.noise == nil {
		c.noise = DefaultNoise
	}
	if c.markers == nil {
		c.markers = DefaultMarkers
	}
	if c.css == "" {
		c.css = DefaultPageBreakCSS
	}
	return c
}

// Clean runs the pipeline on doc and returns the serialized page.
// doc is modified in place and should be discarded afterwards.
func (c *Cleaner) Clean(doc *goquery.Document) ([]byte, error) {
	c.removeNoise(doc)
	c.stripMarkers(doc)
	c.injectStyle(doc)
	doc.Find("script").Remove()

	return Serialize(doc)
}

// CleanReader parses r as HTML and cleans it
func (c *Cleaner) CleanReader(r io.Reader) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return c.Clean(doc)
}

func (c *Cleaner) removeNoise(doc *goquery.Document) {
	for _, rule := range c.noise {
		if sel := rule.Selector(); sel != "" {
			doc.Find(sel).Remove()
		}
	}
}

func (c *Cleaner) stripMarkers(doc *goquery.Document) {
	for _, rule := range c.markers {
		if rule.Class == "" {
			continue
		}
		doc.Find(rule.Selector()).RemoveClass(rule.Class)
	}
}

func (c *Cleaner) injectStyle(doc *goquery.Document) {
	head := ensureHead(doc)
	head.AppendHtml("<style>\n" + c.css + "\n</style>")
}

// ensureHead returns the document head, creating one when it is missing
func ensureHead(doc *goquery.Document) *goquery.Selection {
	head := doc.Find("head").First()
	if head.Length() > 0 {
		return head
	}
	doc.Find("html").First().PrependHtml("<head></head>")
	return doc.Find("head").First()
}

// Serialize renders the <html> element as a standalone UTF-8 page
func Serialize(doc *goquery.Document) ([]byte, error) {
	root := doc.Find("html").First()
	if root.Length() == 0 {
		return nil, ErrNoRoot
	}

	if doc.Find("meta[charset]").Length() == 0 {
		ensureHead(doc).PrependHtml(`<meta charset="utf-8">`)
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n")
	if err := html.Render(&buf, root.Get(0)); err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}
	return buf.Bytes(), nil
}
