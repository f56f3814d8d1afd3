// Package docs renders the documentation panels shown next to the generators.
//
// Panels are markdown assets. Overview panels are text templates over the
// current config; the other panels are static.
package docs

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Page names.
const (
	Home              = "home"
	PerimeterOverview = "perimeter-overview"
	Perimeter         = "perimeter"
	RBACOverview      = "rbac-overview"
	RBAC              = "rbac"
)

// ErrUnknownPage is returned for a page name with no markdown asset.
var ErrUnknownPage = errors.New("unknown documentation page")

//go:embed content/*.md
var content embed.FS

var (
	pages = template.Must(template.New("").Option("missingkey=error").ParseFS(content, "content/*.md"))

	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
)

// static pages take no template data.
var static = map[string]bool{
	Home:      true,
	Perimeter: true,
	RBAC:      true,
}

// Static reports whether page can be rendered without data.
func Static(page string) bool {
	return static[page]
}

// StaticPages lists the pages served without data, sorted.
func StaticPages() []string {
	return []string{Home, Perimeter, RBAC}
}

// Section is a second-level heading of a page.
type Section struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Page is a rendered documentation panel.
type Page struct {
	Name     string    `json:"name"`
	HTML     string    `json:"html"`
	Sections []Section `json:"sections"`
}

// Markdown executes the page template with data and returns the markdown source.
func Markdown(page string, data any) (string, error) {
	tmpl := pages.Lookup(page + ".md")
	if tmpl == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s: %w", page, err)
	}
	return buf.String(), nil
}

// Render returns the page as HTML along with its section headings.
func Render(page string, data any) (*Page, error) {
	src, err := Markdown(page, data)
	if err != nil {
		return nil, err
	}
	source := []byte(src)

	doc := md.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", page, err)
	}

	secs, err := sections(doc, source)
	if err != nil {
		return nil, fmt.Errorf("collecting sections of %s: %w", page, err)
	}

	return &Page{
		Name:     page,
		HTML:     buf.String(),
		Sections: secs,
	}, nil
}

func sections(doc ast.Node, source []byte) ([]Section, error) {
	var out []Section
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}
		s := Section{Title: headingText(heading, source)}
		if id, ok := heading.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				s.ID = string(b)
			}
		}
		out = append(out, s)
		return ast.WalkSkipChildren, nil
	})
	return out, err
}

func headingText(node ast.Node, source []byte) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
		case *ast.CodeSpan, *ast.Emphasis:
			b.WriteString(headingText(c, source))
		}
	}
	return strings.TrimSpace(b.String())
}
