// Package testhelpers renders components and makes assertions about the
// resulting markup.
package testhelpers

import (
	"bytes"
	"context"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	openTagRe  = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9-]*)((?:\s[^>]*)?)>`)
	closeTagRe = regexp.MustCompile(`</([a-zA-Z][a-zA-Z0-9-]*)>`)
	attrRe     = regexp.MustCompile(`([a-zA-Z_:][-a-zA-Z0-9_:.]*)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'))?`)
)

var voidElements = []string{
	"area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr",
}

// tag is one opening tag found in the rendered markup
type tag struct {
	name  string
	attrs map[string]string
}

func (tg tag) classes() []string {
	return strings.Fields(tg.attrs["class"])
}

// TemplateRenderer renders a component and offers chainable assertions
// on its HTML
type TemplateRenderer struct {
	t    *testing.T
	html string
	tags []tag
}

// NewTemplateRenderer creates a renderer bound to t
func NewTemplateRenderer(t *testing.T) *TemplateRenderer {
	return &TemplateRenderer{t: t}
}

// Render renders the component, replacing any previous output
func (r *TemplateRenderer) Render(component templ.Component) *TemplateRenderer {
	r.t.Helper()
	var buf bytes.Buffer
	require.NoError(r.t, component.Render(context.Background(), &buf), "render component")
	r.html = buf.String()
	r.tags = parseTags(r.html)
	return r
}

// HTML returns the last rendered output
func (r *TemplateRenderer) HTML() string {
	return r.html
}

// AssertContains checks for a literal substring
func (r *TemplateRenderer) AssertContains(substring string) *TemplateRenderer {
	r.t.Helper()
	assert.Contains(r.t, r.html, substring)
	return r
}

// AssertNotContains checks that a literal substring is absent
func (r *TemplateRenderer) AssertNotContains(substring string) *TemplateRenderer {
	r.t.Helper()
	assert.NotContains(r.t, r.html, substring)
	return r
}

// AssertMatches checks the output against a regular expression
func (r *TemplateRenderer) AssertMatches(pattern string) *TemplateRenderer {
	r.t.Helper()
	assert.Regexp(r.t, regexp.MustCompile(pattern), r.html)
	return r
}

// AssertNotEmpty fails on blank output
func (r *TemplateRenderer) AssertNotEmpty() *TemplateRenderer {
	r.t.Helper()
	assert.NotEmpty(r.t, strings.TrimSpace(r.html))
	return r
}

// AssertHasDatastarAttribute checks that some element carries data-<attribute>
// with exactly value as written in the markup
func (r *TemplateRenderer) AssertHasDatastarAttribute(attribute, value string) *TemplateRenderer {
	r.t.Helper()
	name := "data-" + attribute
	var seen []string
	for _, tg := range r.tags {
		if v, ok := tg.attrs[name]; ok {
			if v == value {
				return r
			}
			seen = append(seen, v)
		}
	}
	assert.Failf(r.t, "missing datastar attribute", "%s=%q not found, values seen: %q", name, value, seen)
	return r
}

// AssertHasElement checks that at least one <tagName> exists
func (r *TemplateRenderer) AssertHasElement(tagName string) *TemplateRenderer {
	r.t.Helper()
	assert.NotZero(r.t, r.CountElements(tagName), "expected a <%s> element", tagName)
	return r
}

// AssertHasElementWithID checks that an element with the id exists
func (r *TemplateRenderer) AssertHasElementWithID(id string) *TemplateRenderer {
	r.t.Helper()
	_, ok := r.byID(id)
	assert.True(r.t, ok, "expected an element with id=%q", id)
	return r
}

// AssertHasClass checks that any element carries the class
func (r *TemplateRenderer) AssertHasClass(className string) *TemplateRenderer {
	r.t.Helper()
	for _, tg := range r.tags {
		if slices.Contains(tg.classes(), className) {
			return r
		}
	}
	assert.Failf(r.t, "missing class", "no element has class %q", className)
	return r
}

// AssertElementHasClass checks the class list of the element with the id
func (r *TemplateRenderer) AssertElementHasClass(id, className string) *TemplateRenderer {
	r.t.Helper()
	if tg, ok := r.requireID(id); ok {
		assert.Contains(r.t, tg.classes(), className, "class list of #%s", id)
	}
	return r
}

// AssertElementLacksClass is the inverse of AssertElementHasClass
func (r *TemplateRenderer) AssertElementLacksClass(id, className string) *TemplateRenderer {
	r.t.Helper()
	if tg, ok := r.requireID(id); ok {
		assert.NotContains(r.t, tg.classes(), className, "class list of #%s", id)
	}
	return r
}

// AssertPrintSuppressed checks that each region is hidden from print output
func (r *TemplateRenderer) AssertPrintSuppressed(ids ...string) *TemplateRenderer {
	r.t.Helper()
	for _, id := range ids {
		r.AssertElementHasClass(id, "d-print-none")
	}
	return r
}

// AssertInputValue checks for an <input> with the name and value
func (r *TemplateRenderer) AssertInputValue(name, value string) *TemplateRenderer {
	r.t.Helper()
	for _, tg := range r.tags {
		if tg.name == "input" && tg.attrs["name"] == name && tg.attrs["value"] == value {
			return r
		}
	}
	assert.Failf(r.t, "missing input", "no <input name=%q value=%q>", name, value)
	return r
}

// CountElements counts opening <tagName> tags
func (r *TemplateRenderer) CountElements(tagName string) int {
	n := 0
	for _, tg := range r.tags {
		if tg.name == tagName {
			n++
		}
	}
	return n
}

// AssertElementCount checks how many <tagName> elements were rendered
func (r *TemplateRenderer) AssertElementCount(tagName string, expected int) *TemplateRenderer {
	r.t.Helper()
	assert.Equal(r.t, expected, r.CountElements(tagName), "number of <%s> elements", tagName)
	return r
}

// AssertValid checks that every non-void element is closed. It is a tag
// balance check, not a parser.
func (r *TemplateRenderer) AssertValid() *TemplateRenderer {
	r.t.Helper()
	balance := map[string]int{}
	for _, tg := range r.tags {
		if !slices.Contains(voidElements, tg.name) {
			balance[tg.name]++
		}
	}
	for _, m := range closeTagRe.FindAllStringSubmatch(r.html, -1) {
		balance[strings.ToLower(m[1])]--
	}
	for name, n := range balance {
		assert.Zero(r.t, n, "unbalanced <%s>", name)
	}
	return r
}

func (r *TemplateRenderer) byID(id string) (tag, bool) {
	for _, tg := range r.tags {
		if tg.attrs["id"] == id {
			return tg, true
		}
	}
	return tag{}, false
}

func (r *TemplateRenderer) requireID(id string) (tag, bool) {
	r.t.Helper()
	tg, ok := r.byID(id)
	if !ok {
		assert.Failf(r.t, "missing element", "no element with id=%q", id)
	}
	return tg, ok
}

func parseTags(html string) []tag {
	var tags []tag
	for _, m := range openTagRe.FindAllStringSubmatch(html, -1) {
		tg := tag{name: strings.ToLower(m[1]), attrs: map[string]string{}}
		for _, a := range attrRe.FindAllStringSubmatch(strings.TrimSuffix(m[2], "/"), -1) {
			if _, exists := tg.attrs[a[1]]; exists {
				continue
			}
			tg.attrs[a[1]] = a[2] + a[3]
		}
		tags = append(tags, tg)
	}
	return tags
}
