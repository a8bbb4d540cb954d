// Package svg provides the small element tree charts are assembled from.
//
// Every drawable layer (series, axes, the canvas itself) is an [*Element]:
// a tag name, ordered attributes, optional text and children. Trees are
// serialized with [Element.WriteTo]. Attribute order is preserved so output
// is deterministic and easy to compare in tests.
//
// Numbers are written with at most three decimals (see [Num]); device
// coordinates need no more and it keeps documents small.
package svg

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Attr is a single attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a node of an SVG document.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	CDATA    bool // write Text as a CDATA section (stylesheets)
	Children []*Element
}

// New returns an empty element with the given tag name.
func New(name string) *Element {
	return &Element{Name: name}
}

// Group returns an empty <g> element.
func Group() *Element {
	return New("g")
}

// Set assigns an attribute, replacing a previous value of the same name.
// Numbers are formatted with [Num]; other values with fmt.
func (e *Element) Set(name string, value any) *Element {
	v := formatValue(value)
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = v
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: v})
	return e
}

// Get returns the value of an attribute.
func (e *Element) Get(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Class sets the class attribute.
func (e *Element) Class(class string) *Element { return e.Set("class", class) }

// ID sets the id attribute.
func (e *Element) ID(id string) *Element { return e.Set("id", id) }

// SetText replaces the character data of the element.
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// Add appends children in draw order. Nil children are skipped.
func (e *Element) Add(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// Empty reports whether the element has no children and no text.
func (e *Element) Empty() bool {
	return len(e.Children) == 0 && e.Text == ""
}

// Find returns the first descendant (depth first, including e) for which
// match returns true.
func (e *Element) Find(match func(*Element) bool) *Element {
	if match(e) {
		return e
	}
	for _, c := range e.Children {
		if f := c.Find(match); f != nil {
			return f
		}
	}
	return nil
}

// FindAll returns every descendant (including e) for which match returns
// true, in document order.
func (e *Element) FindAll(match func(*Element) bool) []*Element {
	var out []*Element
	if match(e) {
		out = append(out, e)
	}
	for _, c := range e.Children {
		out = append(out, c.FindAll(match)...)
	}
	return out
}

// WithClass matches elements whose class attribute equals class.
func WithClass(class string) func(*Element) bool {
	return func(e *Element) bool {
		v, ok := e.Get("class")
		return ok && v == class
	}
}

// WithName matches elements by tag name.
func WithName(name string) func(*Element) bool {
	return func(e *Element) bool { return e.Name == name }
}

// WriteTo serializes the tree with two-space indentation.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	e.write(&buf, 0)
	return buf.WriteTo(w)
}

// String returns the serialized tree.
func (e *Element) String() string {
	var buf bytes.Buffer
	e.write(&buf, 0)
	return buf.String()
}

func (e *Element) write(buf *bytes.Buffer, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(e.Name)
	for _, a := range e.Attrs {
		fmt.Fprintf(buf, ` %s="%s"`, a.Name, attrEscaper.Replace(a.Value))
	}

	switch {
	case len(e.Children) == 0 && e.Text == "":
		buf.WriteString("/>\n")
	case len(e.Children) == 0:
		buf.WriteByte('>')
		e.writeText(buf)
		fmt.Fprintf(buf, "</%s>\n", e.Name)
	default:
		buf.WriteString(">\n")
		if e.Text != "" {
			buf.WriteString(indent + "  ")
			e.writeText(buf)
			buf.WriteByte('\n')
		}
		for _, c := range e.Children {
			c.write(buf, depth+1)
		}
		fmt.Fprintf(buf, "%s</%s>\n", indent, e.Name)
	}
}

func (e *Element) writeText(buf *bytes.Buffer) {
	if e.CDATA {
		buf.WriteString("<![CDATA[")
		buf.WriteString(strings.ReplaceAll(e.Text, "]]>", "]]]]><![CDATA[>"))
		buf.WriteString("]]>")
		return
	}
	buf.WriteString(textEscaper.Replace(e.Text))
}

var (
	attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")
	textEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;")
)

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return Num(v)
	case float32:
		return Num(float64(v))
	case int:
		return strconv.Itoa(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
