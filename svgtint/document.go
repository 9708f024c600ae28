// Rewrites color class markers found in SVG documents into literal
// fill and stroke attributes, resolved against a theme palette.
// Documents are parsed into a small element tree, rewritten in place,
// and serialized back to bytes.
package svgtint

import (
	"encoding/xml"
	"io"
	"regexp"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

// Node is a member of an element's content: either an *Element or a Text.
type Node interface {
	isNode()
}

// Text is a run of character data, stored unescaped.
type Text string

func (Text) isNode() {}

// Attr is a single attribute. Space holds what the tokenizer reported
// for the name: the namespace URI when the prefix was declared in scope,
// or the literal prefix when it was not. Unprefixed attributes have an
// empty Space.
type Attr struct {
	Space, Local string
	Value        string
}

// NsDecl binds a prefix to a namespace URI. An empty prefix declares
// the default namespace.
type NsDecl struct {
	Prefix string
	URI    string
}

// Element is one XML element: its name, its attributes and namespace
// declarations in document order, and its ordered children.
type Element struct {
	Space, Local string
	Attrs        []Attr
	NsDecls      []NsDecl
	Children     []Node
}

func (*Element) isNode() {}

// attr returns the value of the named unprefixed attribute,
// or "" when absent.
func (el *Element) attr(local string) string {
	for _, attr := range el.Attrs {
		if attr.Space == "" && attr.Local == local {
			return attr.Value
		}
	}
	return ""
}

// setAttr updates the named unprefixed attribute, appending it
// when absent.
func (el *Element) setAttr(local, value string) {
	for i, attr := range el.Attrs {
		if attr.Space == "" && attr.Local == local {
			el.Attrs[i].Value = value
			return
		}
	}
	el.Attrs = append(el.Attrs, Attr{Local: local, Value: value})
}

// removeAttr drops the first unprefixed attribute with the given name.
// Prefixed attributes of the same local name are kept.
func (el *Element) removeAttr(local string) {
	for i, attr := range el.Attrs {
		if attr.Space == "" && attr.Local == local {
			el.Attrs = append(el.Attrs[:i], el.Attrs[i+1:]...)
			return
		}
	}
}

// Document is a parsed SVG file. Version and Encoding echo the xml
// declaration of the source (defaulting to "1.0" and "UTF-8") and are
// written back out by Serialize.
type Document struct {
	Version  string
	Encoding string
	Root     *Element
}

var (
	prologVersion  = regexp.MustCompile(`version=["']([^"']*)["']`)
	prologEncoding = regexp.MustCompile(`encoding=["']([^"']*)["']`)
)

// Parse reads an SVG document into its tree form. Comments, doctypes
// and foreign processing instructions are dropped; character data is
// kept verbatim, including inter-element whitespace. Any tokenizer
// error voids the whole document: there is no partial result.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{Version: "1.0", Encoding: "UTF-8"}
	decoder := xml.NewDecoder(r)
	decoder.Strict = true
	decoder.CharsetReader = charset.NewReaderLabel

	var stack []*Element
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "tokenizing svg")
		}
		switch token := t.(type) {
		case xml.ProcInst:
			if token.Target == "xml" && doc.Root == nil {
				readProlog(string(token.Inst), doc)
			}
		case xml.StartElement:
			el := newElement(token)
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, errors.New("svgtint: multiple root elements")
				}
				doc.Root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			// strict tokenizing guarantees pairing
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				break // whitespace around the root is not content
			}
			parent := stack[len(stack)-1]
			if n := len(parent.Children); n > 0 {
				if prev, ok := parent.Children[n-1].(Text); ok {
					// entity expansion splits runs of character data
					parent.Children[n-1] = prev + Text(token)
					break
				}
			}
			parent.Children = append(parent.Children, Text(token))
		}
	}
	if doc.Root == nil {
		return nil, errors.New("svgtint: missing root element")
	}
	return doc, nil
}

func readProlog(inst string, doc *Document) {
	if m := prologVersion.FindStringSubmatch(inst); m != nil {
		doc.Version = m[1]
	}
	if m := prologEncoding.FindStringSubmatch(inst); m != nil {
		doc.Encoding = m[1]
	}
}

// newElement splits the xmlns declarations of a start tag away from
// its ordinary attributes.
func newElement(se xml.StartElement) *Element {
	el := &Element{Space: se.Name.Space, Local: se.Name.Local}
	for _, attr := range se.Attr {
		switch {
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			el.NsDecls = append(el.NsDecls, NsDecl{URI: attr.Value})
		case attr.Name.Space == "xmlns":
			el.NsDecls = append(el.NsDecls, NsDecl{Prefix: attr.Name.Local, URI: attr.Value})
		default:
			el.Attrs = append(el.Attrs, Attr{
				Space: attr.Name.Space,
				Local: attr.Name.Local,
				Value: attr.Value,
			})
		}
	}
	return el
}
