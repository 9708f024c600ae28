package svgtint

import (
	"bytes"
	"strings"
)

// the xml prefix is predeclared and never carries an explicit xmlns
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

var (
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// Serialize reconstructs the svg byte stream: the xml declaration,
// start tags with attributes followed by namespace declarations,
// character data, and explicit end tags. Elements keep the order and
// nesting of the parsed source.
func (doc *Document) Serialize() []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="`)
	buf.WriteString(doc.Version)
	buf.WriteString(`" encoding="`)
	buf.WriteString(doc.Encoding)
	buf.WriteString(`"?>`)
	if doc.Root != nil {
		writeElement(&buf, doc.Root, nil)
	}
	return buf.Bytes()
}

func writeElement(buf *bytes.Buffer, el *Element, scopes []map[string]string) {
	if len(el.NsDecls) > 0 {
		frame := make(map[string]string, len(el.NsDecls))
		for _, decl := range el.NsDecls {
			frame[decl.URI] = decl.Prefix
		}
		scopes = append(scopes, frame)
	}

	name := qualifiedName(el.Space, el.Local, scopes)
	buf.WriteByte('<')
	buf.WriteString(name)
	for _, attr := range el.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(qualifiedName(attr.Space, attr.Local, scopes))
		buf.WriteString(`="`)
		attrEscaper.WriteString(buf, attr.Value)
		buf.WriteByte('"')
	}
	for _, decl := range el.NsDecls {
		buf.WriteByte(' ')
		buf.WriteString("xmlns")
		if decl.Prefix != "" {
			buf.WriteByte(':')
			buf.WriteString(decl.Prefix)
		}
		buf.WriteString(`="`)
		attrEscaper.WriteString(buf, decl.URI)
		buf.WriteByte('"')
	}
	buf.WriteByte('>')

	for _, child := range el.Children {
		switch node := child.(type) {
		case *Element:
			writeElement(buf, node, scopes)
		case Text:
			textEscaper.WriteString(buf, string(node))
		}
	}

	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteByte('>')
}

// qualifiedName renders a name in its prefixed source form. The scopes
// map declared namespace URIs back to their prefixes; a space that was
// never declared is already a literal prefix.
func qualifiedName(space, local string, scopes []map[string]string) string {
	prefix := resolvePrefix(space, scopes)
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

func resolvePrefix(space string, scopes []map[string]string) string {
	if space == "" {
		return ""
	}
	for i := len(scopes) - 1; i >= 0; i-- {
		if prefix, ok := scopes[i][space]; ok {
			return prefix
		}
	}
	if space == xmlNamespace {
		return "xml"
	}
	if strings.Contains(space, "://") {
		// declared somewhere above our root fragment, nothing to map to
		return ""
	}
	return space
}
