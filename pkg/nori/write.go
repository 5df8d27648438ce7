package nori

import (
	"bufio"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thecodec/bento/pkg/errors"
)

// Header is the XML declaration written before every document.
const Header = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// Write serializes root as a complete UTF-8 document.
func Write(w io.Writer, root *Element) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header); err != nil {
		return err
	}
	if err := writeElement(bw, root, 0); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile writes root to path, creating parent directories.
func WriteFile(path string, root *Element) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", filepath.Dir(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := Write(f, root); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}

// String returns the serialized element without the XML declaration.
func (e *Element) String() string {
	var sb strings.Builder
	bw := bufio.NewWriter(&sb)
	_ = writeElement(bw, e, 0)
	_ = bw.Flush()
	return sb.String()
}

func writeElement(w *bufio.Writer, e *Element, depth int) error {
	indent := strings.Repeat("  ", depth)
	w.WriteString(indent)
	w.WriteByte('<')
	w.WriteString(e.Tag)
	for _, a := range e.Attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		if err := xml.EscapeText(w, []byte(a.Value)); err != nil {
			return err
		}
		w.WriteByte('"')
	}
	if len(e.Children) == 0 {
		_, err := w.WriteString("/>\n")
		return err
	}
	w.WriteString(">\n")
	for _, c := range e.Children {
		if err := writeElement(w, c, depth+1); err != nil {
			return err
		}
	}
	w.WriteString(indent)
	w.WriteString("</")
	w.WriteString(e.Tag)
	_, err := w.WriteString(">\n")
	return err
}

// Read parses a document produced by [Write] (or any XML without mixed
// content) back into an element tree. Character data is ignored.
func Read(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var stack []*Element
	var root *Element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse scene document")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			e := &Element{Tag: t.Name.Local}
			for _, a := range t.Attr {
				e.Attrs = append(e.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, e)
			} else if root == nil {
				root = e
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "scene document has no root element")
	}
	return root, nil
}
