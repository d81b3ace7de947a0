// Package decode feeds XML text into the structural mapping engine,
// turning encoding/xml tokens into the engine's event calls.
package decode

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/xmljson/internal/errors"
	"github.com/mcncl/xmljson/internal/writer"
)

// Convert reads one XML document from r and drives w with the
// corresponding structural events. Start-tag attributes are split into
// namespace declarations and plain attributes, whitespace-only
// character data is dropped as formatting, and comments, directives and
// the XML declaration are skipped. Processing instructions are
// forwarded; the engine decides which of them it can represent.
// Namespaced element and attribute names keep their local part.
func Convert(r io.Reader, w *writer.Writer) error {
	dec := xml.NewDecoder(r)
	if err := w.StartDocument(); err != nil {
		return err
	}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.NewInputError(fmt.Sprintf("invalid XML: %v", err), errors.ErrInvalidXML)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := w.StartElement(t.Name.Local); err != nil {
				return err
			}
			for _, a := range t.Attr {
				var err error
				switch {
				case a.Name.Space == "" && a.Name.Local == "xmlns":
					err = w.Namespace("", a.Value)
				case a.Name.Space == "xmlns":
					err = w.Namespace(a.Name.Local, a.Value)
				default:
					err = w.Attribute(a.Name.Local, a.Value)
				}
				if err != nil {
					return err
				}
			}
		case xml.EndElement:
			if err := w.EndElement(); err != nil {
				return err
			}
		case xml.CharData:
			text := string(t)
			if strings.TrimSpace(text) == "" {
				continue
			}
			if err := w.Characters(text); err != nil {
				return err
			}
		case xml.ProcInst:
			if t.Target == "xml" {
				// the XML declaration, not an instruction
				continue
			}
			if err := w.ProcessingInstruction(t.Target, string(t.Inst)); err != nil {
				return err
			}
		case xml.Comment, xml.Directive:
			// no JSON representation, skipped
		}
	}
	return w.EndDocument()
}

// ConvertString converts an XML string, writing the JSON document
// through w
func ConvertString(input string, w *writer.Writer) error {
	if strings.TrimSpace(input) == "" {
		return errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	return Convert(strings.NewReader(input), w)
}

// ConvertFile converts the XML document in the named file, writing the
// JSON document through w
func ConvertFile(path string, w *writer.Writer) error {
	if strings.TrimSpace(path) == "" {
		return errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewInputError(fmt.Sprintf("file '%s' not found", path), errors.ErrFileNotFound)
		}
		return errors.NewInputError(fmt.Sprintf("failed to open file '%s'", path), err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return errors.NewInputError(fmt.Sprintf("failed to stat file '%s'", path), err)
	}
	if stat.Size() == 0 {
		return errors.NewInputError(fmt.Sprintf("input file '%s' is empty", path), errors.ErrFileEmpty)
	}
	return Convert(file, w)
}
