package writer

import (
	"strings"

	"github.com/mcncl/xmljson/internal/errors"
	"github.com/mcncl/xmljson/internal/stream"
)

// MultiplePITarget is the processing instruction target that declares
// an array of repeated elements, as in <?xml-multiple item?>
const MultiplePITarget = "xml-multiple"

// field is a buffered attribute or namespace declaration
type field struct {
	name  string
	value string
}

// elementScope holds the state of one open element until its JSON
// shape is known. An element stays uncommitted while it could still
// end up a scalar; the first child or array open commits it as an
// object, flushing the buffered fields.
type elementScope struct {
	name      string
	doc       bool
	committed bool
	childSeen bool
	text      strings.Builder
	leads     []field
	array     string
	arrayPI   bool
}

// Writer maps XML-style structural events onto a JSON token stream.
// Events arrive through the method calls and drive the wrapped target
// so that the token sequence forms one well-formed JSON document. The
// document is wrapped in a top-level object holding the root element
// as its first field; stripping that wrapper is RemoveRoot's job.
//
// A Writer handles a single document and is not safe for concurrent
// use.
type Writer struct {
	target     stream.Target
	multiplePI bool
	stack      []*elementScope
	started    bool
	ended      bool
}

// New creates a Writer driving target. With multiplePI set, xml-multiple
// processing instructions declare arrays; otherwise they are rejected
// like any other processing instruction.
func New(target stream.Target, multiplePI bool) *Writer {
	return &Writer{target: target, multiplePI: multiplePI}
}

func (w *Writer) top() *elementScope {
	return w.stack[len(w.stack)-1]
}

func (w *Writer) ready() error {
	if w.ended {
		return errors.NewStructuralError("document has already been ended", errors.ErrDocumentEnded)
	}
	if !w.started {
		return errors.NewStructuralError("document has not been started", errors.ErrDocumentNotStarted)
	}
	return nil
}

// commit turns the element into a JSON object, flushing buffered
// attributes, namespaces and text in arrival order
func (w *Writer) commit(s *elementScope) error {
	if err := w.target.StartObject(); err != nil {
		return err
	}
	for _, f := range s.leads {
		if err := w.target.Name(f.name); err != nil {
			return err
		}
		if err := w.target.Value(stream.String(f.value)); err != nil {
			return err
		}
	}
	s.leads = nil
	if s.text.Len() > 0 {
		// formatting whitespace ahead of the first child is not content
		if text := s.text.String(); strings.TrimSpace(text) != "" {
			if err := w.target.Name("$"); err != nil {
				return err
			}
			if err := w.target.Value(stream.String(text)); err != nil {
				return err
			}
		}
		s.text.Reset()
	}
	s.committed = true
	return nil
}

func (w *Writer) closeArray(s *elementScope) error {
	if err := w.target.EndArray(); err != nil {
		return err
	}
	s.array = ""
	s.arrayPI = false
	return nil
}

// StartDocument opens the document and the top-level wrapper object
func (w *Writer) StartDocument() error {
	if w.ended {
		return errors.NewStructuralError("document has already been ended", errors.ErrDocumentEnded)
	}
	if w.started {
		return errors.NewStructuralError("document has already been started", nil)
	}
	if err := w.target.StartObject(); err != nil {
		return err
	}
	w.stack = append(w.stack, &elementScope{doc: true, committed: true})
	w.started = true
	return nil
}

// EndDocument closes the document, failing if elements are still open
// or nothing was written. Output is flushed.
func (w *Writer) EndDocument() error {
	if err := w.ready(); err != nil {
		return err
	}
	if len(w.stack) > 1 {
		return errors.NewStructuralError("document ended with open elements", errors.ErrDocumentIncomplete)
	}
	doc := w.top()
	if doc.array != "" {
		if err := w.closeArray(doc); err != nil {
			return err
		}
	}
	if !doc.childSeen {
		return errors.NewStructuralError("document has no content", errors.ErrEmptyDocument)
	}
	if err := w.target.EndObject(); err != nil {
		return err
	}
	w.ended = true
	w.stack = w.stack[:0]
	return w.target.Flush()
}

// StartElement opens an element named name. Within an open array the
// name must match the array; a mismatch closes instruction-declared
// arrays and fails explicit ones.
func (w *Writer) StartElement(name string) error {
	if err := w.ready(); err != nil {
		return err
	}
	parent := w.top()
	if parent.array != "" {
		if name == parent.array {
			parent.childSeen = true
			w.stack = append(w.stack, &elementScope{name: name})
			return nil
		}
		if !parent.arrayPI {
			return errors.NewStructuralError("element "+name+" inside array of "+parent.array, errors.ErrArrayNameMismatch)
		}
		if err := w.closeArray(parent); err != nil {
			return err
		}
	}
	if parent.doc && parent.childSeen {
		return errors.NewStructuralError("second root element "+name, errors.ErrSecondRoot)
	}
	if !parent.committed {
		if err := w.commit(parent); err != nil {
			return err
		}
	}
	parent.childSeen = true
	if err := w.target.Name(name); err != nil {
		return err
	}
	w.stack = append(w.stack, &elementScope{name: name})
	return nil
}

// EndElement closes the current element, deciding its JSON shape: an
// object if it committed or carries attributes, its text as a string,
// or null when empty
func (w *Writer) EndElement() error {
	if err := w.ready(); err != nil {
		return err
	}
	s := w.top()
	if s.doc {
		return errors.NewStructuralError("end element with no open element", errors.ErrNoOpenElement)
	}
	if s.array != "" {
		if err := w.closeArray(s); err != nil {
			return err
		}
	}
	switch {
	case s.committed:
		if err := w.target.EndObject(); err != nil {
			return err
		}
	case len(s.leads) > 0:
		if err := w.commit(s); err != nil {
			return err
		}
		if err := w.target.EndObject(); err != nil {
			return err
		}
	case s.text.Len() > 0:
		if err := w.target.Value(stream.String(s.text.String())); err != nil {
			return err
		}
	default:
		if err := w.target.Value(stream.Null()); err != nil {
			return err
		}
	}
	w.stack = w.stack[:len(w.stack)-1]
	return nil
}

// Attribute buffers an attribute for the current element. Attributes
// must arrive before any text or child element.
func (w *Writer) Attribute(name, value string) error {
	if err := w.ready(); err != nil {
		return err
	}
	s := w.top()
	if s.doc {
		return errors.NewStructuralError("attribute "+name+" with no open element", errors.ErrNoOpenElement)
	}
	if s.committed || s.childSeen || s.text.Len() > 0 {
		return errors.NewStructuralError("attribute "+name+" after element content", errors.ErrAttributeAfterContent)
	}
	s.leads = append(s.leads, field{name: "@" + name, value: value})
	return nil
}

// Namespace buffers a namespace declaration for the current element.
// An empty prefix declares the default namespace.
func (w *Writer) Namespace(prefix, uri string) error {
	if err := w.ready(); err != nil {
		return err
	}
	s := w.top()
	if s.doc {
		return errors.NewStructuralError("namespace declaration with no open element", errors.ErrNoOpenElement)
	}
	if s.committed || s.childSeen || s.text.Len() > 0 {
		return errors.NewStructuralError("namespace declaration after element content", errors.ErrAttributeAfterContent)
	}
	name := "@xmlns"
	if prefix != "" {
		name = "@xmlns:" + prefix
	}
	s.leads = append(s.leads, field{name: name, value: uri})
	return nil
}

// Characters appends text to the current element. Whitespace between
// child elements is ignored; any other text after children has no JSON
// representation.
func (w *Writer) Characters(text string) error {
	if err := w.ready(); err != nil {
		return err
	}
	s := w.top()
	if s.doc || s.childSeen {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		if s.doc {
			return errors.NewStructuralError("character data outside of any element", errors.ErrTextOutsideElement)
		}
		return errors.NewStructuralError("mixed content in element "+s.name, nil)
	}
	s.text.WriteString(text)
	return nil
}

// StartArray opens an explicit array of elements named name in the
// current scope
func (w *Writer) StartArray(name string) error {
	if err := w.ready(); err != nil {
		return err
	}
	return w.startArray(name, false)
}

func (w *Writer) startArray(name string, viaPI bool) error {
	parent := w.top()
	if parent.array != "" {
		if !parent.arrayPI {
			return errors.NewStructuralError("array of "+parent.array+" is still open", errors.ErrArrayAlreadyStarted)
		}
		if err := w.closeArray(parent); err != nil {
			return err
		}
	}
	if parent.doc && parent.childSeen {
		return errors.NewStructuralError("second root element "+name, errors.ErrSecondRoot)
	}
	if !parent.committed {
		if err := w.commit(parent); err != nil {
			return err
		}
	}
	parent.childSeen = true
	if err := w.target.Name(name); err != nil {
		return err
	}
	if err := w.target.StartArray(); err != nil {
		return err
	}
	parent.array = name
	parent.arrayPI = viaPI
	return nil
}

// EndArray closes the explicit array open in the current scope. Arrays
// may close empty.
func (w *Writer) EndArray() error {
	if err := w.ready(); err != nil {
		return err
	}
	s := w.top()
	if s.array == "" {
		return errors.NewStructuralError("end array with no open array", errors.ErrArrayNotStarted)
	}
	return w.closeArray(s)
}

// ProcessingInstruction handles an xml-multiple instruction as an
// array declaration when enabled. No other instruction has a JSON
// representation.
func (w *Writer) ProcessingInstruction(target, data string) error {
	if err := w.ready(); err != nil {
		return err
	}
	if target == MultiplePITarget && w.multiplePI {
		name := strings.TrimSpace(data)
		if name == "" {
			return errors.NewStructuralError("processing instruction "+MultiplePITarget+" requires an element name", nil)
		}
		return w.startArray(name, true)
	}
	return errors.NewStructuralError("processing instruction "+target+" cannot be represented", errors.ErrUnsupportedPI)
}

// Flush flushes the wrapped target
func (w *Writer) Flush() error {
	return w.target.Flush()
}

// Close closes the wrapped target. The document state is left as is;
// closing mid-document leaves the output incomplete.
func (w *Writer) Close() error {
	return w.target.Close()
}
