package stream

type removeRootState int

const (
	// nothing observed yet
	rrStart removeRootState = iota
	// first object open held back, awaiting its first field name
	rrHeld
	// wrapper matched and suppressed, forwarding its value
	rrStrip
	// pass-through: wrapper did not match, or stripping finished
	rrPass
)

// RemoveRoot strips a configured wrapper from the document: when the
// first field of the top-level object matches the root name, the
// object open, the field name and the matching close are suppressed
// and the field's value alone forms the output document. A document
// that does not start that way passes through unchanged. At most one
// wrapper is stripped; deeper fields with the same name are untouched.
type RemoveRoot struct {
	out   Target
	root  string
	state removeRootState
	depth int
}

// NewRemoveRoot wraps target, stripping the top-level field named root
func NewRemoveRoot(target Target, root string) *RemoveRoot {
	return &RemoveRoot{out: target, root: root}
}

// release forwards the held-back object open once the first field
// shows the wrapper does not match
func (r *RemoveRoot) release() error {
	r.state = rrPass
	return r.out.StartObject()
}

// Name forwards a field name, deciding the wrapper's fate on the first
// one seen
func (r *RemoveRoot) Name(name string) error {
	if r.state == rrHeld {
		if name == r.root {
			r.state = rrStrip
			r.depth = 0
			return nil
		}
		if err := r.release(); err != nil {
			return err
		}
	}
	return r.out.Name(name)
}

// Value forwards a scalar value
func (r *RemoveRoot) Value(value Value) error {
	switch r.state {
	case rrStart:
		// scalar document, no wrapper to strip
		r.state = rrPass
	case rrHeld:
		if err := r.release(); err != nil {
			return err
		}
	}
	return r.out.Value(value)
}

// StartObject forwards an object open, holding back the very first one
func (r *RemoveRoot) StartObject() error {
	switch r.state {
	case rrStart:
		r.state = rrHeld
		return nil
	case rrHeld:
		if err := r.release(); err != nil {
			return err
		}
	case rrStrip:
		r.depth++
	}
	return r.out.StartObject()
}

// EndObject forwards an object close, suppressing the one that closes
// a stripped wrapper
func (r *RemoveRoot) EndObject() error {
	switch r.state {
	case rrHeld:
		// empty top-level object, nothing to strip
		if err := r.release(); err != nil {
			return err
		}
	case rrStrip:
		if r.depth == 0 {
			r.state = rrPass
			return nil
		}
		r.depth--
	}
	return r.out.EndObject()
}

// StartArray forwards an array open
func (r *RemoveRoot) StartArray() error {
	switch r.state {
	case rrStart:
		// array document, no wrapper to strip
		r.state = rrPass
	case rrHeld:
		if err := r.release(); err != nil {
			return err
		}
	case rrStrip:
		r.depth++
	}
	return r.out.StartArray()
}

// EndArray forwards an array close
func (r *RemoveRoot) EndArray() error {
	if r.state == rrStrip {
		r.depth--
	}
	return r.out.EndArray()
}

// Flush flushes the wrapped target
func (r *RemoveRoot) Flush() error {
	return r.out.Flush()
}

// Close closes the wrapped target
func (r *RemoveRoot) Close() error {
	return r.out.Close()
}
