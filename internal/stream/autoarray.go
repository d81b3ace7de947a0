package stream

type autoArrayState int

const (
	// no field held back at this scope
	aaIdle autoArrayState = iota
	// first occurrence of a field seen, its value subtree is being recorded
	aaBuffering
	// a complete (name, value) pair is held back awaiting the next field
	aaPending
	// repetition detected, an array is open and members stream through
	aaArraying
)

// autoArrayScope tracks one open container of the incoming stream. Only
// object scopes run the lookahead; array scopes pass members through.
// out is where this scope's processed tokens go, either the downstream
// target or the recorder of an enclosing scope that is buffering.
type autoArrayScope struct {
	isArray bool
	out     Target
	state   autoArrayState
	field   string
	rec     *Recorder
}

// AutoArray groups repeated sibling fields into arrays. Per object
// scope it holds back one (name, value) pair: a repeat of the same name
// opens an array, replays the held value and streams followers into it
// until a different name or the scope close; a name that never repeats
// is flushed unchanged. An explicit array open for a held-back field
// cancels the heuristic for that field and passes through verbatim.
// Recorded subtrees are processed by the same rules before replay, so
// nested repetitions group correctly. The layer adds no failure modes;
// errors are the wrapped target's own.
type AutoArray struct {
	out   Target
	stack []*autoArrayScope
}

// NewAutoArray wraps target with sibling grouping
func NewAutoArray(target Target) *AutoArray {
	return &AutoArray{
		out:   target,
		stack: []*autoArrayScope{{isArray: true, out: target}},
	}
}

func (a *AutoArray) top() *autoArrayScope {
	return a.stack[len(a.stack)-1]
}

// pop closes the top scope. A closing child resolves the subtree an
// enclosing object scope was recording, completing its held-back pair.
func (a *AutoArray) pop() {
	a.stack = a.stack[:len(a.stack)-1]
	parent := a.top()
	if !parent.isArray && parent.state == aaBuffering {
		parent.state = aaPending
	}
}

// flushPending emits the held-back pair of s unchanged
func (a *AutoArray) flushPending(s *autoArrayScope) error {
	if err := s.out.Name(s.field); err != nil {
		return err
	}
	if err := s.rec.Replay(s.out); err != nil {
		return err
	}
	s.rec = nil
	s.state = aaIdle
	return nil
}

// Name observes a field name at the current object scope
func (a *AutoArray) Name(name string) error {
	s := a.top()
	switch s.state {
	case aaIdle:
		s.field = name
		s.rec = NewRecorder()
		s.state = aaBuffering
		return nil
	case aaPending:
		if name == s.field {
			if err := s.out.Name(s.field); err != nil {
				return err
			}
			if err := s.out.StartArray(); err != nil {
				return err
			}
			if err := s.rec.Replay(s.out); err != nil {
				return err
			}
			s.rec = nil
			s.state = aaArraying
			return nil
		}
		if err := a.flushPending(s); err != nil {
			return err
		}
		s.field = name
		s.rec = NewRecorder()
		s.state = aaBuffering
		return nil
	case aaArraying:
		if name == s.field {
			// the next member value follows, nothing to emit
			return nil
		}
		if err := s.out.EndArray(); err != nil {
			return err
		}
		s.field = name
		s.rec = NewRecorder()
		s.state = aaBuffering
		return nil
	}
	return s.out.Name(name)
}

// Value forwards or records a scalar value
func (a *AutoArray) Value(value Value) error {
	s := a.top()
	if !s.isArray && s.state == aaBuffering {
		if err := s.rec.Value(value); err != nil {
			return err
		}
		s.state = aaPending
		return nil
	}
	return s.out.Value(value)
}

// StartObject opens a nested object
func (a *AutoArray) StartObject() error {
	s := a.top()
	dest := s.out
	if !s.isArray && s.state == aaBuffering {
		dest = s.rec
	}
	if err := dest.StartObject(); err != nil {
		return err
	}
	a.stack = append(a.stack, &autoArrayScope{out: dest})
	return nil
}

// EndObject closes the current object scope, resolving any held-back
// pair or open group first
func (a *AutoArray) EndObject() error {
	s := a.top()
	switch s.state {
	case aaPending:
		if err := a.flushPending(s); err != nil {
			return err
		}
	case aaArraying:
		if err := s.out.EndArray(); err != nil {
			return err
		}
		s.state = aaIdle
	}
	if err := s.out.EndObject(); err != nil {
		return err
	}
	a.pop()
	return nil
}

// StartArray opens a nested array. For a field whose first value is an
// explicit array, the marker wins: the pair is emitted now and the
// array contents pass through without grouping.
func (a *AutoArray) StartArray() error {
	s := a.top()
	if !s.isArray && s.state == aaBuffering {
		if err := s.out.Name(s.field); err != nil {
			return err
		}
		if err := s.out.StartArray(); err != nil {
			return err
		}
		s.rec = nil
		s.state = aaIdle
		a.stack = append(a.stack, &autoArrayScope{isArray: true, out: s.out})
		return nil
	}
	if err := s.out.StartArray(); err != nil {
		return err
	}
	a.stack = append(a.stack, &autoArrayScope{isArray: true, out: s.out})
	return nil
}

// EndArray closes the current array scope
func (a *AutoArray) EndArray() error {
	s := a.top()
	if err := s.out.EndArray(); err != nil {
		return err
	}
	a.pop()
	return nil
}

// Flush flushes the wrapped target
func (a *AutoArray) Flush() error {
	return a.out.Flush()
}

// Close closes the wrapped target
func (a *AutoArray) Close() error {
	return a.out.Close()
}
