package stream

import (
	"fmt"

	"github.com/mcncl/xmljson/internal/errors"
)

// Recorder is an in-memory Target that stores the token sequence for
// later replay. It never fails.
type Recorder struct {
	tokens []Token
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Name records a field name
func (r *Recorder) Name(name string) error {
	r.tokens = append(r.tokens, Token{Kind: TokenName, Name: name})
	return nil
}

// Value records a scalar value
func (r *Recorder) Value(value Value) error {
	r.tokens = append(r.tokens, Token{Kind: TokenValue, Value: value})
	return nil
}

// StartObject records an object open
func (r *Recorder) StartObject() error {
	r.tokens = append(r.tokens, Token{Kind: TokenStartObject})
	return nil
}

// EndObject records an object close
func (r *Recorder) EndObject() error {
	r.tokens = append(r.tokens, Token{Kind: TokenEndObject})
	return nil
}

// StartArray records an array open
func (r *Recorder) StartArray() error {
	r.tokens = append(r.tokens, Token{Kind: TokenStartArray})
	return nil
}

// EndArray records an array close
func (r *Recorder) EndArray() error {
	r.tokens = append(r.tokens, Token{Kind: TokenEndArray})
	return nil
}

// Flush is a no-op
func (r *Recorder) Flush() error {
	return nil
}

// Close is a no-op
func (r *Recorder) Close() error {
	return nil
}

// Len reports the number of recorded tokens
func (r *Recorder) Len() int {
	return len(r.tokens)
}

// Reset discards all recorded tokens
func (r *Recorder) Reset() {
	r.tokens = r.tokens[:0]
}

// Replay feeds the recorded tokens into target in order
func (r *Recorder) Replay(target Target) error {
	for _, tok := range r.tokens {
		var err error
		switch tok.Kind {
		case TokenName:
			err = target.Name(tok.Name)
		case TokenValue:
			err = target.Value(tok.Value)
		case TokenStartObject:
			err = target.StartObject()
		case TokenEndObject:
			err = target.EndObject()
		case TokenStartArray:
			err = target.StartArray()
		case TokenEndArray:
			err = target.EndArray()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Source returns a reader over the recorded tokens
func (r *Recorder) Source() *TokenReader {
	return &TokenReader{tokens: r.tokens}
}

// TokenReader reads a recorded token sequence through the Source
// contract
type TokenReader struct {
	tokens []Token
	pos    int
}

// Peek reports the kind of the next token without consuming it
func (s *TokenReader) Peek() (TokenKind, error) {
	if s.pos >= len(s.tokens) {
		return TokenNone, nil
	}
	return s.tokens[s.pos].Kind, nil
}

func (s *TokenReader) next(kind TokenKind) (Token, error) {
	if s.pos >= len(s.tokens) {
		return Token{}, errors.NewStructuralError(fmt.Sprintf("expected %s token, stream is exhausted", kind), nil)
	}
	tok := s.tokens[s.pos]
	if tok.Kind != kind {
		return Token{}, errors.NewStructuralError(fmt.Sprintf("expected %s token, found %s", kind, tok.Kind), nil)
	}
	s.pos++
	return tok, nil
}

// Name consumes and returns a field name token
func (s *TokenReader) Name() (string, error) {
	tok, err := s.next(TokenName)
	if err != nil {
		return "", err
	}
	return tok.Name, nil
}

// Value consumes and returns a scalar value token
func (s *TokenReader) Value() (Value, error) {
	tok, err := s.next(TokenValue)
	if err != nil {
		return Value{}, err
	}
	return tok.Value, nil
}

// StartObject consumes an object open token
func (s *TokenReader) StartObject() error {
	_, err := s.next(TokenStartObject)
	return err
}

// EndObject consumes an object close token
func (s *TokenReader) EndObject() error {
	_, err := s.next(TokenEndObject)
	return err
}

// StartArray consumes an array open token
func (s *TokenReader) StartArray() error {
	_, err := s.next(TokenStartArray)
	return err
}

// EndArray consumes an array close token
func (s *TokenReader) EndArray() error {
	_, err := s.next(TokenEndArray)
	return err
}

// Close discards the remaining tokens
func (s *TokenReader) Close() error {
	s.pos = len(s.tokens)
	return nil
}
