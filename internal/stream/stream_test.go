package stream

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// token script helpers shared by the tests in this package

var (
	startObj = Token{Kind: TokenStartObject}
	endObj   = Token{Kind: TokenEndObject}
	startArr = Token{Kind: TokenStartArray}
	endArr   = Token{Kind: TokenEndArray}
)

func nameTok(name string) Token {
	return Token{Kind: TokenName, Name: name}
}

func strTok(s string) Token {
	return Token{Kind: TokenValue, Value: String(s)}
}

func valTok(v Value) Token {
	return Token{Kind: TokenValue, Value: v}
}

// render plays a token script through wrap(sink) and returns the
// compact JSON text. A nil wrap drives the sink directly.
func render(t *testing.T, wrap func(Target) Target, toks ...Token) string {
	t.Helper()
	var buf bytes.Buffer
	var target Target = NewJSONTarget(&buf, false)
	if wrap != nil {
		target = wrap(target)
	}
	rec := &Recorder{tokens: toks}
	require.NoError(t, rec.Replay(target))
	require.NoError(t, target.Flush())
	return buf.String()
}
