package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuotes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain words", "a b c", []string{"a", "b", "c"}},
		{"collapses runs of whitespace", "a   b\t\tc", []string{"a", "b", "c"}},
		{"quoted span keeps spaces", `a "b c" d`, []string{"a", "b c", "d"}},
		{"escape inside quotes", `"a \" b"`, []string{`a " b`}},
		{"escaped backslash", `"a \\ b"`, []string{`a \ b`}},
		{"unterminated span emits content", `a "b c`, []string{"a", "b c"}},
		{"empty quoted span dropped", `a "" b`, []string{"a", "b"}},
		{"quote mid-token splits", `a"b c"`, []string{"a", "b c"}},
		{"empty input", "", nil},
		{"only whitespace", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuotes(tt.in))
		})
	}
}

func TestSplitArgsDelimiters(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitArgs("a,b,c", []string{","}))
	assert.Equal(t, []string{"a", "b", "c"}, SplitArgs("a, b; c", []string{",", ";"}))
	assert.Equal(t, []string{"a", "b"}, SplitArgs("a,,b", []string{","}))
}

func TestSplitArgsFallsBackToQuotes(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, SplitArgs(`a "b c"`, nil))
}
