package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text passthrough",
			input: "hello world\n",
			want:  "hello world\n",
		},
		{
			name:  "SGR color codes",
			input: "\x1b[31mred\x1b[0m normal",
			want:  "red normal",
		},
		{
			name:  "cursor movement",
			input: "\x1b[2J\x1b[Hsubject",
			want:  "subject",
		},
		{
			name:  "OSC title sequence",
			input: "\x1b]0;my title\x07some text",
			want:  "some text",
		},
		{
			name:  "character set selection",
			input: "\x1b(Bhello\x1b)0world",
			want:  "helloworld",
		},
		{
			name:  "bare control characters",
			input: "bell\x07 back\x08space\r",
			want:  "bell backspace",
		},
		{
			name:  "tabs and newlines kept",
			input: "a\tb\nc",
			want:  "a\tb\nc",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(tt.input))
		})
	}
}

func TestPrintLog_StripsEscapes(t *testing.T) {
	testHome(t)
	dir := makeRepo(t, "\x1b]0;pwned\x07innocent subject")

	out, err := runCLI(t, nil, "log", "--oneline", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b")
	assert.Contains(t, out, "innocent subject")
}
