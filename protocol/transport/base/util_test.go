package base

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeLine(&buf, "GET k1"))
	assert.Equal(t, "GET k1\n", buf.String())
}

func TestWriteLineRejectsNewlines(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeLine(&buf, "GET\nk1"))
	assert.Error(t, writeLine(&buf, "GET\rk1"))
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "OK: v1\n", want: "OK: v1"},
		{name: "crlf", input: "OK: v1\r\n", want: "OK: v1"},
		{name: "empty line", input: "\n", want: ""},
		{name: "embedded carriage return kept", input: "a\rb\n", want: "a\rb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bufio.NewReader(strings.NewReader(tt.input))
			line, err := readLine(r, 1024)
			require.NoError(t, err)
			assert.Equal(t, tt.want, line)
		})
	}
}

func TestReadLineEOF(t *testing.T) {
	r := bufio.NewReader(strings.NewReader(""))
	_, err := readLine(r, 1024)
	assert.Equal(t, io.EOF, err)
}

func TestReadLineEnforcesLimit(t *testing.T) {
	// Line longer than the limit, even when it spans multiple internal
	// buffer fills
	r := bufio.NewReaderSize(strings.NewReader(strings.Repeat("x", 100)+"\n"), 16)
	_, err := readLine(r, 50)
	assert.Error(t, err)
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeLine(&buf, "PUT k1 some value"))
	require.NoError(t, writeLine(&buf, "GET k1"))

	r := bufio.NewReader(&buf)
	line, err := readLine(r, 1024)
	require.NoError(t, err)
	assert.Equal(t, "PUT k1 some value", line)

	line, err = readLine(r, 1024)
	require.NoError(t, err)
	assert.Equal(t, "GET k1", line)
}
