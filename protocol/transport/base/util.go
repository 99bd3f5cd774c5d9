package base

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Line framing for the text protocol: one request or response per line,
// terminated by '\n'. An optional '\r' before the terminator is stripped so
// that interactive clients (netcat, telnet) work out of the box. Payloads
// must not contain newlines; writeLine rejects them instead of silently
// corrupting the stream.

const (
	// maxRequestLineBytes bounds a request line read by the server. It is
	// deliberately larger than the protocol request limit so that oversized
	// requests still reach the interpreter and get a proper error response.
	maxRequestLineBytes = 64 * 1024

	// maxResponseLineBytes bounds a response line read by the client.
	maxResponseLineBytes = 1024 * 1024
)

// writeLine writes s followed by '\n' to w.
func writeLine(w io.Writer, s string) error {
	if strings.ContainsAny(s, "\r\n") {
		return fmt.Errorf("payload must not contain newline characters")
	}
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	_, err := w.Write([]byte{'\n'})
	return err
}

// readLine reads one line from r, stripping the '\n' terminator and an
// optional preceding '\r'. The line is accumulated chunk-wise so a peer that
// never sends a terminator cannot grow memory past maxLen; on an oversized
// line the reader is left mid-line and the connection should be dropped.
func readLine(r *bufio.Reader, maxLen int) (string, error) {
	var sb strings.Builder
	for {
		chunk, err := r.ReadSlice('\n')
		sb.Write(chunk)
		if sb.Len() > maxLen+1 {
			return "", fmt.Errorf("line exceeds %d bytes", maxLen)
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil {
			return "", err
		}
		break
	}
	line := strings.TrimSuffix(sb.String(), "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
