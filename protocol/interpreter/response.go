package interpreter

// --------------------------------------------------------------------------
// Status
// --------------------------------------------------------------------------

// Status is the binary outcome of interpreting a request. The detailed
// failure reason is carried in the response text, not in the status.
type Status uint8

const (
	StatusSuccess Status = iota // The command was executed.
	StatusError                 // The command failed (see response text).
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Response Buffer
// --------------------------------------------------------------------------

// ResponseBuffer is the bounded buffer a response is rendered into. Writes
// never grow the buffer beyond its limit: a write that does not fit is
// either cut off (WriteString) or dropped entirely (TryWriteString), and the
// buffer records that truncation happened. The accumulated content is always
// a valid string, a truncated response never corrupts previously written
// data.
type ResponseBuffer struct {
	buf       []byte
	limit     int
	truncated bool
}

// NewResponseBuffer creates a response buffer that holds at most limit bytes.
func NewResponseBuffer(limit int) *ResponseBuffer {
	if limit < 0 {
		limit = 0
	}
	return &ResponseBuffer{
		buf:   make([]byte, 0, limit),
		limit: limit,
	}
}

// WriteString appends s, cutting it off at the buffer limit. It returns
// false if the write was truncated.
func (b *ResponseBuffer) WriteString(s string) bool {
	remaining := b.limit - len(b.buf)
	if len(s) <= remaining {
		b.buf = append(b.buf, s...)
		return true
	}
	b.buf = append(b.buf, s[:remaining]...)
	b.truncated = true
	return false
}

// TryWriteString appends s only if it fits completely. It returns false and
// leaves the buffer unchanged (apart from marking it truncated) if it does
// not.
func (b *ResponseBuffer) TryWriteString(s string) bool {
	if len(s) > b.limit-len(b.buf) {
		b.truncated = true
		return false
	}
	b.buf = append(b.buf, s...)
	return true
}

// Len returns the number of bytes written so far.
func (b *ResponseBuffer) Len() int {
	return len(b.buf)
}

// Remaining returns the number of bytes that still fit.
func (b *ResponseBuffer) Remaining() int {
	return b.limit - len(b.buf)
}

// Truncated reports whether any write did not fit completely.
func (b *ResponseBuffer) Truncated() bool {
	return b.truncated
}

// String returns the accumulated response.
func (b *ResponseBuffer) String() string {
	return string(b.buf)
}

// Reset clears the buffer for reuse.
func (b *ResponseBuffer) Reset() {
	b.buf = b.buf[:0]
	b.truncated = false
}
