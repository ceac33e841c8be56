// Package strings provides zero-copy string utilities with pooled builders
// for the hot paths of the pooling runtime.
package strings

import (
	"fmt"
	"strconv"
	"sync"
	"unsafe"
)

// BytesToString converts a byte slice to a string without allocation.
// WARNING: The returned string shares memory with the byte slice.
// Do not modify the byte slice after calling this function.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// StringToBytes converts a string to a byte slice without allocation.
// WARNING: The returned byte slice shares memory with the string.
// Do not modify the returned slice.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Clone creates a copy of a string (useful when you need to own the memory).
func Clone(s string) string {
	if len(s) == 0 {
		return ""
	}
	b := make([]byte, len(s))
	copy(b, StringToBytes(s))
	return BytesToString(b)
}

// Builder provides efficient string building over a reusable byte buffer.
type Builder struct {
	buf []byte
}

// NewBuilder creates a new string builder with the given capacity.
func NewBuilder(capacity int) *Builder {
	return &Builder{
		buf: make([]byte, 0, capacity),
	}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) {
	b.buf = append(b.buf, StringToBytes(s)...)
}

// WriteBytes appends bytes to the builder.
func (b *Builder) WriteBytes(data []byte) {
	b.buf = append(b.buf, data...)
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) {
	b.buf = append(b.buf, c)
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (n int, err error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// String returns the built string using zero-copy conversion.
func (b *Builder) String() string {
	return BytesToString(b.buf)
}

// Bytes returns the underlying byte slice.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Len returns the length of the built string.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Reset resets the builder for reuse.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// Pooled builders keep steady-state string formatting allocation-free.
var builderPool = &sync.Pool{
	New: func() interface{} {
		return NewBuilder(1024)
	},
}

// GetBuilder retrieves a pooled builder, reset and ready for use.
func GetBuilder() *Builder {
	builder := builderPool.Get().(*Builder)
	builder.Reset()
	return builder
}

// PutBuilder returns a builder to the pool.
func PutBuilder(builder *Builder) {
	if builder == nil {
		return
	}
	builder.Reset()
	builderPool.Put(builder)
}

// Concat efficiently concatenates strings using a pooled builder.
func Concat(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}

	builder := GetBuilder()
	defer PutBuilder(builder)

	for _, s := range parts {
		builder.WriteString(s)
	}

	return Clone(builder.String())
}

// Sprintf provides a pooled alternative to fmt.Sprintf.
func Sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}

	builder := GetBuilder()
	defer PutBuilder(builder)

	fmt.Fprintf(builder, format, args...)

	return Clone(builder.String())
}

// ValueToString efficiently converts interface{} values to strings.
// This replaces fmt.Sprintf("%v", value) in hot paths like dump output.
func ValueToString(value interface{}) string {
	if value == nil {
		return ""
	}

	// Fast path for common types - avoid reflection and fmt overhead
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []byte:
		return BytesToString(v)
	default:
		return Sprintf("%v", value)
	}
}
