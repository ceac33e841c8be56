package strings

import (
	"testing"
)

func TestBytesToString(t *testing.T) {
	if got := BytesToString(nil); got != "" {
		t.Errorf("expected empty string for nil slice, got %q", got)
	}
	if got := BytesToString([]byte("hello")); got != "hello" {
		t.Errorf("expected hello, got %q", got)
	}
}

func TestStringToBytes(t *testing.T) {
	if got := StringToBytes(""); got != nil {
		t.Errorf("expected nil for empty string, got %v", got)
	}
	got := StringToBytes("pool")
	if string(got) != "pool" {
		t.Errorf("expected pool, got %q", string(got))
	}
}

func TestClone(t *testing.T) {
	src := []byte("mutable")
	s := BytesToString(src)
	cloned := Clone(s)
	src[0] = 'M'
	if cloned != "mutable" {
		t.Errorf("clone should own its memory, got %q", cloned)
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder(8)
	b.WriteString("free")
	b.WriteByte('/')
	b.WriteBytes([]byte("used"))

	if b.String() != "free/used" {
		t.Errorf("unexpected builder output: %q", b.String())
	}
	if b.Len() != 9 {
		t.Errorf("expected length 9, got %d", b.Len())
	}

	b.Reset()
	if b.Len() != 0 {
		t.Errorf("expected empty builder after reset, got %d", b.Len())
	}
}

func TestPooledBuilderRoundTrip(t *testing.T) {
	b := GetBuilder()
	b.WriteString("scratch")
	PutBuilder(b)

	b2 := GetBuilder()
	if b2.Len() != 0 {
		t.Errorf("pooled builder not reset, len=%d", b2.Len())
	}
	PutBuilder(b2)
}

func TestConcat(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{"empty", nil, ""},
		{"single", []string{"one"}, "one"},
		{"many", []string{"a", "b", "c"}, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Concat(tt.parts...); got != tt.want {
				t.Errorf("Concat(%v) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestSprintf(t *testing.T) {
	if got := Sprintf("no args"); got != "no args" {
		t.Errorf("expected passthrough, got %q", got)
	}
	if got := Sprintf("pool %s has %d free", "point", 3); got != "pool point has 3 free" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestValueToString(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{nil, ""},
		{"str", "str"},
		{42, "42"},
		{int64(-7), "-7"},
		{uint64(9), "9"},
		{1.5, "1.5"},
		{true, "true"},
		{[]byte("raw"), "raw"},
	}

	for _, tt := range tests {
		if got := ValueToString(tt.value); got != tt.want {
			t.Errorf("ValueToString(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
