package utils

import (
	"reflect"
	"testing"
)

func TestSplitAndTrim(t *testing.T) {
	got := SplitAndTrim(" a, b ,, c ", ",")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitAndTrim() = %v, want %v", got, want)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"#/0/createdAt", "[0].createdAt"},
		{"/2/title", "[2].title"},
		{"#/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		if got := JSONPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("JSONPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
		}
	}
}

func TestShortIDAndTruncate(t *testing.T) {
	if got := ShortID("0123456789", 8); got != "01234567" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc", 8); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
	if got := Truncate("hello world", 8); got != "hello..." {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("héllo", 10); got != "héllo" {
		t.Errorf("Truncate = %q", got)
	}
}
