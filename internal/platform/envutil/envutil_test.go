package envutil

import (
	"testing"
	"time"
)

func TestParsersFallBackToDefaults(t *testing.T) {
	t.Setenv("ENVUTIL_INT", "12")
	t.Setenv("ENVUTIL_BAD_INT", "twelve")
	t.Setenv("ENVUTIL_BOOL", "on")
	t.Setenv("ENVUTIL_FLOAT", "0.25")
	t.Setenv("ENVUTIL_SECONDS", "-3")
	t.Setenv("ENVUTIL_LIST", " a, ,b ")
	t.Setenv("ENVUTIL_BLANK", "   ")

	if got := Int("ENVUTIL_INT", 1, nil); got != 12 {
		t.Fatalf("Int: want=12 got=%d", got)
	}
	if got := Int("ENVUTIL_BAD_INT", 7, nil); got != 7 {
		t.Fatalf("Int (bad): want=7 got=%d", got)
	}
	if got := Bool("ENVUTIL_BOOL", false, nil); !got {
		t.Fatalf("Bool: want=true got=false")
	}
	if got := Float("ENVUTIL_FLOAT", 1, nil); got != 0.25 {
		t.Fatalf("Float: want=0.25 got=%v", got)
	}
	if got := Seconds("ENVUTIL_SECONDS", 5*time.Second, nil); got != 5*time.Second {
		t.Fatalf("Seconds: want=5s got=%s", got)
	}
	if got := List("ENVUTIL_LIST", nil, nil); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: unexpected %v", got)
	}
	if got := String("ENVUTIL_BLANK", "def", nil); got != "def" {
		t.Fatalf("String (blank): want=%q got=%q", "def", got)
	}
}
