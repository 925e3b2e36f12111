package icons

import "testing"

func TestGet(t *testing.T) {
	if icon, ok := None.Get("time", nil); !ok || icon != "TIME" {
		t.Fatalf("got %q %v", icon, ok)
	}
	if _, ok := None.Get("nope", nil); ok {
		t.Fatal()
	}

	glyph := func(v float64) string {
		icon, ok := Awesome.Get("bat", &v)
		if !ok {
			t.Fatal()
		}
		return icon
	}
	if glyph(0) != "\uf244" {
		t.Fatal()
	}
	if glyph(0.5) != "\uf242" {
		t.Fatal()
	}
	if glyph(1) != "\uf240" {
		t.Fatal()
	}
	if glyph(-3) != "\uf244" || glyph(7) != "\uf240" {
		t.Fatal("should clamp")
	}
	if icon, _ := Awesome.Get("bat", nil); icon != "\uf244" {
		t.Fatal()
	}

	// single glyph ignores progression
	v := 0.9
	if icon, _ := None.Get("cpu", &v); icon != "CPU" {
		t.Fatalf("got %q", icon)
	}
}

func TestWith(t *testing.T) {
	set := None.With(Set{
		"time": {"T"},
		"new":  {"N"},
	})
	if icon, _ := set.Get("time", nil); icon != "T" {
		t.Fatalf("got %q", icon)
	}
	if icon, _ := set.Get("new", nil); icon != "N" {
		t.Fatalf("got %q", icon)
	}
	if icon, _ := None.Get("time", nil); icon != "TIME" {
		t.Fatal("original should be untouched")
	}
	if icon, _ := Set(nil).With(Set{"a": {"b"}}).Get("a", nil); icon != "b" {
		t.Fatal()
	}
}

func TestNamed(t *testing.T) {
	if _, err := Named("awesome"); err != nil {
		t.Fatal(err)
	}
	if set, err := Named(""); err != nil || set["time"][0] != "TIME" {
		t.Fatal()
	}
	if _, err := Named("emoji"); err == nil {
		t.Fatal("should error")
	}
}
