package dylib

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileName(t *testing.T) {
	cases := []struct {
		info PlatformInfo
		base string
		want string
	}{
		{PlatformInfo{Prefix: "lib", Extension: ".so"}, "demo", "libdemo.so"},
		{PlatformInfo{Prefix: "lib", Extension: ".dylib"}, "demo", "libdemo.dylib"},
		{PlatformInfo{Extension: ".dll"}, "demo", "demo.dll"},
	}
	for _, c := range cases {
		if got := c.info.FileName(c.base); got != c.want {
			t.Errorf("FileName(%q): expected %q, got %q", c.base, c.want, got)
		}
	}
}

func TestVariantOrder(t *testing.T) {
	plain := PlatformInfo{}
	if got := plain.variantOrder(); len(got) != 1 || got[0] != "fallback" {
		t.Errorf("Expected bare fallback order, got %v", got)
	}

	simd := PlatformInfo{SupportsAVX: true, SupportsAVX2: true}
	want := []string{"avx2", "avx", "fallback"}
	got := simd.variantOrder()
	if len(got) != len(want) {
		t.Fatalf("Expected order %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, got)
		}
	}
}

func TestFindVariant(t *testing.T) {
	dir := t.TempDir()
	p := DetectPlatform()

	touch := func(name string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("Failed to create fixture %s: %v", name, err)
		}
	}

	if got := FindVariant(dir, "demo"); got != "" {
		t.Errorf("Expected no match in an empty dir, got %q", got)
	}

	// The plain name is the last resort.
	touch(p.FileName("demo"))
	if got := FindVariant(dir, "demo"); got != filepath.Join(dir, p.FileName("demo")) {
		t.Errorf("Expected the unsuffixed library, got %q", got)
	}

	// Any variant beats the plain name; fallback is probed on every CPU.
	touch(p.FileName("demo-fallback"))
	if got := FindVariant(dir, "demo"); got != filepath.Join(dir, p.FileName("demo-fallback")) {
		t.Errorf("Expected the fallback variant, got %q", got)
	}
}

func TestOpenBestMissing(t *testing.T) {
	if _, err := OpenBest(t.TempDir(), "demo"); err == nil {
		t.Error("Expected an error when no library variant is present")
	}
}
