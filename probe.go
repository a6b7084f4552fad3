package dylib

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// PlatformInfo holds the host's shared-library naming convention and the
// CPU features relevant to picking an optimized build variant.
type PlatformInfo struct {
	OS             string
	Arch           string
	Extension      string
	Prefix         string
	SupportsAVX    bool
	SupportsAVX2   bool
	SupportsAVX512 bool
}

// DetectPlatform detects the current platform and its CPU features.
func DetectPlatform() *PlatformInfo {
	info := &PlatformInfo{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	switch runtime.GOOS {
	case "darwin":
		info.Extension = ".dylib"
		info.Prefix = "lib"
	case "windows":
		info.Extension = ".dll"
	default: // Linux and the BSDs
		info.Extension = ".so"
		info.Prefix = "lib"
	}

	if runtime.GOARCH == "amd64" {
		info.SupportsAVX = cpuid.CPU.Supports(cpuid.AVX)
		info.SupportsAVX2 = cpuid.CPU.Supports(cpuid.AVX2)
		info.SupportsAVX512 = cpuid.CPU.Supports(cpuid.AVX512F)
	}

	return info
}

// FileName returns the platform file name for a library base name, e.g.
// "demo" becomes "libdemo.so" on Linux and "demo.dll" on Windows.
func (p *PlatformInfo) FileName(base string) string {
	return p.Prefix + base + p.Extension
}

// variantOrder returns candidate variant suffixes, best first. The
// fallback variant is always last so a library built without SIMD
// dispatch still loads on any CPU.
func (p *PlatformInfo) variantOrder() []string {
	var order []string
	if p.SupportsAVX512 {
		order = append(order, "avx512")
	}
	if p.SupportsAVX2 {
		order = append(order, "avx2")
	}
	if p.SupportsAVX {
		order = append(order, "avx")
	}
	return append(order, "fallback")
}

// FindVariant probes dir for the best CPU variant of the library named
// base ("demo" matches libdemo-avx2.so and so on), then for the unsuffixed
// name. Returns "" when nothing suitable is present.
func FindVariant(dir, base string) string {
	p := DetectPlatform()

	for _, variant := range p.variantOrder() {
		path := filepath.Join(dir, p.FileName(base+"-"+variant))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	path := filepath.Join(dir, p.FileName(base))
	if _, err := os.Stat(path); err == nil {
		return path
	}

	return ""
}

// OpenBest opens the best available variant of base found in dir.
func OpenBest(dir, base string) (*Library, error) {
	path := FindVariant(dir, base)
	if path == "" {
		return nil, fmt.Errorf("no suitable %s library found in %s", base, dir)
	}

	// Convert to absolute path to ensure dlopen can find it
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %s: %w", path, err)
	}

	return Open(absPath)
}
