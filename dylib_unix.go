//go:build !windows

package dylib

import "github.com/ebitengine/purego"

// Load-mode flags, passed through to dlopen unchanged.
const (
	FlagLazy   = uintptr(purego.RTLD_LAZY)
	FlagNow    = uintptr(purego.RTLD_NOW)
	FlagGlobal = uintptr(purego.RTLD_GLOBAL)
	FlagLocal  = uintptr(purego.RTLD_LOCAL)

	// DefaultFlags binds symbols eagerly and keeps them out of the global
	// namespace.
	DefaultFlags = FlagNow | FlagLocal
)

// nativeLoad loads a shared library on Unix-like systems.
func nativeLoad(path string, flags uintptr) (uintptr, error) {
	return purego.Dlopen(path, int(flags))
}

// nativeUnload unloads the shared library on Unix systems.
func nativeUnload(handle uintptr) error {
	return purego.Dlclose(handle)
}

// nativeResolve looks up an exported symbol, 0 when absent.
func nativeResolve(handle uintptr, name string) uintptr {
	addr, err := purego.Dlsym(handle, name)
	if err != nil {
		return 0
	}
	return addr
}
