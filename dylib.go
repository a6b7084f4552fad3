// Package dylib loads native shared libraries at runtime and marshals
// function pointers in both directions: exported symbols become typed Go
// funcs, and Go funcs become raw native-callable pointers.
//
// A Library owns its handle and unloads it exactly once on Close. Addresses
// and callables resolved from a library stay valid only while that library
// remains open; keeping it open long enough is the caller's obligation, the
// package does not track it.
package dylib

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBlankPath is returned when a library path is empty or whitespace-only.
// It is detected before the native loader is touched.
var ErrBlankPath = errors.New("library path is blank")

// LoadError reports a failed native library load. Err carries the loader's
// own detail (on Windows a windows.Errno, on unix the dlerror text).
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load library %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Library wraps one loaded shared library instance and its handle.
type Library struct {
	handle *Handle
	path   string
}

// Open loads the shared library at path with DefaultFlags.
func Open(path string) (*Library, error) {
	return OpenWithFlags(path, DefaultFlags)
}

// OpenWithFlags loads the shared library at path, passing flags through to
// the platform loader unchanged.
func OpenWithFlags(path string, flags uintptr) (*Library, error) {
	h, err := openScoped(path, flags)
	if err != nil {
		return nil, err
	}
	return &Library{handle: h, path: path}, nil
}

// Path returns the path the library was opened from.
func (l *Library) Path() string { return l.path }

// Handle returns the raw native handle, or 0 once the library is closed.
func (l *Library) Handle() uintptr { return l.handle.Addr() }

// Addr resolves an exported symbol to its address. Lookup is case
// sensitive; a missing export is reported as false, never as an error.
func (l *Library) Addr(name string) (uintptr, bool) {
	return ResolveAddr(l.handle.Addr(), name)
}

// Bind points the func variable behind fnPtr at the named export, or
// reports false when the export is absent. The export's real signature is
// not checked against fnPtr; a mismatch is undefined behavior at call time.
func (l *Library) Bind(fnPtr any, name string) bool {
	return BindHandle(l.handle.Addr(), fnPtr, name)
}

// Close unloads the library. It is idempotent and safe to call
// concurrently; the native unload runs exactly once.
func (l *Library) Close() error { return l.handle.Close() }

// Resolve looks up name in l and returns it as a callable of type F,
// or (zero, false) when the export is absent.
func Resolve[F any](l *Library, name string) (F, bool) {
	return ResolveFunc[F](l.handle.Addr(), name)
}

// OpenHandle loads a library and returns the raw native handle. The caller
// owns the handle and must pair it with CloseHandle; unlike Library there
// is no protection against closing it twice.
func OpenHandle(path string, flags uintptr) (uintptr, error) {
	if strings.TrimSpace(path) == "" {
		return 0, ErrBlankPath
	}
	h, err := nativeLoad(path, flags)
	if err != nil {
		return 0, &LoadError{Path: path, Err: err}
	}
	return h, nil
}

// CloseHandle unloads a handle obtained from OpenHandle. Closing the zero
// handle is a no-op.
func CloseHandle(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return nativeUnload(handle)
}

// ResolveAddr resolves name in an open handle to its address. The zero
// handle resolves nothing.
func ResolveAddr(handle uintptr, name string) (uintptr, bool) {
	if handle == 0 {
		return 0, false
	}
	addr := nativeResolve(handle, name)
	return addr, addr != 0
}

// ResolveFunc resolves name in an open handle as a callable of type F.
func ResolveFunc[F any](handle uintptr, name string) (F, bool) {
	var fn F
	if !BindHandle(handle, &fn, name) {
		var zero F
		return zero, false
	}
	return fn, true
}

// BindHandle is the handle-scoped variant of Library.Bind.
func BindHandle(handle uintptr, fnPtr any, name string) bool {
	addr, ok := ResolveAddr(handle, name)
	if !ok {
		return false
	}
	BindAddr(fnPtr, addr, DefaultConvention)
	return true
}
