package dylib

import "sync/atomic"

// Handle scopes one native library handle. The native unload runs at most
// once, even when Close races with itself; losers of the race treat the
// handle as already closed.
type Handle struct {
	ptr    atomic.Uintptr
	unload func(uintptr) error
}

func openScoped(path string, flags uintptr) (*Handle, error) {
	raw, err := OpenHandle(path, flags)
	if err != nil {
		return nil, err
	}
	return newHandle(raw, nativeUnload), nil
}

func newHandle(raw uintptr, unload func(uintptr) error) *Handle {
	h := &Handle{unload: unload}
	h.ptr.Store(raw)
	return h
}

// Addr returns the raw native handle, or 0 once closed.
func (h *Handle) Addr() uintptr { return h.ptr.Load() }

// Close unloads the handle. Only the caller that wins the swap invokes the
// native unload; every other call returns nil immediately.
func (h *Handle) Close() error {
	raw := h.ptr.Swap(0)
	if raw == 0 {
		return nil
	}
	return h.unload(raw)
}
