package dylib

import "runtime"

// Pin pairs a raw native function pointer with the values that must stay
// reachable while native code can still invoke it. It frees nothing;
// holding the Pin is what keeps the anchors alive.
type Pin struct {
	addr    uintptr
	anchors []any
}

// NewPin binds addr to the anchors that must outlive every use of it.
func NewPin(addr uintptr, anchors ...any) *Pin {
	return &Pin{addr: addr, anchors: anchors}
}

// Addr returns the pinned function pointer.
func (p *Pin) Addr() uintptr { return p.addr }

// Release marks the end of the pin's obligation. Call it, or keep the Pin
// reachable by other means, until after the last possible native
// invocation of the pointer.
func (p *Pin) Release() {
	runtime.KeepAlive(p.anchors)
}
