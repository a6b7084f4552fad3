package dylib

import "github.com/ebitengine/purego"

// Convention tags the calling convention of a raw function pointer. On the
// 64-bit ABIs purego supports, cdecl and stdcall share one calling
// sequence, so the tag documents intent and is accepted unchanged.
type Convention int

const (
	DefaultConvention Convention = iota
	Cdecl
	Stdcall
)

// BindAddr points the func variable behind fnPtr at the native function at
// addr, calling it under conv. fnPtr must be a pointer to a func variable
// with the signature the native code expects; nothing verifies that the
// address really has that signature.
func BindAddr(fnPtr any, addr uintptr, conv Convention) {
	purego.RegisterFunc(fnPtr, addr)
}

// FuncAt returns a callable of type F invoking the native function at addr
// under conv.
func FuncAt[F any](addr uintptr, conv Convention) F {
	var fn F
	BindAddr(&fn, addr, conv)
	return fn
}
