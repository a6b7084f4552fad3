package dylib

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/ebitengine/purego"
)

// proxyShapes maps the canonical type of a func signature to the proxy
// shape generated for it. Process lifetime, append-only: key cardinality is
// bounded by the distinct signatures the program exposes, so nothing is
// ever evicted.
var proxyShapes = struct {
	sync.Mutex
	m map[reflect.Type]*proxyShape
}{m: make(map[reflect.Type]*proxyShape)}

type proxyShape struct {
	typ reflect.Type
}

const maxPointerArgs = 15

// FuncPointer converts fn into a raw native-callable function pointer.
//
// When fn's dynamic type already is the canonical shape of its signature it
// converts directly. Defined func types, method values and reflect-built
// funcs go through a generated proxy of the canonical shape; one proxy
// shape is cached per distinct signature and reused for every callable of
// that signature, while each callable still gets its own address.
//
// The returned Pin anchors everything the pointer needs to stay valid; hold
// it for as long as native code may invoke the pointer.
func FuncPointer(fn any) (uintptr, *Pin, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return 0, nil, fmt.Errorf("cannot expose %T as a function pointer: not a func", fn)
	}
	t := v.Type()
	if err := checkSignature(t); err != nil {
		return 0, nil, fmt.Errorf("cannot expose %s: %w", t, err)
	}
	canonical := canonicalShape(t)
	if t == canonical {
		addr := purego.NewCallback(fn)
		return addr, NewPin(addr, fn), nil
	}
	shape := lookupShape(canonical)
	proxy := reflect.MakeFunc(shape.typ, func(args []reflect.Value) []reflect.Value {
		return v.Call(args)
	}).Interface()
	addr := purego.NewCallback(proxy)
	return addr, NewPin(addr, fn, proxy), nil
}

// canonicalShape returns the unnamed func type with the same parameter and
// result types as t. reflect interns these, so two structurally identical
// signatures always yield the same Type while distinct ones never collide.
func canonicalShape(t reflect.Type) reflect.Type {
	in := make([]reflect.Type, t.NumIn())
	for i := range in {
		in[i] = t.In(i)
	}
	out := make([]reflect.Type, t.NumOut())
	for i := range out {
		out[i] = t.Out(i)
	}
	return reflect.FuncOf(in, out, false)
}

// lookupShape returns the cached proxy shape for canonical, creating it on
// first use. First creator wins; concurrent requests observe one entry.
func lookupShape(canonical reflect.Type) *proxyShape {
	proxyShapes.Lock()
	defer proxyShapes.Unlock()
	if s, ok := proxyShapes.m[canonical]; ok {
		return s
	}
	s := &proxyShape{typ: canonical}
	proxyShapes.m[canonical] = s
	return s
}

// shapeCount reports how many proxy shapes have been generated so far.
func shapeCount() int {
	proxyShapes.Lock()
	defer proxyShapes.Unlock()
	return len(proxyShapes.m)
}

// checkSignature rejects signatures the callback engine cannot carry.
func checkSignature(t reflect.Type) error {
	if t.IsVariadic() {
		return fmt.Errorf("variadic signatures are not supported")
	}
	if t.NumIn() > maxPointerArgs {
		return fmt.Errorf("at most %d parameters are supported, got %d", maxPointerArgs, t.NumIn())
	}
	if t.NumOut() > 1 {
		return fmt.Errorf("at most one result is supported, got %d", t.NumOut())
	}
	for i := 0; i < t.NumIn(); i++ {
		if !wordSized(t.In(i)) {
			return fmt.Errorf("parameter %d has unsupported type %s", i, t.In(i))
		}
	}
	if t.NumOut() == 1 && !wordSized(t.Out(0)) {
		return fmt.Errorf("result has unsupported type %s", t.Out(0))
	}
	return nil
}

// wordSized reports whether t can cross the native boundary in a single
// machine word or floating-point register.
func wordSized(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Pointer, reflect.UnsafePointer:
		return true
	}
	return false
}
