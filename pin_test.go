package dylib

import "testing"

func TestPinCarriesAddress(t *testing.T) {
	anchor := &struct{ n int }{n: 1}
	pin := NewPin(0xcafe, anchor)

	if pin.Addr() != 0xcafe {
		t.Errorf("Expected pin address %#x, got %#x", 0xcafe, pin.Addr())
	}

	// Release is a liveness marker, not a teardown; calling it twice must
	// be harmless.
	pin.Release()
	pin.Release()
}
