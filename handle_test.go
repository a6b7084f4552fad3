package dylib

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestHandleCloseOnce(t *testing.T) {
	calls := 0
	h := newHandle(0x1234, func(raw uintptr) error {
		if raw != 0x1234 {
			t.Errorf("Expected unload of %#x, got %#x", 0x1234, raw)
		}
		calls++
		return nil
	})

	for i := 0; i < 3; i++ {
		if err := h.Close(); err != nil {
			t.Fatalf("Close #%d failed: %v", i+1, err)
		}
	}

	if calls != 1 {
		t.Errorf("Expected exactly one native unload, got %d", calls)
	}
	if h.Addr() != 0 {
		t.Errorf("Expected zero handle after close, got %#x", h.Addr())
	}
}

func TestHandleCloseConcurrent(t *testing.T) {
	var calls atomic.Int32
	h := newHandle(0xbeef, func(uintptr) error {
		calls.Add(1)
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := h.Close(); err != nil {
				t.Errorf("Concurrent close failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("Expected exactly one native unload, got %d", got)
	}
}

func TestHandleCloseError(t *testing.T) {
	unloadErr := errors.New("unload failed")
	h := newHandle(0x1, func(uintptr) error { return unloadErr })

	if err := h.Close(); !errors.Is(err, unloadErr) {
		t.Errorf("Expected the unload error from the winning close, got %v", err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("Expected nil from a repeated close, got %v", err)
	}
}
