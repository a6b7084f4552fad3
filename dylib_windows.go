//go:build windows

package dylib

import "golang.org/x/sys/windows"

// LoadLibraryEx flags, passed through unchanged.
const (
	FlagDataFile             = uintptr(windows.LOAD_LIBRARY_AS_DATAFILE)
	FlagAlteredSearchPath    = uintptr(windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	FlagSearchDLLLoadDir     = uintptr(windows.LOAD_LIBRARY_SEARCH_DLL_LOAD_DIR)
	FlagSearchSystem32       = uintptr(windows.LOAD_LIBRARY_SEARCH_SYSTEM32)
	FlagSearchApplicationDir = uintptr(windows.LOAD_LIBRARY_SEARCH_APPLICATION_DIR)
	FlagSearchUserDirs       = uintptr(windows.LOAD_LIBRARY_SEARCH_USER_DIRS)
	FlagSearchDefaultDirs    = uintptr(windows.LOAD_LIBRARY_SEARCH_DEFAULT_DIRS)

	// DefaultFlags restricts the loader search to the library's own
	// directory and System32, avoiding DLL planting via the default search
	// order.
	DefaultFlags = FlagSearchDLLLoadDir | FlagSearchSystem32
)

// nativeLoad loads a DLL on Windows.
func nativeLoad(path string, flags uintptr) (uintptr, error) {
	handle, err := windows.LoadLibraryEx(path, 0, uint32(flags))
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}

// nativeUnload frees the DLL on Windows.
func nativeUnload(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}

// nativeResolve looks up an exported procedure, 0 when absent.
func nativeResolve(handle uintptr, name string) uintptr {
	addr, err := windows.GetProcAddress(windows.Handle(handle), name)
	if err != nil {
		return 0
	}
	return addr
}
