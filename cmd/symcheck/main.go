package main

import (
	"log"
	"os"

	"github.com/kawai-network/dylib"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("usage: symcheck <library> <symbol> [symbol ...]")
	}

	lib, err := dylib.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to open library: %v", err)
	}
	defer lib.Close()

	missing := 0
	for _, name := range os.Args[2:] {
		addr, ok := lib.Addr(name)
		if !ok {
			log.Printf("%s: not found", name)
			missing++
			continue
		}
		log.Printf("%s = %#x", name, addr)
	}

	if missing > 0 {
		os.Exit(1)
	}
}
