// Command ringsnapshot loads a diagnostics dump written by the core
// library and prints it, exercising diagnostics.Load's zstd decode path
// the way the teacher's reader.go exercises its own decompressor outside
// of the main client.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/basinrelay/ringstore/diagnostics"
)

func main() {
	path := flag.String("dump", "", "path to a diagnostics dump file")
	flag.Parse()

	if *path == "" {
		log.Fatal("ringsnapshot: -dump is required")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("ringsnapshot: open dump: %v", err)
	}
	defer f.Close()

	snap, err := diagnostics.Load(f)
	if err != nil {
		log.Fatalf("ringsnapshot: load dump: %v", err)
	}

	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		log.Fatalf("ringsnapshot: marshal snapshot: %v", err)
	}
	fmt.Println(string(out))
}
