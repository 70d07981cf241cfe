// Command maecat reads Maestro MAE files and prints each structure as
// one JSON document. Undefined cells become JSON null.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	mae "github.com/KimNorgaard/go-mae"
)

func main() {
	pretty := flag.Bool("pretty", false, "indent JSON output")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: maecat [-pretty] file.mae ...")
		os.Exit(2)
	}

	log.SetFlags(0)
	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}

	for _, path := range flag.Args() {
		records, err := mae.Read(path)
		if err != nil {
			log.Fatalf("maecat: %s: %v", path, err)
		}
		for _, rec := range records {
			if err := enc.Encode(rec); err != nil {
				log.Fatalf("maecat: %v", err)
			}
		}
	}
}
