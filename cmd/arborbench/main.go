// Command arborbench builds a fixtures.Manifest-described object graph,
// runs diagnostics.Analyze over it, and logs the resulting report. It
// exists to give the allocator a runnable surface outside of go test, the
// way this lineage's examples/ directory gives its graph algorithms one.
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/arbor"
	"github.com/katalvlaran/arbor/diagnostics"
	"github.com/katalvlaran/arbor/fixtures"
)

func main() {
	manifestPath := flag.String("manifest", "", "path to a YAML fixtures.Manifest document (required)")
	dump := flag.Bool("dump", false, "also print the indented tree dump")
	flag.Parse()

	if *manifestPath == "" {
		log.Fatal("arborbench: -manifest is required")
	}

	doc, err := os.ReadFile(*manifestPath)
	if err != nil {
		log.Fatalf("arborbench: reading manifest: %v", err)
	}

	root, err := fixtures.FromManifest(doc)
	if err != nil {
		log.Fatalf("arborbench: building graph: %v", err)
	}

	report(root)
	if *dump {
		fmt.Print(diagnostics.Dump(root))
	}
}

func report(root *arbor.Object) {
	st := diagnostics.Analyze(root)
	log.WithFields(log.Fields{
		"objects":   st.ObjectCount,
		"edges":     st.EdgeCount,
		"max_depth": st.MaxDepth,
		"orphans":   len(st.Orphans),
	}).Info("graph analyzed")
}
