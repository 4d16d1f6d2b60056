// Command mktemplate writes the generated default template to disk, for
// inspection or as a starting point for custom templates.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"slidegen/export"
)

func main() {
	dir := flag.String("dir", "templates", "directory to write the template into")
	name := flag.String("name", export.DefaultTemplateID, "template id, written as <name>.pptx")
	flag.Parse()

	data, err := export.BuildDefaultTemplate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build template: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", *dir, err)
		os.Exit(1)
	}
	path := filepath.Join(*dir, *name+".pptx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d bytes)\n", path, len(data))
}
