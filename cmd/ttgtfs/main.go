// Command ttgtfs decodes CHAPS .tt timetable files and exports GTFS feeds.
//
// Usage:
//
//	ttgtfs decode <file.tt> [-o out.json]
//	ttgtfs batch <komplet-dir> [-o out-dir] [--merge] [--url <archive.zip>]
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "decode":
		err = runDecode(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "ttgtfs: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `ttgtfs - CHAPS .tt -> GTFS converter

Usage:
  ttgtfs decode <file.tt> [-o out.json]
  ttgtfs batch <komplet-dir> [-o out-dir] [--merge] [--url <archive.zip>]`)
}
