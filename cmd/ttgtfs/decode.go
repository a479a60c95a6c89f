package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/tangero/tt-gtfs/ttformat"
)

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	outPath := fs.StringP("output", "o", "", "write JSON to this path instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("ttgtfs decode: expected exactly one <file.tt> argument")
	}
	inPath := fs.Arg(0)

	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("ttgtfs decode: reading %s: %w", inPath, err)
	}

	out, err := ttformat.Decode(data, filepath.Base(inPath))
	if err != nil {
		return fmt.Errorf("ttgtfs decode: %w", err)
	}

	w := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("ttgtfs decode: creating %s: %w", *outPath, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
