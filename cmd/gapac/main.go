// Command gapac translates between the binary particle-effect container
// format (Particles.jpc, ParticleNames.bcsv, AutoEffectList.bcsv) and a
// human-editable JSON document tree.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/AwesomeTMC/gapac/gapaerr"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-rarc <file>] dump <input_dir> <output_dir>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s [-rarc <file>] pack <input_dir> <output_dir>\n", os.Args[0])
}

func main() {
	rarcPath := flag.String("rarc", "", "read Particles.jpc/ParticleNames.bcsv/AutoEffectList.bcsv from this RARC archive's Effect/ directory instead of loose files")
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		usage()
		os.Exit(1)
	}

	cmd, inputDir, outputDir := args[0], args[1], args[2]

	if cmd == "pack" && *rarcPath != "" {
		fmt.Fprintf(os.Stderr, "Error: -rarc only applies to dump; packing writes loose files only\n")
		os.Exit(1)
	}

	var err error
	switch cmd {
	case "dump":
		err = runDump(inputDir, outputDir, *rarcPath)
	case "pack":
		err = runPack(inputDir, outputDir)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown subcommand %q\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "gapac %s: %v\n", cmd, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an operation error to the documented exit code: codec
// errors (gapaerr.Error, wrapped or not) exit 3, anything else reaching
// here is an input I/O failure and exits 2.
func exitCodeFor(err error) int {
	var gerr *gapaerr.Error
	if errors.As(err, &gerr) {
		return 3
	}
	return 2
}
