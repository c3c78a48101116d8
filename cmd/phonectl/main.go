// Command phonectl normalizes phone numbers in bulk. It reads one number per
// line from a file or stdin and writes CSV to stdout.
//
//	phonectl -region NZ -format national numbers.txt
package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"phonekit/internal/metadata"
	"phonekit/internal/metadata/upstream"
	"phonekit/internal/phonenumber"
)

var header = []string{"input", "e164", "formatted", "type", "valid", "error"}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "phonectl:", err)
		}
		os.Exit(2)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("phonectl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	region := fs.String("region", "", "default region for numbers without a leading +")
	formatName := fs.String("format", "international", "output format: e164, international, national or rfc3966")
	metadataFile := fs.String("metadata", "", "YAML metadata file (default: bundled upstream plans)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	format, err := phonenumber.ParseFormat(*formatName)
	if err != nil {
		return err
	}

	store, err := loadStore(*metadataFile)
	if err != nil {
		return err
	}
	if *region != "" && !store.IsSupportedRegion(*region) {
		return fmt.Errorf("unknown region %q", *region)
	}

	in := stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	engine := phonenumber.New(store, phonenumber.Options{})
	return convert(engine, strings.ToUpper(*region), format, in, stdout)
}

func loadStore(path string) (*metadata.Store, error) {
	if path != "" {
		return metadata.LoadYAMLFile(path)
	}
	return upstream.Default()
}

func convert(engine *phonenumber.Engine, region string, format phonenumber.Format, in io.Reader, out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := w.Write(row(engine, line, region, format)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func row(engine *phonenumber.Engine, line, region string, format phonenumber.Format) []string {
	p, err := engine.Parse(line, region)
	if err != nil {
		kind, _ := phonenumber.ParseErrorKindOf(err)
		return []string{line, "", "", "", "", kind.String()}
	}
	return []string{
		line,
		engine.Format(p, phonenumber.E164),
		engine.Format(p, format),
		engine.NumberType(p).String(),
		strconv.FormatBool(engine.IsValid(p)),
		"",
	}
}
