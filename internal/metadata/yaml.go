package metadata

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the on-disk layout read by LoadYAML.
type yamlDocument struct {
	Version string            `yaml:"version"`
	Regions []*RegionMetadata `yaml:"regions"`
}

// LoadYAML reads a declarative metadata document and builds a Store from it.
//
//	version: my-plan-1
//	regions:
//	  - region: NZ
//	    countryCallingCode: 64
//	    internationalPrefix: "00"
//	    nationalPrefix: "0"
//	    general: {pattern: "[2-9]\\d{7,9}", possibleLengths: [8, 9, 10]}
//	    numberFormats:
//	      - {pattern: "(\\d)(\\d{3})(\\d{4})", format: "$1-$2 $3", leadingDigits: ["[3-9]"], nationalPrefixFormattingRule: "$NP$FG"}
func LoadYAML(r io.Reader) (*Store, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("metadata: decode yaml: %w", err)
	}
	if doc.Version == "" {
		doc.Version = "yaml"
	}
	return NewStore(doc.Version, doc.Regions)
}

// LoadYAMLFile is LoadYAML on a file path.
func LoadYAMLFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return LoadYAML(f)
}
