// Package phonenumber parses, validates, classifies and formats international
// phone numbers against the numbering plans of a metadata.Store.
//
// An Engine holds no mutable state: every method is a pure function of its
// arguments and the store, and may be called from any number of goroutines.
package phonenumber

import (
	"fmt"
	"regexp"

	"phonekit/internal/metadata"
)

const (
	defaultMinNSNLength   = 2
	defaultMaxNSNLength   = 17
	defaultMaxInputLength = 250

	maxCountryCodeLength = 3
	nanpaCountryCode     = 1
)

// Options tunes the length thresholds of the parser. Zero fields take the
// defaults.
type Options struct {
	// MinNSNLength is the shortest national significant number accepted, and
	// the number of digits that must follow an international prefix. Default 2.
	MinNSNLength int
	// MaxNSNLength is the longest national significant number accepted. Default 17.
	MaxNSNLength int
	// MaxInputLength is the longest text Parse looks at, in runes. Default 250.
	MaxInputLength int
}

func (o Options) withDefaults() Options {
	if o.MinNSNLength <= 0 {
		o.MinNSNLength = defaultMinNSNLength
	}
	if o.MaxNSNLength <= 0 {
		o.MaxNSNLength = defaultMaxNSNLength
	}
	if o.MaxInputLength <= 0 {
		o.MaxInputLength = defaultMaxInputLength
	}
	return o
}

// Engine runs the parse, classify and format algorithms over one metadata
// snapshot.
type Engine struct {
	store *metadata.Store
	opts  Options

	validPhoneNumber *regexp.Regexp
}

// New returns an Engine over store.
func New(store *metadata.Store, opts Options) *Engine {
	opts = opts.withDefaults()
	return &Engine{
		store:            store,
		opts:             opts,
		validPhoneNumber: compileValidPhoneNumber(opts.MinNSNLength),
	}
}

// Store returns the metadata snapshot the engine runs on.
func (e *Engine) Store() *metadata.Store {
	return e.store
}

// Options returns the effective thresholds.
func (e *Engine) Options() Options {
	return e.opts
}

// mainMetadata returns the metadata used to format and length-check numbers
// with calling code cc: the main region's, or the global network's.
func (e *Engine) mainMetadata(cc int) *metadata.RegionMetadata {
	region := e.store.MainRegionForCallingCode(cc)
	if region == "" {
		return nil
	}
	return e.store.ForRegionOrCallingCode(cc, region)
}

func compileValidPhoneNumber(minNSN int) *regexp.Regexp {
	valid := fmt.Sprintf(`\p{Nd}{%d}|[%s]*(?:[%s%s]*\p{Nd}){3,}[%s%s%s\p{Nd}]*`,
		minNSN, plusChars, validPunctuation, starSign, validPunctuation, starSign, validAlpha)
	return regexp.MustCompile(`(?i)^(?:` + valid + `(?:` + extnPatternsForParsing + `)?)$`)
}
