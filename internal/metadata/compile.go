package metadata

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var groupRefPattern = regexp.MustCompile(`\$(\d+)`)

// expandTemplate rewrites $N group references to ${N} so that a reference
// directly followed by a digit or letter is not read as a longer group name.
func expandTemplate(template string) string {
	return groupRefPattern.ReplaceAllString(template, "$${$1}")
}

func compileFull(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)$`)
}

func compilePrefix(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)`)
}

func (d *NumberDesc) compile() error {
	if d == nil {
		return nil
	}
	lengths := make([]int, 0, len(d.PossibleLengths))
	for _, l := range d.PossibleLengths {
		if l == -1 {
			// -1 marks a type the region does not have.
			d.PossibleLengths, d.LocalOnlyLengths, d.re = nil, nil, nil
			return nil
		}
		if l > 0 {
			lengths = append(lengths, l)
		}
	}
	slices.Sort(lengths)
	d.PossibleLengths = slices.Compact(lengths)
	slices.Sort(d.LocalOnlyLengths)

	if d.Pattern == "" || d.Pattern == "NA" {
		d.re = nil
		return nil
	}
	re, err := compileFull(d.Pattern)
	if err != nil {
		return fmt.Errorf("pattern %q: %w", d.Pattern, err)
	}
	d.re = re
	return nil
}

func (f *FormatRule) compile(nationalPrefix string) error {
	re, err := compileFull(f.Pattern)
	if err != nil {
		return fmt.Errorf("format pattern %q: %w", f.Pattern, err)
	}
	f.re = re

	if n := len(f.LeadingDigitsPatterns); n > 0 {
		leading, err := compilePrefix(f.LeadingDigitsPatterns[n-1])
		if err != nil {
			return fmt.Errorf("leading digits %q: %w", f.LeadingDigitsPatterns[n-1], err)
		}
		f.leading = leading
	}

	f.Format = expandTemplate(f.Format)
	if f.NationalPrefixFormattingRule != "" {
		rule := strings.ReplaceAll(f.NationalPrefixFormattingRule, "$NP", nationalPrefix)
		rule = strings.ReplaceAll(rule, "$FG", "$1")
		f.NationalPrefixFormattingRule = expandTemplate(rule)
	}
	if f.DomesticCarrierCodeFormattingRule != "" {
		rule := strings.ReplaceAll(f.DomesticCarrierCodeFormattingRule, "$NP", nationalPrefix)
		rule = strings.ReplaceAll(rule, "$FG", "$1")
		f.DomesticCarrierCodeFormattingRule = expandTemplate(rule)
	}
	return nil
}

// compile validates the record and compiles every pattern it carries. It is
// called exactly once, by NewStore.
func (m *RegionMetadata) compile() error {
	if m.CountryCallingCode <= 0 || m.CountryCallingCode > 999 {
		return fmt.Errorf("invalid country calling code %d", m.CountryCallingCode)
	}
	if m.General == nil {
		return fmt.Errorf("missing general description")
	}

	descs := append(m.Descs(), m.General, m.NoInternationalDialling)
	for _, d := range descs {
		if err := d.compile(); err != nil {
			return err
		}
	}

	if m.InternationalPrefix != "" {
		re, err := compilePrefix(m.InternationalPrefix)
		if err != nil {
			return fmt.Errorf("international prefix %q: %w", m.InternationalPrefix, err)
		}
		m.idd = re
	}

	if m.NationalPrefixForParsing == "" {
		m.NationalPrefixForParsing = m.NationalPrefix
	}
	if m.NationalPrefixForParsing != "" {
		re, err := compilePrefix(m.NationalPrefixForParsing)
		if err != nil {
			return fmt.Errorf("national prefix for parsing %q: %w", m.NationalPrefixForParsing, err)
		}
		m.nationalPrefix = re
	}
	m.NationalPrefixTransformRule = expandTemplate(m.NationalPrefixTransformRule)

	if m.LeadingDigits != "" {
		re, err := compilePrefix(m.LeadingDigits)
		if err != nil {
			return fmt.Errorf("leading digits %q: %w", m.LeadingDigits, err)
		}
		m.leadingDigits = re
	}

	for _, rules := range [][]*FormatRule{m.NumberFormats, m.IntlNumberFormats} {
		for _, f := range rules {
			if err := f.compile(m.NationalPrefix); err != nil {
				return err
			}
		}
	}
	return nil
}
