// Package metadata holds the per-region numbering plan tables the phone number
// engine runs on. A Store is built once, compiled once and then shared read-only.
package metadata

import (
	"regexp"
	"slices"
)

// NonGeoRegion is the region code used for global network calling codes
// (international freephone, universal premium rate, satellite services ...).
const NonGeoRegion = "001"

// NumberDesc describes the national significant numbers of one number type.
type NumberDesc struct {
	Pattern          string `yaml:"pattern"`
	PossibleLengths  []int  `yaml:"possibleLengths"`
	LocalOnlyLengths []int  `yaml:"localOnlyLengths"`
	ExampleNumber    string `yaml:"exampleNumber"`

	re *regexp.Regexp
}

// Available reports whether the description can match anything at all.
func (d *NumberDesc) Available() bool {
	return d != nil && d.re != nil
}

// MatchesPattern reports whether nsn matches the pattern in full, ignoring
// possible lengths.
func (d *NumberDesc) MatchesPattern(nsn string) bool {
	if !d.Available() {
		return false
	}
	return d.re.MatchString(nsn)
}

// Matches reports whether nsn has one of the possible lengths of this
// description (when any are listed) and matches its pattern in full.
func (d *NumberDesc) Matches(nsn string) bool {
	if !d.Available() {
		return false
	}
	if len(d.PossibleLengths) > 0 && !slices.Contains(d.PossibleLengths, len(nsn)) {
		return false
	}
	return d.re.MatchString(nsn)
}

// FormatRule is one entry of a region's ordered formatting table.
type FormatRule struct {
	Pattern                              string   `yaml:"pattern"`
	Format                               string   `yaml:"format"`
	LeadingDigitsPatterns                []string `yaml:"leadingDigits"`
	NationalPrefixFormattingRule         string   `yaml:"nationalPrefixFormattingRule"`
	NationalPrefixOptionalWhenFormatting bool     `yaml:"nationalPrefixOptionalWhenFormatting"`
	DomesticCarrierCodeFormattingRule    string   `yaml:"carrierCodeFormattingRule"`

	re      *regexp.Regexp
	leading *regexp.Regexp
}

// MatchesLeadingDigits reports whether the most specific leading digits
// pattern of the rule matches the start of nsn. Rules without leading digits
// patterns match every number.
func (f *FormatRule) MatchesLeadingDigits(nsn string) bool {
	if f.leading == nil {
		return true
	}
	return f.leading.MatchString(nsn)
}

// MatchesNumber reports whether the rule's pattern matches nsn in full.
func (f *FormatRule) MatchesNumber(nsn string) bool {
	return f.re != nil && f.re.MatchString(nsn)
}

// Apply renders nsn with template, substituting the rule's capture groups.
// Templates use ${N} group references (see expandTemplate).
func (f *FormatRule) Apply(nsn, template string) string {
	return f.re.ReplaceAllString(nsn, template)
}

// RegionMetadata is the numbering plan of one region, or of one global network
// calling code when RegionCode is NonGeoRegion.
type RegionMetadata struct {
	RegionCode                    string `yaml:"region"`
	CountryCallingCode            int    `yaml:"countryCallingCode"`
	MainCountryForCode            bool   `yaml:"mainCountryForCode"`
	LeadingDigits                 string `yaml:"leadingDigits"`
	InternationalPrefix           string `yaml:"internationalPrefix"`
	PreferredInternationalPrefix  string `yaml:"preferredInternationalPrefix"`
	NationalPrefix                string `yaml:"nationalPrefix"`
	PreferredExtnPrefix           string `yaml:"preferredExtnPrefix"`
	NationalPrefixForParsing      string `yaml:"nationalPrefixForParsing"`
	NationalPrefixTransformRule   string `yaml:"nationalPrefixTransformRule"`
	SameMobileAndFixedLinePattern bool   `yaml:"sameMobileAndFixedLinePattern"`
	MobileNumberPortable          bool   `yaml:"mobileNumberPortable"`

	General                 *NumberDesc `yaml:"general"`
	FixedLine               *NumberDesc `yaml:"fixedLine"`
	Mobile                  *NumberDesc `yaml:"mobile"`
	TollFree                *NumberDesc `yaml:"tollFree"`
	PremiumRate             *NumberDesc `yaml:"premiumRate"`
	SharedCost              *NumberDesc `yaml:"sharedCost"`
	PersonalNumber          *NumberDesc `yaml:"personalNumber"`
	VoIP                    *NumberDesc `yaml:"voip"`
	Pager                   *NumberDesc `yaml:"pager"`
	UAN                     *NumberDesc `yaml:"uan"`
	Emergency               *NumberDesc `yaml:"emergency"`
	Voicemail               *NumberDesc `yaml:"voicemail"`
	ShortCode               *NumberDesc `yaml:"shortCode"`
	StandardRate            *NumberDesc `yaml:"standardRate"`
	NoInternationalDialling *NumberDesc `yaml:"noInternationalDialling"`

	NumberFormats     []*FormatRule `yaml:"numberFormats"`
	IntlNumberFormats []*FormatRule `yaml:"intlNumberFormats"`

	idd            *regexp.Regexp
	nationalPrefix *regexp.Regexp
	leadingDigits  *regexp.Regexp
}

// IsNonGeographical reports whether the record describes a global network
// calling code rather than a region.
func (m *RegionMetadata) IsNonGeographical() bool {
	return m.RegionCode == NonGeoRegion
}

// MatchIDD returns the length of the international dialling prefix at the
// start of number, or -1 when number does not start with it.
func (m *RegionMetadata) MatchIDD(number string) int {
	if m == nil || m.idd == nil {
		return -1
	}
	loc := m.idd.FindStringIndex(number)
	if loc == nil {
		return -1
	}
	return loc[1]
}

// MatchNationalPrefix matches the national prefix for parsing at the start of
// number. It returns the submatch index pairs (as regexp.FindStringSubmatchIndex
// does) or nil when there is no match or no prefix is configured.
func (m *RegionMetadata) MatchNationalPrefix(number string) []int {
	if m == nil || m.nationalPrefix == nil {
		return nil
	}
	return m.nationalPrefix.FindStringSubmatchIndex(number)
}

// NationalPrefixGroups is the number of capture groups in the national prefix
// for parsing pattern.
func (m *RegionMetadata) NationalPrefixGroups() int {
	if m == nil || m.nationalPrefix == nil {
		return 0
	}
	return m.nationalPrefix.NumSubexp()
}

// TransformNationalPrefix replaces the national prefix matched at the start of
// number (match as returned by MatchNationalPrefix) with the transform rule.
func (m *RegionMetadata) TransformNationalPrefix(number string, match []int) string {
	head := m.nationalPrefix.ExpandString(nil, m.NationalPrefixTransformRule, number, match)
	return string(head) + number[match[1]:]
}

// MatchesLeadingDigits reports whether nsn starts with the region's leading
// digits. It is false for regions that do not declare any.
func (m *RegionMetadata) MatchesLeadingDigits(nsn string) bool {
	if m.leadingDigits == nil {
		return false
	}
	return m.leadingDigits.MatchString(nsn)
}

// HasLeadingDigits reports whether the region declares leading digits.
func (m *RegionMetadata) HasLeadingDigits() bool {
	return m.leadingDigits != nil
}

// Descs returns the type descriptions in the order the classifier consults
// them. General and NoInternationalDialling are not included.
func (m *RegionMetadata) Descs() []*NumberDesc {
	return []*NumberDesc{
		m.FixedLine, m.Mobile, m.TollFree, m.PremiumRate, m.SharedCost,
		m.PersonalNumber, m.VoIP, m.Pager, m.UAN, m.Emergency, m.Voicemail,
		m.ShortCode, m.StandardRate,
	}
}
