package phonenumber

import (
	"regexp"
	"strconv"
	"strings"

	"phonekit/internal/metadata"
)

var firstGroupRef = regexp.MustCompile(`\$\{\d+\}`)

// Format renders p. E164 ignores the extension; the other formats append it.
// A number no format rule matches is rendered as plain digits.
func (e *Engine) Format(p ParsedNumber, f Format) string {
	return e.format(p, f, "")
}

// FormatWithCarrierCode renders p in national format with a domestic carrier
// code selection, for regions whose plans define one (BR, CO, ...). Regions
// without a carrier code rule get the plain national format.
func (e *Engine) FormatWithCarrierCode(p ParsedNumber, carrierCode string) string {
	return e.format(p, National, carrierCode)
}

func (e *Engine) format(p ParsedNumber, f Format, carrierCode string) string {
	cc := p.countryCode
	nsn := p.NationalSignificantNumber()
	if f == E164 {
		return prefixCallingCode(cc, E164, nsn)
	}

	md := e.mainMetadata(cc)
	if md == nil {
		return nsn
	}
	formatted := formatNSN(nsn, md, f, carrierCode)
	formatted += formattedExtension(p, md, f)
	return prefixCallingCode(cc, f, formatted)
}

func prefixCallingCode(cc int, f Format, formatted string) string {
	code := strconv.Itoa(cc)
	switch f {
	case E164:
		return "+" + code + formatted
	case International:
		return "+" + code + " " + formatted
	case RFC3966:
		return rfc3966Prefix + "+" + code + "-" + formatted
	}
	return formatted
}

func formattedExtension(p ParsedNumber, md *metadata.RegionMetadata, f Format) string {
	if p.extension == "" {
		return ""
	}
	switch {
	case f == RFC3966:
		return rfc3966ExtnPrefix + p.extension
	case md.PreferredExtnPrefix != "":
		return md.PreferredExtnPrefix + p.extension
	}
	return defaultExtnPrefix + p.extension
}

// formatNSN groups a national significant number with the first matching
// rule of md. National uses the national rules; the other formats use the
// international rules when the region defines any.
func formatNSN(nsn string, md *metadata.RegionMetadata, f Format, carrierCode string) string {
	rules := md.IntlNumberFormats
	if len(rules) == 0 || f == National {
		rules = md.NumberFormats
	}
	rule := chooseFormatRule(rules, nsn)
	if rule == nil {
		return nsn
	}
	return formatWithRule(nsn, rule, f, carrierCode)
}

func chooseFormatRule(rules []*metadata.FormatRule, nsn string) *metadata.FormatRule {
	for _, rule := range rules {
		if rule.MatchesLeadingDigits(nsn) && rule.MatchesNumber(nsn) {
			return rule
		}
	}
	return nil
}

func formatWithRule(nsn string, rule *metadata.FormatRule, f Format, carrierCode string) string {
	template := rule.Format
	switch {
	case f == National && carrierCode != "" && rule.DomesticCarrierCodeFormattingRule != "":
		ccRule := strings.ReplaceAll(rule.DomesticCarrierCodeFormattingRule, "$CC", carrierCode)
		template = replaceFirstGroup(template, ccRule)
	case f == National && rule.NationalPrefixFormattingRule != "":
		template = replaceFirstGroup(template, rule.NationalPrefixFormattingRule)
	}

	formatted := rule.Apply(nsn, template)
	if f == RFC3966 {
		formatted = leadingSeparators.ReplaceAllString(formatted, "")
		formatted = separatorPattern.ReplaceAllString(formatted, "-")
	}
	return formatted
}

// replaceFirstGroup substitutes the first group reference of template with
// rule, where ${1} in rule stands for that group reference.
func replaceFirstGroup(template, rule string) string {
	loc := firstGroupRef.FindStringIndex(template)
	if loc == nil {
		return template
	}
	ref := template[loc[0]:loc[1]]
	return template[:loc[0]] + strings.ReplaceAll(rule, "${1}", ref) + template[loc[1]:]
}
