package phonenumber

import (
	"strconv"
	"strings"

	"phonekit/internal/metadata"
)

// FormatForCallingFrom renders p as dialled from a landline in callingFrom.
// Numbers sharing callingFrom's calling code are formatted nationally (with a
// leading "1 " inside NANPA); others get callingFrom's international prefix
// when it is a single fixed prefix, or "+" otherwise. An unknown callingFrom
// yields the international format.
func (e *Engine) FormatForCallingFrom(p ParsedNumber, callingFrom string) string {
	from := e.store.Region(callingFrom)
	if from == nil {
		return e.Format(p, International)
	}

	cc := p.countryCode
	md := e.mainMetadata(cc)
	if md == nil {
		return p.NationalSignificantNumber()
	}

	if cc == nanpaCountryCode {
		if from.CountryCallingCode == nanpaCountryCode {
			return strconv.Itoa(cc) + " " + e.Format(p, National)
		}
	} else if cc == from.CountryCallingCode {
		return e.Format(p, National)
	}

	prefix := from.PreferredInternationalPrefix
	if prefix == "" && singleIntlPrefix.MatchString(from.InternationalPrefix) {
		prefix = from.InternationalPrefix
	}

	formatted := formatNSN(p.NationalSignificantNumber(), md, International, "")
	formatted += formattedExtension(p, md, International)
	if prefix != "" {
		return prefix + " " + strconv.Itoa(cc) + " " + formatted
	}
	return prefixCallingCode(cc, International, formatted)
}

// FormatForMobileDialing renders p as dialled from a mobile phone in
// callingFrom, without the extension. The second result is false when the
// number cannot be dialled from there at all. withFormatting keeps the digit
// grouping; without it only diallable characters remain.
func (e *Engine) FormatForMobileDialing(p ParsedNumber, callingFrom string, withFormatting bool) (string, bool) {
	callingFrom = strings.ToUpper(callingFrom)
	cc := p.countryCode
	if !e.store.HasCallingCode(cc) {
		return "", false
	}

	number := p.withoutExtension()
	region := e.store.MainRegionForCallingCode(cc)
	typ := e.NumberType(number)
	valid := typ != Unknown

	var formatted string
	if callingFrom == region {
		fixedOrMobile := typ == FixedLine || typ == Mobile || typ == FixedLineOrMobile
		switch {
		case region == "BR" && fixedOrMobile:
			// Domestic calls in Brazil need a carrier code, which plain
			// parsed numbers do not carry.
			formatted = ""
		case cc == nanpaCountryCode:
			if e.CanBeInternationallyDialled(number) &&
				e.testNumberLength(number.NationalSignificantNumber(), e.store.Region(callingFrom)) != PossibleTooShort {
				formatted = e.Format(number, International)
			} else {
				formatted = e.Format(number, National)
			}
		case (region == metadata.NonGeoRegion || ((region == "MX" || region == "CL" || region == "UZ") && fixedOrMobile)) &&
			e.CanBeInternationallyDialled(number):
			formatted = e.Format(number, International)
		default:
			formatted = e.Format(number, National)
		}
	} else if valid && e.CanBeInternationallyDialled(number) {
		if withFormatting {
			return e.Format(number, International), true
		}
		return e.Format(number, E164), true
	}

	if formatted == "" {
		return "", false
	}
	if withFormatting {
		return formatted, true
	}
	return normalizeDiallable(formatted), true
}

// CanBeInternationallyDialled reports whether p can be dialled from outside
// its region. Numbers of unknown regions are assumed to be.
func (e *Engine) CanBeInternationallyDialled(p ParsedNumber) bool {
	md := e.store.Region(e.regionForNumber(p))
	if md == nil {
		return true
	}
	return !md.NoInternationalDialling.Matches(p.NationalSignificantNumber())
}
