package phonenumber

// Calling codes where mobile numbers carry a geographic area code.
var geoMobileCountries = map[int]bool{52: true, 54: true, 55: true, 62: true, 86: true}

// Calling codes where mobile numbers are geographic but have no area code.
var geoMobileWithoutAreaCode = map[int]bool{86: true}

// Calling codes without a national prefix whose numbers still have area codes.
var areaCodesWithoutNationalPrefix = map[int]bool{52: true}

// Digits dialled between the calling code and the national destination code
// of mobile numbers.
var mobileTokens = map[int]string{52: "1", 54: "9"}

// MobileToken returns the mobile token of a calling code, or "".
func MobileToken(callingCode int) string {
	return mobileTokens[callingCode]
}

// IsGeographical reports whether numbers of type t under callingCode are
// tied to a geographic area.
func IsGeographical(t NumberType, callingCode int) bool {
	return t == FixedLine || t == FixedLineOrMobile || (t == Mobile && geoMobileCountries[callingCode])
}

// GeographicalAreaCode returns the area code of a geographic number, or ""
// for non-geographic numbers and plans without area codes.
func (e *Engine) GeographicalAreaCode(p ParsedNumber) string {
	n := e.geographicalAreaCodeLength(p)
	nsn := p.NationalSignificantNumber()
	if n <= 0 || n > len(nsn) {
		return ""
	}
	return nsn[:n]
}

func (e *Engine) geographicalAreaCodeLength(p ParsedNumber) int {
	md := e.store.Region(e.regionForNumber(p))
	if md == nil {
		return 0
	}
	if md.NationalPrefix == "" && !p.italianLeadingZero && !areaCodesWithoutNationalPrefix[p.countryCode] {
		return 0
	}
	typ := e.NumberType(p)
	if typ == Mobile && geoMobileWithoutAreaCode[p.countryCode] {
		return 0
	}
	if !IsGeographical(typ, p.countryCode) {
		return 0
	}
	return e.NationalDestinationCodeLength(p)
}

// NationalDestinationCodeLength returns the length of the national
// destination code (area code or mobile network code) of p, derived from the
// grouping of its international format. It is 0 when the format has no
// separate group for it. For mobile numbers of calling codes with a mobile
// token the token is included.
func (e *Engine) NationalDestinationCodeLength(p ParsedNumber) int {
	formatted := e.Format(p.withoutExtension(), International)
	groups := nonDigits.Split(formatted, -1)
	for len(groups) > 0 && groups[len(groups)-1] == "" {
		groups = groups[:len(groups)-1]
	}
	// groups[0] precedes the plus sign, groups[1] is the calling code.
	if len(groups) <= 3 {
		return 0
	}
	if e.NumberType(p) == Mobile && MobileToken(p.countryCode) != "" {
		return len(groups[2]) + len(groups[3])
	}
	return len(groups[2])
}
