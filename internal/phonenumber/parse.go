package phonenumber

import (
	"unicode/utf8"
)

// Parse turns text into a ParsedNumber. defaultRegion is the region assumed
// for numbers written in national format; it may be empty when text starts
// with a plus sign. Failures are always a *ParseError.
func (e *Engine) Parse(text, defaultRegion string) (ParsedNumber, error) {
	if utf8.RuneCountInString(text) > e.opts.MaxInputLength {
		return ParsedNumber{}, newParseError(TooLong, "the string supplied was too long to parse")
	}

	number, err := buildNationalNumberForParsing(text)
	if err != nil {
		return ParsedNumber{}, err
	}
	if !e.isViablePhoneNumber(number) {
		return ParsedNumber{}, newParseError(NotANumber, "the string supplied did not seem to be a phone number")
	}
	if !e.store.IsSupportedRegion(defaultRegion) && !leadingPlusChars.MatchString(number) {
		return ParsedNumber{}, newParseError(InvalidCountryCode, "missing or invalid default region")
	}

	number, extension := e.stripExtension(number)
	if isVanityNumber(number) {
		return ParsedNumber{}, newParseError(NotANumber, "vanity numbers are not supported")
	}

	regionMD := e.store.Region(defaultRegion)

	cc, national, err := e.maybeExtractCountryCode(number, regionMD)
	if err != nil {
		loc := leadingPlusChars.FindStringIndex(number)
		if kind, _ := ParseErrorKindOf(err); kind != InvalidCountryCode || loc == nil {
			return ParsedNumber{}, err
		}
		// "+0044 ..." and similar: the digits after the plus may start with
		// an international prefix of their own.
		cc, national, err = e.maybeExtractCountryCode(number[loc[1]:], regionMD)
		if err != nil {
			return ParsedNumber{}, err
		}
		if cc == 0 {
			return ParsedNumber{}, newParseError(InvalidCountryCode, "could not interpret numbers after plus-sign")
		}
	}

	if cc != 0 {
		if region := e.store.MainRegionForCallingCode(cc); regionMD == nil || region != regionMD.RegionCode {
			regionMD = e.store.ForRegionOrCallingCode(cc, region)
		}
	} else {
		if regionMD == nil {
			return ParsedNumber{}, newParseError(InvalidCountryCode, "missing or invalid default region")
		}
		national = normalizeDigits(number)
		cc = regionMD.CountryCallingCode
	}

	if len(national) < e.opts.MinNSNLength {
		return ParsedNumber{}, newParseError(TooShortNSN, "the string supplied is too short to be a phone number")
	}

	if regionMD != nil {
		potential, _ := e.stripNationalPrefix(national, regionMD)
		switch e.testNumberLength(potential, regionMD) {
		case PossibleTooShort, IsPossibleLocalOnly, InvalidLength:
			// Keep the prefix: stripping it leaves an implausible number.
		default:
			national = potential
		}
	}

	if len(national) < e.opts.MinNSNLength {
		return ParsedNumber{}, newParseError(TooShortNSN, "the string supplied is too short to be a phone number")
	}
	if len(national) > e.opts.MaxNSNLength {
		return ParsedNumber{}, newParseError(TooLong, "the string supplied is too long to be a phone number")
	}

	p := ParsedNumber{
		countryCode: cc,
		extension:   extension,
		rawInput:    text,
	}
	p.italianLeadingZero, p.leadingZeroCount = leadingZeros(national)
	p.nationalNumber = trimLeadingZeros(national)
	return p, nil
}
