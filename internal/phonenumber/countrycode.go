package phonenumber

import (
	"strconv"
	"strings"

	"phonekit/internal/metadata"
)

// countryCodeSource records how the calling code of a number was written.
type countryCodeSource int

const (
	fromDefaultRegion countryCodeSource = iota
	fromPlusSign
	fromIDD
)

// stripInternationalPrefix removes a leading plus sign or the region's
// international prefix and normalises the rest to ASCII digits.
func stripInternationalPrefix(number string, md *metadata.RegionMetadata) (string, countryCodeSource) {
	if number == "" {
		return number, fromDefaultRegion
	}
	if loc := leadingPlusChars.FindStringIndex(number); loc != nil {
		return normalizeDigits(number[loc[1]:]), fromPlusSign
	}

	number = normalizeDigits(number)
	end := md.MatchIDD(number)
	if end < 0 {
		return number, fromDefaultRegion
	}
	// A national number never starts with 0 after an IDD, so "00 0..." is
	// not dialled internationally.
	if end < len(number) && number[end] == '0' {
		return number, fromDefaultRegion
	}
	return number[end:], fromIDD
}

// extractCountryCode takes the shortest known calling code off the start of
// digits. It returns 0 when none of the first 1 to 3 digits form one.
func (e *Engine) extractCountryCode(digits string) (int, string) {
	if digits == "" || digits[0] == '0' {
		return 0, ""
	}
	for i := 1; i <= maxCountryCodeLength && i <= len(digits); i++ {
		cc, err := strconv.Atoi(digits[:i])
		if err != nil {
			return 0, ""
		}
		if e.store.HasCallingCode(cc) {
			return cc, digits[i:]
		}
	}
	return 0, ""
}

// maybeExtractCountryCode resolves the calling code written in number, if
// any, and returns it with the remaining national digits. A zero calling code
// means the number is written in national format.
func (e *Engine) maybeExtractCountryCode(number string, defaultMD *metadata.RegionMetadata) (int, string, error) {
	if number == "" {
		return 0, "", nil
	}

	full, source := stripInternationalPrefix(number, defaultMD)
	if source != fromDefaultRegion {
		if len(full) <= e.opts.MinNSNLength {
			return 0, "", newParseError(TooShortAfterIDD,
				"phone number had an IDD, but after this was not long enough to be a viable phone number")
		}
		if cc, national := e.extractCountryCode(full); cc != 0 {
			return cc, national, nil
		}
		return 0, "", newParseError(InvalidCountryCode, "country calling code supplied was not recognised")
	}

	if defaultMD != nil {
		// The number may start with the default region's own calling code
		// written without a plus sign. Only drop it when the digits make no
		// sense as a national number otherwise.
		cc := defaultMD.CountryCallingCode
		ccDigits := strconv.Itoa(cc)
		if national, ok := strings.CutPrefix(full, ccDigits); ok {
			potential, _ := e.stripNationalPrefix(national, defaultMD)
			general := defaultMD.General
			if (!general.MatchesPattern(full) && general.MatchesPattern(potential)) ||
				e.testNumberLength(full, defaultMD) == PossibleTooLong {
				return cc, potential, nil
			}
		}
	}
	return 0, "", nil
}
