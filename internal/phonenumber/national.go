package phonenumber

import (
	"slices"
	"strings"

	"phonekit/internal/metadata"
)

// stripNationalPrefix removes the national prefix for parsing from the start
// of number, applying the region's transform rule when the prefix pattern
// captured something. The prefix is kept when the number matched the general
// pattern with it and would no longer match without it. The second result is
// the domestic carrier code captured by the prefix, if any.
func (e *Engine) stripNationalPrefix(number string, md *metadata.RegionMetadata) (string, string) {
	if number == "" || md == nil || md.NationalPrefixForParsing == "" {
		return number, ""
	}
	match := md.MatchNationalPrefix(number)
	if match == nil {
		return number, ""
	}

	general := md.General
	viableOriginal := general.MatchesPattern(number)
	groups := md.NationalPrefixGroups()
	lastGroupMatched := match[2*groups] >= 0

	if md.NationalPrefixTransformRule == "" || !lastGroupMatched {
		stripped := number[match[1]:]
		if viableOriginal && !general.MatchesPattern(stripped) {
			return number, ""
		}
		carrier := ""
		if groups > 0 && lastGroupMatched && match[2] >= 0 {
			carrier = number[match[2]:match[3]]
		}
		return stripped, carrier
	}

	transformed := md.TransformNationalPrefix(number, match)
	if viableOriginal && !general.MatchesPattern(transformed) {
		return number, ""
	}
	carrier := ""
	if groups > 1 && match[2] >= 0 {
		carrier = number[match[2]:match[3]]
	}
	return transformed, carrier
}

// testNumberLength checks the length of a national significant number
// against the general possible lengths of md.
func (e *Engine) testNumberLength(nsn string, md *metadata.RegionMetadata) Possibility {
	if md == nil || md.General == nil {
		return InvalidCallingCode
	}
	lengths := md.General.PossibleLengths
	n := len(nsn)

	if len(lengths) == 0 {
		switch {
		case !md.General.Available():
			return InvalidLength
		case n < e.opts.MinNSNLength:
			return PossibleTooShort
		case n > e.opts.MaxNSNLength:
			return PossibleTooLong
		}
		return IsPossible
	}

	if slices.Contains(md.General.LocalOnlyLengths, n) {
		return IsPossibleLocalOnly
	}
	switch minLen, maxLen := lengths[0], lengths[len(lengths)-1]; {
	case n == minLen:
		return IsPossible
	case n < minLen:
		return PossibleTooShort
	case n > maxLen:
		return PossibleTooLong
	case slices.Contains(lengths[1:], n):
		return IsPossible
	}
	return InvalidLength
}

// leadingZeros counts the significant zeros at the start of nsn. The last
// digit is never counted so that "0" and "00" keep a national number.
func leadingZeros(nsn string) (bool, int) {
	if len(nsn) < 2 || nsn[0] != '0' {
		return false, 0
	}
	count := 1
	for count < len(nsn)-1 && nsn[count] == '0' {
		count++
	}
	return true, count
}

// trimLeadingZeros drops the zeros leadingZeros counted.
func trimLeadingZeros(nsn string) string {
	trimmed := strings.TrimLeft(nsn, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
