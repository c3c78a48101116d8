package phonenumber

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParsedNumber is the structured form of a phone number. Values are only
// produced by Engine.Parse and the example number helpers and never change
// afterwards; the zero value is not a number.
type ParsedNumber struct {
	countryCode        int
	nationalNumber     string
	extension          string
	rawInput           string
	italianLeadingZero bool
	leadingZeroCount   int
}

// CountryCallingCode is the 1 to 3 digit calling code.
func (p ParsedNumber) CountryCallingCode() int {
	return p.countryCode
}

// NationalNumber returns the national number without significant leading
// zeros. See NationalSignificantNumber.
func (p ParsedNumber) NationalNumber() string {
	return p.nationalNumber
}

// Extension returns the extension digits, or "".
func (p ParsedNumber) Extension() string {
	return p.extension
}

// RawInput returns the text the number was parsed from.
func (p ParsedNumber) RawInput() string {
	return p.rawInput
}

// ItalianLeadingZero reports whether the national significant number starts
// with zeros that are part of the number (as in Italy).
func (p ParsedNumber) ItalianLeadingZero() bool {
	return p.italianLeadingZero
}

// LeadingZeroCount is the number of significant leading zeros; it is only
// meaningful when ItalianLeadingZero is true.
func (p ParsedNumber) LeadingZeroCount() int {
	if !p.italianLeadingZero {
		return 0
	}
	return p.leadingZeroCount
}

// NationalSignificantNumber is the national number with its significant
// leading zeros restored.
func (p ParsedNumber) NationalSignificantNumber() string {
	if p.italianLeadingZero && p.leadingZeroCount > 0 {
		return strings.Repeat("0", p.leadingZeroCount) + p.nationalNumber
	}
	return p.nationalNumber
}

// IsZero reports whether p is the zero value.
func (p ParsedNumber) IsZero() bool {
	return p.countryCode == 0 && p.nationalNumber == ""
}

// Equal compares calling code, national significant number and extension.
func (p ParsedNumber) Equal(other ParsedNumber) bool {
	return p.countryCode == other.countryCode &&
		p.NationalSignificantNumber() == other.NationalSignificantNumber() &&
		p.extension == other.extension
}

// String returns the E.164 form.
func (p ParsedNumber) String() string {
	if p.IsZero() {
		return ""
	}
	return "+" + strconv.Itoa(p.countryCode) + p.NationalSignificantNumber()
}

// MarshalJSON encodes the number as its E.164 string.
func (p ParsedNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// withoutExtension returns a copy of p with the extension cleared.
func (p ParsedNumber) withoutExtension() ParsedNumber {
	p.extension = ""
	return p
}
