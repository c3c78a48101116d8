package phonenumber

import (
	"fmt"
	"strings"
)

// NumberType classifies a number by the service it reaches.
type NumberType int

const (
	// Unknown is returned when the number matches no type of its region.
	Unknown NumberType = iota
	// FixedLine is a geographic landline number.
	FixedLine
	// Mobile is a mobile network number.
	Mobile
	// FixedLineOrMobile is used where the region's plan cannot tell the two apart (NANPA).
	FixedLineOrMobile
	// TollFree numbers are free for the caller.
	TollFree
	// PremiumRate numbers charge the caller above the standard rate.
	PremiumRate
	// SharedCost numbers split the cost between caller and recipient.
	SharedCost
	// VoIP is a nomadic voice over IP number.
	VoIP
	// PersonalNumber is a follow-me number routed to another line.
	PersonalNumber
	// Pager numbers reach a paging service.
	Pager
	// UAN is a universal access number for a company.
	UAN
	// Emergency numbers reach emergency services.
	Emergency
	// Voicemail numbers reach a voicemail access service.
	Voicemail
	// ShortCode is a short dialling code.
	ShortCode
	// StandardRate numbers are charged at the standard rate.
	StandardRate
)

var numberTypeNames = [...]string{
	Unknown:           "UNKNOWN",
	FixedLine:         "FIXED_LINE",
	Mobile:            "MOBILE",
	FixedLineOrMobile: "FIXED_LINE_OR_MOBILE",
	TollFree:          "TOLL_FREE",
	PremiumRate:       "PREMIUM_RATE",
	SharedCost:        "SHARED_COST",
	VoIP:              "VOIP",
	PersonalNumber:    "PERSONAL_NUMBER",
	Pager:             "PAGER",
	UAN:               "UAN",
	Emergency:         "EMERGENCY",
	Voicemail:         "VOICEMAIL",
	ShortCode:         "SHORT_CODE",
	StandardRate:      "STANDARD_RATE",
}

func (t NumberType) String() string {
	if t < 0 || int(t) >= len(numberTypeNames) {
		return fmt.Sprintf("NumberType(%d)", int(t))
	}
	return numberTypeNames[t]
}

// MarshalText encodes the type by name.
func (t NumberType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name, case-insensitively.
func (t *NumberType) UnmarshalText(text []byte) error {
	parsed, err := ParseNumberType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseNumberType looks a number type up by name ("MOBILE", "toll_free", ...).
func ParseNumberType(name string) (NumberType, error) {
	for i, n := range numberTypeNames {
		if strings.EqualFold(n, name) {
			return NumberType(i), nil
		}
	}
	return Unknown, fmt.Errorf("phonenumber: unknown number type %q", name)
}

// NumberTypeNames lists every number type name in declaration order.
func NumberTypeNames() []string {
	return append([]string(nil), numberTypeNames[:]...)
}

// Format selects a textual rendering of a number.
type Format int

const (
	// E164 is "+" followed by the calling code and national significant number.
	E164 Format = iota
	// International is the grouped form with a leading "+cc ".
	International
	// National is the grouped form as dialled inside the region.
	National
	// RFC3966 is the tel: URI form.
	RFC3966
)

var formatNames = [...]string{
	E164:          "E164",
	International: "INTERNATIONAL",
	National:      "NATIONAL",
	RFC3966:       "RFC3966",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// MarshalText encodes the format by name.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a format name, case-insensitively.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFormat looks a format up by name.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if strings.EqualFold(n, name) {
			return Format(i), nil
		}
	}
	return E164, fmt.Errorf("phonenumber: unknown format %q", name)
}

// ParseErrorKind is the reason a text could not be parsed.
type ParseErrorKind int

const (
	// InvalidCountryCode means no calling code could be derived from the text
	// or from the default region.
	InvalidCountryCode ParseErrorKind = iota
	// NotANumber means the text does not look like a phone number.
	NotANumber
	// TooShortAfterIDD means too few digits follow an international prefix.
	TooShortAfterIDD
	// TooShortNSN means the national significant number is too short.
	TooShortNSN
	// TooLong means the text or the national significant number is too long.
	TooLong
)

var parseErrorKindNames = [...]string{
	InvalidCountryCode: "INVALID_COUNTRY_CODE",
	NotANumber:         "NOT_A_NUMBER",
	TooShortAfterIDD:   "TOO_SHORT_AFTER_IDD",
	TooShortNSN:        "TOO_SHORT_NSN",
	TooLong:            "TOO_LONG",
}

func (k ParseErrorKind) String() string {
	if k < 0 || int(k) >= len(parseErrorKindNames) {
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
	return parseErrorKindNames[k]
}

// MarshalText encodes the kind by name.
func (k ParseErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Possibility is the outcome of the length-only possibility check.
type Possibility int

const (
	// IsPossible means the length fits the region's plan.
	IsPossible Possibility = iota
	// IsPossibleLocalOnly means the number can only be dialled locally.
	IsPossibleLocalOnly
	// InvalidCallingCode means the calling code is not known.
	InvalidCallingCode
	// PossibleTooShort means the number is shorter than any possible length.
	PossibleTooShort
	// InvalidLength means the length falls between possible lengths.
	InvalidLength
	// PossibleTooLong means the number is longer than any possible length.
	PossibleTooLong
)

var possibilityNames = [...]string{
	IsPossible:          "IS_POSSIBLE",
	IsPossibleLocalOnly: "IS_POSSIBLE_LOCAL_ONLY",
	InvalidCallingCode:  "INVALID_COUNTRY_CODE",
	PossibleTooShort:    "TOO_SHORT",
	InvalidLength:       "INVALID_LENGTH",
	PossibleTooLong:     "TOO_LONG",
}

func (p Possibility) String() string {
	if p < 0 || int(p) >= len(possibilityNames) {
		return fmt.Sprintf("Possibility(%d)", int(p))
	}
	return possibilityNames[p]
}

// MarshalText encodes the possibility by name.
func (p Possibility) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
