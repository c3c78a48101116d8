package lookup

import (
	"fmt"
	"strings"
)

// CarrierNameMode selects when a carrier name is reported.
type CarrierNameMode int

const (
	// Always reports the carrier whenever the tables know it.
	Always CarrierNameMode = iota
	// MobileOnly reports the carrier only for mobile, pager and fixed-line-or-mobile numbers.
	MobileOnly
	// MobileNoPortabilityOnly additionally requires that the region does not
	// offer mobile number portability, so the name is still accurate.
	MobileNoPortabilityOnly
)

var carrierNameModeNames = [...]string{
	Always:                  "ALWAYS",
	MobileOnly:              "MOBILE_ONLY",
	MobileNoPortabilityOnly: "MOBILE_NO_PORTABILITY_ONLY",
}

func (m CarrierNameMode) String() string {
	if m < 0 || int(m) >= len(carrierNameModeNames) {
		return fmt.Sprintf("CarrierNameMode(%d)", int(m))
	}
	return carrierNameModeNames[m]
}

// MarshalText encodes the mode by name.
func (m CarrierNameMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name, case-insensitively.
func (m *CarrierNameMode) UnmarshalText(text []byte) error {
	parsed, err := ParseCarrierNameMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseCarrierNameMode looks a mode up by name. The empty string is Always.
func ParseCarrierNameMode(name string) (CarrierNameMode, error) {
	if name == "" {
		return Always, nil
	}
	for i, n := range carrierNameModeNames {
		if strings.EqualFold(n, name) {
			return CarrierNameMode(i), nil
		}
	}
	return Always, fmt.Errorf("lookup: unknown carrier name mode %q", name)
}
