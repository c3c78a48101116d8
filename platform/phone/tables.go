// Package phone gives access to the prefix tables bundled with nyaruka/phonenumbers:
// geographic descriptions, original carriers and time zones.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// UnknownTimeZone is returned by the time zone table for numbers it cannot place.
const UnknownTimeZone = "Etc/Unknown"

// Tables looks E.164 numbers up in the upstream prefix tables.
// The zero value is ready to use.
type Tables struct{}

// AreaDescription returns the locality of e164 in lang, or "".
// Upstream answers with the country name when it knows no locality.
func (Tables) AreaDescription(e164, lang string) (string, error) {
	num, err := toUpstream(e164)
	if err != nil {
		return "", err
	}
	area, err := phonenumbers.GetGeocodingForNumber(num, lang)
	if err != nil || area == "" {
		return area, err
	}
	if area == countryName(num, lang) {
		return "", nil
	}
	return area, nil
}

func countryName(num *phonenumbers.PhoneNumber, lang string) string {
	region, err := language.ParseRegion(phonenumbers.GetRegionCodeForNumber(num))
	if err != nil {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return display.Regions(tag).Name(region)
}

// CarrierName returns the carrier e164 was originally allocated to, or "".
func (Tables) CarrierName(e164, lang string) (string, error) {
	num, err := toUpstream(e164)
	if err != nil {
		return "", err
	}
	return phonenumbers.GetCarrierForNumber(num, lang)
}

// TimeZones returns the IANA zones e164 may be located in.
func (Tables) TimeZones(e164 string) ([]string, error) {
	num, err := toUpstream(e164)
	if err != nil {
		return nil, err
	}
	return phonenumbers.GetTimezonesForNumber(num)
}

func toUpstream(e164 string) (*phonenumbers.PhoneNumber, error) {
	num, err := phonenumbers.Parse(e164, "")
	if err != nil {
		return nil, fmt.Errorf("phone: %q: %w", e164, err)
	}
	return num, nil
}
