// Package lookup answers the questions that sit on top of a parsed number but
// need prefix tables of their own: where the number is, which carrier it was
// allocated to and which time zones it may ring in.
package lookup

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"phonekit/internal/phonenumber"
	"phonekit/platform/phone"
)

// Tables is the raw prefix data, keyed by E.164 number.
type Tables interface {
	AreaDescription(e164, lang string) (string, error)
	CarrierName(e164, lang string) (string, error)
	TimeZones(e164 string) ([]string, error)
}

// Service combines the engine's classification with the prefix tables.
type Service struct {
	engine *phonenumber.Engine
	tables Tables
}

// New returns a Service. A nil tables uses the tables bundled with nyaruka/phonenumbers.
func New(engine *phonenumber.Engine, tables Tables) *Service {
	if tables == nil {
		tables = phone.Tables{}
	}
	return &Service{engine: engine, tables: tables}
}

// Description returns a text description of where p is, in the language of
// locale. When the number belongs to userRegion only the locality is given;
// for callers elsewhere the country name is enough. An empty userRegion
// prefers the locality. An unrecognised locale reads localities in English
// but has no country names. The result is "" when nothing is known.
func (s *Service) Description(p phonenumber.ParsedNumber, locale, userRegion string) (string, error) {
	tag, known := ParseLocale(locale)

	t := s.engine.NumberType(p)
	if t == phonenumber.Unknown {
		return "", nil
	}
	if !phonenumber.IsGeographical(t, p.CountryCallingCode()) {
		return s.countryName(p, tag, known), nil
	}

	region := s.engine.RegionCode(p)
	if userRegion != "" && !strings.EqualFold(userRegion, region) {
		if !known {
			return "", nil
		}
		return RegionName(region, tag), nil
	}

	area, err := s.tables.AreaDescription(p.String(), baseLanguage(tag))
	if err != nil {
		return "", fmt.Errorf("lookup: area description: %w", err)
	}
	if area != "" {
		return area, nil
	}
	return s.countryName(p, tag, known), nil
}

// CarrierName returns the carrier p was originally allocated to, subject to mode.
func (s *Service) CarrierName(p phonenumber.ParsedNumber, languageCode string, mode CarrierNameMode) (string, error) {
	tag, _ := ParseLocale(languageCode)

	switch mode {
	case MobileOnly:
		if !s.isMobile(p) {
			return "", nil
		}
	case MobileNoPortabilityOnly:
		if !s.isMobile(p) || s.isPortable(p) {
			return "", nil
		}
	}

	name, err := s.tables.CarrierName(p.String(), baseLanguage(tag))
	if err != nil {
		return "", fmt.Errorf("lookup: carrier: %w", err)
	}
	return name, nil
}

// TimeZones returns the IANA zones p may be located in. It is empty, never
// nil, when the tables cannot place the number.
func (s *Service) TimeZones(p phonenumber.ParsedNumber) ([]string, error) {
	zones, err := s.tables.TimeZones(p.String())
	if err != nil {
		return nil, fmt.Errorf("lookup: time zones: %w", err)
	}
	if len(zones) == 0 || (len(zones) == 1 && zones[0] == phone.UnknownTimeZone) {
		return []string{}, nil
	}
	return zones, nil
}

func (s *Service) isMobile(p phonenumber.ParsedNumber) bool {
	switch s.engine.NumberType(p) {
	case phonenumber.Mobile, phonenumber.FixedLineOrMobile, phonenumber.Pager:
		return true
	}
	return false
}

func (s *Service) isPortable(p phonenumber.ParsedNumber) bool {
	md := s.engine.Store().Region(s.engine.RegionCode(p))
	return md != nil && md.MobileNumberPortable
}

// countryName names the country of p. Numbers whose calling code is shared
// are named after the one region they are valid in, if any.
func (s *Service) countryName(p phonenumber.ParsedNumber, tag language.Tag, known bool) string {
	if !known {
		return ""
	}
	regions := s.engine.Store().RegionsForCallingCode(p.CountryCallingCode())
	if len(regions) == 1 {
		return RegionName(regions[0], tag)
	}

	var match string
	for _, region := range regions {
		if !s.engine.IsValidForRegion(p, region) {
			continue
		}
		if match != "" {
			return ""
		}
		match = region
	}
	return RegionName(match, tag)
}
