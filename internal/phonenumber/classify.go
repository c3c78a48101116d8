package phonenumber

import (
	"phonekit/internal/metadata"
)

// RegionCode returns the region a number belongs to, or "" when its calling
// code is unknown, no region of a shared calling code claims it, or it
// belongs to a global network.
func (e *Engine) RegionCode(p ParsedNumber) string {
	region := e.regionForNumber(p)
	if region == metadata.NonGeoRegion {
		return ""
	}
	return region
}

// regionForNumber is RegionCode without the global network mapping.
func (e *Engine) regionForNumber(p ParsedNumber) string {
	regions := e.store.RegionsForCallingCode(p.countryCode)
	switch len(regions) {
	case 0:
		return ""
	case 1:
		return regions[0]
	}

	nsn := p.NationalSignificantNumber()
	for _, region := range regions {
		md := e.store.Region(region)
		if md == nil {
			continue
		}
		if md.HasLeadingDigits() {
			if md.MatchesLeadingDigits(nsn) {
				return region
			}
			continue
		}
		if classifyNSN(nsn, md) != Unknown {
			return region
		}
	}
	return ""
}

// NumberType classifies p within the region it belongs to.
func (e *Engine) NumberType(p ParsedNumber) NumberType {
	md := e.store.ForRegionOrCallingCode(p.countryCode, e.regionForNumber(p))
	if md == nil {
		return Unknown
	}
	return classifyNSN(p.NationalSignificantNumber(), md)
}

// classifyNSN matches nsn against the type descriptions of md in priority
// order.
func classifyNSN(nsn string, md *metadata.RegionMetadata) NumberType {
	if !md.General.Matches(nsn) {
		return Unknown
	}

	ordered := []struct {
		desc *metadata.NumberDesc
		typ  NumberType
	}{
		{md.PremiumRate, PremiumRate},
		{md.TollFree, TollFree},
		{md.SharedCost, SharedCost},
		{md.VoIP, VoIP},
		{md.PersonalNumber, PersonalNumber},
		{md.Pager, Pager},
		{md.UAN, UAN},
		{md.Voicemail, Voicemail},
	}
	for _, o := range ordered {
		if o.desc.Matches(nsn) {
			return o.typ
		}
	}

	if md.FixedLine.Matches(nsn) {
		if md.SameMobileAndFixedLinePattern || md.Mobile.Matches(nsn) {
			return FixedLineOrMobile
		}
		return FixedLine
	}
	if !md.SameMobileAndFixedLinePattern && md.Mobile.Matches(nsn) {
		return Mobile
	}

	switch {
	case md.StandardRate.Matches(nsn):
		return StandardRate
	case md.ShortCode.Matches(nsn):
		return ShortCode
	case md.Emergency.Matches(nsn):
		return Emergency
	}
	return Unknown
}

// IsValid reports whether p matches a number type of the region it belongs
// to. A valid number is always possible.
func (e *Engine) IsValid(p ParsedNumber) bool {
	return e.IsValidForRegion(p, e.regionForNumber(p))
}

// IsValidForRegion reports whether p is a valid number of region. Global
// network numbers are checked with metadata.NonGeoRegion.
func (e *Engine) IsValidForRegion(p ParsedNumber, region string) bool {
	md := e.store.ForRegionOrCallingCode(p.countryCode, region)
	if md == nil {
		return false
	}
	if region != metadata.NonGeoRegion && md.CountryCallingCode != p.countryCode {
		return false
	}
	if classifyNSN(p.NationalSignificantNumber(), md) == Unknown {
		return false
	}
	return e.IsPossible(p)
}

// IsPossible is the length-only check: p's national significant number has
// one of the possible lengths of its calling code's main region.
func (e *Engine) IsPossible(p ParsedNumber) bool {
	switch e.PossibleWithReason(p) {
	case IsPossible, IsPossibleLocalOnly:
		return true
	}
	return false
}

// PossibleWithReason is IsPossible with the detailed outcome.
func (e *Engine) PossibleWithReason(p ParsedNumber) Possibility {
	md := e.mainMetadata(p.countryCode)
	if md == nil {
		return InvalidCallingCode
	}
	return e.testNumberLength(p.NationalSignificantNumber(), md)
}
