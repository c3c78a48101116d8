package phonenumber

import (
	"strconv"

	"phonekit/internal/metadata"
)

// ExampleNumber returns an example number of type t for region. It fails with
// ErrNoExampleNumber when the region is unknown or has no example of t.
func (e *Engine) ExampleNumber(region string, t NumberType) (ParsedNumber, error) {
	md := e.store.Region(region)
	if md == nil {
		return ParsedNumber{}, ErrNoExampleNumber
	}
	desc := descForType(md, t)
	if desc == nil || desc.ExampleNumber == "" {
		return ParsedNumber{}, ErrNoExampleNumber
	}
	p, err := e.Parse(desc.ExampleNumber, md.RegionCode)
	if err != nil {
		return ParsedNumber{}, ErrNoExampleNumber
	}
	return p, nil
}

// ExampleNumberForNonGeoEntity returns an example number of a global network
// calling code such as 800 or 979.
func (e *Engine) ExampleNumberForNonGeoEntity(callingCode int) (ParsedNumber, error) {
	md := e.store.NonGeographical(callingCode)
	if md == nil {
		return ParsedNumber{}, ErrNoExampleNumber
	}
	for _, desc := range []*metadata.NumberDesc{
		md.Mobile, md.TollFree, md.SharedCost, md.VoIP, md.Voicemail, md.UAN, md.PremiumRate,
	} {
		if desc == nil || desc.ExampleNumber == "" {
			continue
		}
		p, err := e.Parse("+"+strconv.Itoa(callingCode)+desc.ExampleNumber, "")
		if err != nil {
			return ParsedNumber{}, ErrNoExampleNumber
		}
		return p, nil
	}
	return ParsedNumber{}, ErrNoExampleNumber
}

func descForType(md *metadata.RegionMetadata, t NumberType) *metadata.NumberDesc {
	switch t {
	case FixedLine, FixedLineOrMobile:
		return md.FixedLine
	case Mobile:
		return md.Mobile
	case TollFree:
		return md.TollFree
	case PremiumRate:
		return md.PremiumRate
	case SharedCost:
		return md.SharedCost
	case VoIP:
		return md.VoIP
	case PersonalNumber:
		return md.PersonalNumber
	case Pager:
		return md.Pager
	case UAN:
		return md.UAN
	case Emergency:
		return md.Emergency
	case Voicemail:
		return md.Voicemail
	case ShortCode:
		return md.ShortCode
	case StandardRate:
		return md.StandardRate
	}
	return md.General
}
