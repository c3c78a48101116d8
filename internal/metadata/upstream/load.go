// Package upstream builds a metadata.Store from the numbering plan tables
// compiled into github.com/nyaruka/phonenumbers.
package upstream

import (
	"fmt"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/nyaruka/phonenumbers"

	"phonekit/internal/metadata"
)

const modulePath = "github.com/nyaruka/phonenumbers"

// Default returns the process-wide upstream store, converting the tables on
// first use.
var Default = sync.OnceValues(Load)

// Load converts every region and global network of the upstream tables.
func Load() (*metadata.Store, error) {
	coll, err := phonenumbers.MetadataCollection()
	if err != nil {
		return nil, fmt.Errorf("upstream: read metadata collection: %w", err)
	}

	var regions, networks []*metadata.RegionMetadata
	for _, md := range coll.GetMetadata() {
		rec := convert(md)
		if md.GetId() == metadata.NonGeoRegion {
			rec.RegionCode = metadata.NonGeoRegion
			networks = append(networks, rec)
			continue
		}
		rec.RegionCode = md.GetId()
		rec.MainCountryForCode = phonenumbers.GetRegionCodeForCountryCode(rec.CountryCallingCode) == rec.RegionCode
		regions = append(regions, rec)
	}
	if len(regions) == 0 {
		return nil, fmt.Errorf("upstream: metadata collection has no regions")
	}

	slices.SortFunc(regions, func(a, b *metadata.RegionMetadata) int {
		return strings.Compare(a.RegionCode, b.RegionCode)
	})
	slices.SortFunc(networks, func(a, b *metadata.RegionMetadata) int {
		return a.CountryCallingCode - b.CountryCallingCode
	})

	store, err := metadata.NewStore(Version(), append(regions, networks...))
	if err != nil {
		return nil, fmt.Errorf("upstream: %w", err)
	}
	return store, nil
}

// Version reports the upstream module version linked into the binary, or
// "upstream" when build information is unavailable (tests, go run).
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if ok {
		for _, dep := range info.Deps {
			if dep.Path == modulePath && dep.Version != "" {
				return "phonenumbers@" + dep.Version
			}
		}
	}
	return "upstream"
}

func convert(md *phonenumbers.PhoneMetadata) *metadata.RegionMetadata {
	return &metadata.RegionMetadata{
		CountryCallingCode:            int(md.GetCountryCode()),
		LeadingDigits:                 md.GetLeadingDigits(),
		InternationalPrefix:           md.GetInternationalPrefix(),
		PreferredInternationalPrefix:  md.GetPreferredInternationalPrefix(),
		NationalPrefix:                md.GetNationalPrefix(),
		PreferredExtnPrefix:           md.GetPreferredExtnPrefix(),
		NationalPrefixForParsing:      md.GetNationalPrefixForParsing(),
		NationalPrefixTransformRule:   md.GetNationalPrefixTransformRule(),
		SameMobileAndFixedLinePattern: md.GetSameMobileAndFixedLinePattern(),
		MobileNumberPortable:          md.GetMobileNumberPortableRegion(),

		General:                 convertDesc(md.GetGeneralDesc()),
		FixedLine:               convertDesc(md.GetFixedLine()),
		Mobile:                  convertDesc(md.GetMobile()),
		TollFree:                convertDesc(md.GetTollFree()),
		PremiumRate:             convertDesc(md.GetPremiumRate()),
		SharedCost:              convertDesc(md.GetSharedCost()),
		PersonalNumber:          convertDesc(md.GetPersonalNumber()),
		VoIP:                    convertDesc(md.GetVoip()),
		Pager:                   convertDesc(md.GetPager()),
		UAN:                     convertDesc(md.GetUan()),
		Emergency:               convertDesc(md.GetEmergency()),
		Voicemail:               convertDesc(md.GetVoicemail()),
		ShortCode:               convertDesc(md.GetShortCode()),
		StandardRate:            convertDesc(md.GetStandardRate()),
		NoInternationalDialling: convertDesc(md.GetNoInternationalDialling()),

		NumberFormats:     convertFormats(md.GetNumberFormat()),
		IntlNumberFormats: convertFormats(md.GetIntlNumberFormat()),
	}
}

func convertDesc(d *phonenumbers.PhoneNumberDesc) *metadata.NumberDesc {
	if d == nil {
		return nil
	}
	return &metadata.NumberDesc{
		Pattern:          d.GetNationalNumberPattern(),
		PossibleLengths:  toInts(d.GetPossibleLength()),
		LocalOnlyLengths: toInts(d.GetPossibleLengthLocalOnly()),
		ExampleNumber:    d.GetExampleNumber(),
	}
}

func convertFormats(formats []*phonenumbers.NumberFormat) []*metadata.FormatRule {
	if len(formats) == 0 {
		return nil
	}
	out := make([]*metadata.FormatRule, 0, len(formats))
	for _, f := range formats {
		out = append(out, &metadata.FormatRule{
			Pattern:                              f.GetPattern(),
			Format:                               f.GetFormat(),
			LeadingDigitsPatterns:                slices.Clone(f.GetLeadingDigitsPattern()),
			NationalPrefixFormattingRule:         f.GetNationalPrefixFormattingRule(),
			NationalPrefixOptionalWhenFormatting: f.GetNationalPrefixOptionalWhenFormatting(),
			DomesticCarrierCodeFormattingRule:    f.GetDomesticCarrierCodeFormattingRule(),
		})
	}
	return out
}

func toInts(in []int32) []int {
	if len(in) == 0 {
		return nil
	}
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
