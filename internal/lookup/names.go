package lookup

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"phonekit/internal/metadata"
)

// ParseLocale parses a BCP 47 or POSIX style locale ("en", "de-CH", "pt_BR").
// Empty and unrecognised locales read as English; ok is false for the latter.
func ParseLocale(locale string) (tag language.Tag, ok bool) {
	if locale == "" {
		return language.English, true
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.English, false
	}
	return tag, true
}

// RegionName returns the CLDR display name of a region in the language of
// tag, or "" for unknown regions and the non-geographical entity.
func RegionName(region string, tag language.Tag) string {
	if region == "" || region == metadata.NonGeoRegion {
		return ""
	}
	r, err := language.ParseRegion(region)
	if err != nil {
		return ""
	}
	return display.Regions(tag).Name(r)
}

func baseLanguage(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
