package lookup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"phonekit/internal/metadata"
	"phonekit/internal/metadata/upstream"
	"phonekit/internal/phonenumber"
	"phonekit/platform/phone"
)

type fakeTables struct {
	areas    map[string]string
	byLang   map[string]map[string]string
	carriers map[string]string
	zones    map[string][]string
	err      error
	langs    []string
}

func (f *fakeTables) AreaDescription(e164, lang string) (string, error) {
	f.langs = append(f.langs, lang)
	if area, ok := f.byLang[lang][e164]; ok {
		return area, f.err
	}
	return f.areas[e164], f.err
}

func (f *fakeTables) CarrierName(e164, lang string) (string, error) {
	f.langs = append(f.langs, lang)
	return f.carriers[e164], f.err
}

func (f *fakeTables) TimeZones(e164 string) ([]string, error) {
	return f.zones[e164], f.err
}

func newTestService(t *testing.T, tables Tables) (*Service, *phonenumber.Engine) {
	t.Helper()
	store, err := metadata.LoadYAMLFile("../metadata/testdata/regions.yaml")
	require.NoError(t, err)
	engine := phonenumber.New(store, phonenumber.Options{})
	return New(engine, tables), engine
}

func parse(t *testing.T, engine *phonenumber.Engine, text string) phonenumber.ParsedNumber {
	t.Helper()
	p, err := engine.Parse(text, "")
	require.NoError(t, err)
	return p
}

func TestDescription(t *testing.T) {
	tables := &fakeTables{areas: map[string]string{"+6433316005": "Christchurch"}}
	svc, engine := newTestService(t, tables)

	tests := []struct {
		name       string
		number     string
		locale     string
		userRegion string
		want       string
	}{
		{"locality without user region", "+6433316005", "en", "", "Christchurch"},
		{"locality for local user", "+6433316005", "en", "nz", "Christchurch"},
		{"country for foreign user", "+6433316005", "en", "US", "New Zealand"},
		{"country in locale language", "+6433316005", "de", "US", "Neuseeland"},
		{"country when locality unknown", "+6434000000", "en", "", "New Zealand"},
		{"mobile is not geographical", "+64211234567", "en", "", "New Zealand"},
		{"shared calling code", "+12423456789", "en", "", "Bahamas"},
		{"non-geographical entity", "+80012345678", "en", "", ""},
		{"invalid number", "+4415123456", "en", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Description(parse(t, engine, tt.number), tt.locale, tt.userRegion)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescriptionPassesBaseLanguage(t *testing.T) {
	tables := &fakeTables{}
	svc, engine := newTestService(t, tables)

	_, err := svc.Description(parse(t, engine, "+6433316005"), "pt_BR", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"pt"}, tables.langs)

	_, err = svc.Description(parse(t, engine, "+6433316005"), "not a locale!", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"pt", "en"}, tables.langs)
}

func TestDescriptionUnknownLocale(t *testing.T) {
	store, err := upstream.Default()
	require.NoError(t, err)
	engine := phonenumber.New(store, phonenumber.Options{})
	svc := New(engine, &fakeTables{byLang: map[string]map[string]string{
		"en": {"+33328201234": "Dunkirk", "+41229097000": "Geneva"},
		"fr": {"+33328201234": "Dunkerque", "+41229097000": "Genève"},
	}})

	tests := []struct {
		number     string
		locale     string
		userRegion string
		want       string
	}{
		{"+33328201234", "FR", "", "Dunkerque"},
		{"+33328201234", "FR", "US", "France"},
		{"+33328201234", "GB", "", "Dunkirk"},
		{"+33328201234", "XX", "", "Dunkirk"},
		{"+41229097000", "FR", "US", "Suisse"},
		{"+41229097000", "XX", "", "Geneva"},
		{"+37328000000", "XX", "", ""},
		{"+16509036313", "EN", "XX", "United States"},
	}
	for _, tt := range tests {
		t.Run(tt.number+"/"+tt.locale+"/"+tt.userRegion, func(t *testing.T) {
			got, err := svc.Description(parse(t, engine, tt.number), tt.locale, tt.userRegion)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCarrierName(t *testing.T) {
	tables := &fakeTables{carriers: map[string]string{
		"+447912345678": "Vodafone",
		"+442070313000": "BT",
		"+64211234567":  "Spark",
	}}
	svc, engine := newTestService(t, tables)

	tests := []struct {
		number string
		mode   CarrierNameMode
		want   string
	}{
		{"+442070313000", Always, "BT"},
		{"+442070313000", MobileOnly, ""},
		{"+447912345678", MobileOnly, "Vodafone"},
		{"+447912345678", MobileNoPortabilityOnly, ""},
		{"+64211234567", MobileNoPortabilityOnly, "Spark"},
	}
	for _, tt := range tests {
		t.Run(tt.number+"/"+tt.mode.String(), func(t *testing.T) {
			got, err := svc.CarrierName(parse(t, engine, tt.number), "en", tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeZones(t *testing.T) {
	tables := &fakeTables{zones: map[string][]string{
		"+6433316005":  {"Pacific/Auckland"},
		"+80012345678": {phone.UnknownTimeZone},
	}}
	svc, engine := newTestService(t, tables)

	zones, err := svc.TimeZones(parse(t, engine, "+6433316005"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Pacific/Auckland"}, zones)

	zones, err = svc.TimeZones(parse(t, engine, "+80012345678"))
	require.NoError(t, err)
	assert.NotNil(t, zones)
	assert.Empty(t, zones)

	zones, err = svc.TimeZones(parse(t, engine, "+442070313000"))
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestTableErrorsAreWrapped(t *testing.T) {
	boom := errors.New("boom")
	svc, engine := newTestService(t, &fakeTables{err: boom})
	p := parse(t, engine, "+6433316005")

	_, err := svc.Description(p, "en", "")
	assert.ErrorIs(t, err, boom)
	_, err = svc.CarrierName(p, "en", Always)
	assert.ErrorIs(t, err, boom)
	_, err = svc.TimeZones(p)
	assert.ErrorIs(t, err, boom)
}

func TestRegionName(t *testing.T) {
	assert.Equal(t, "Germany", RegionName("DE", language.English))
	assert.Equal(t, "Deutschland", RegionName("DE", language.German))
	assert.Equal(t, "", RegionName("001", language.English))
	assert.Equal(t, "", RegionName("", language.English))
}

func TestParseLocale(t *testing.T) {
	tag, ok := ParseLocale("pt_BR")
	assert.True(t, ok)
	assert.Equal(t, "pt", baseLanguage(tag))

	tag, ok = ParseLocale("XX")
	assert.False(t, ok)
	assert.Equal(t, language.English, tag)

	tag, ok = ParseLocale("")
	assert.True(t, ok)
	assert.Equal(t, language.English, tag)
}

func TestCarrierNameMode(t *testing.T) {
	mode, err := ParseCarrierNameMode("mobile_only")
	require.NoError(t, err)
	assert.Equal(t, MobileOnly, mode)

	mode, err = ParseCarrierNameMode("")
	require.NoError(t, err)
	assert.Equal(t, Always, mode)

	_, err = ParseCarrierNameMode("sometimes")
	assert.Error(t, err)
	assert.Equal(t, "MOBILE_NO_PORTABILITY_ONLY", MobileNoPortabilityOnly.String())
}
