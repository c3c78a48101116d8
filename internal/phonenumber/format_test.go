package phonenumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		number string
		format Format
		want   string
	}{
		{"+16502530000", E164, "+16502530000"},
		{"+16502530000", National, "(650) 253-0000"},
		{"+16502530000", International, "+1 650-253-0000"},
		{"+16502530000", RFC3966, "tel:+1-650-253-0000"},
		{"+19002345678", RFC3966, "tel:+1-900-234-5678"},
		{"+442070313000", National, "020 7031 3000"},
		{"+442070313000", International, "+44 20 7031 3000"},
		{"+447912345678", National, "07912 345678"},
		{"+447912345678", International, "+44 7912 345678"},
		{"+4930123456", National, "030 123456"},
		{"+49291123", National, "0291 123"},
		{"+4941341234", National, "04134 1234"},
		{"+4941341234", International, "+49 4134 1234"},
		{"+390236618300", National, "02 3661 8300"},
		{"+390236618300", International, "+39 02 3661 8300"},
		{"+390236618300", E164, "+390236618300"},
		{"+39345678901", National, "345 678 901"},
		{"+6433316005", National, "03-331 6005"},
		{"+6433316005", International, "+64 3 331 6005"},
		{"+6433316005", RFC3966, "tel:+64-3-331-6005"},
		{"+5491187654321", National, "011 15-8765-4321"},
		{"+5491187654321", International, "+54 9 11 8765-4321"},
		{"+541187654321", National, "011 8765-4321"},
		{"+541187654321", International, "+54 11 8765-4321"},
		{"+5511961234567", National, "(11) 96123-4567"},
		{"+80012345678", International, "+800 1234 5678"},
		{"+80012345678", National, "1234 5678"},
		{"+33123456789", National, "01 23 45 67 89"},
		{"+33123456789", International, "+33 1 23 45 67 89"},
	}

	for _, tt := range tests {
		t.Run(tt.number+"/"+tt.format.String(), func(t *testing.T) {
			p := mustParse(t, e, tt.number, "")
			assert.Equal(t, tt.want, e.Format(p, tt.format))
		})
	}
}

func TestFormatWithoutMatchingRuleFallsBackToDigits(t *testing.T) {
	e := testEngine(t)
	p := mustParse(t, e, "+12530000", "")

	assert.Equal(t, "+1 2530000", e.Format(p, International))
	assert.Equal(t, "253-0000", e.Format(p, National))
	assert.Equal(t, "tel:+1-2530000", e.Format(p, RFC3966))
}

func TestFormatExtensions(t *testing.T) {
	e := testEngine(t)

	us := mustParse(t, e, "+1 650 253 0000 ext. 4567", "")
	assert.Equal(t, "+16502530000", e.Format(us, E164))
	assert.Equal(t, "(650) 253-0000 ext. 4567", e.Format(us, National))
	assert.Equal(t, "+1 650-253-0000 ext. 4567", e.Format(us, International))
	assert.Equal(t, "tel:+1-650-253-0000;ext=4567", e.Format(us, RFC3966))

	gb := mustParse(t, e, "020 7031 3000 ext 123", "GB")
	assert.Equal(t, "020 7031 3000 x123", e.Format(gb, National))
	assert.Equal(t, "+44 20 7031 3000 x123", e.Format(gb, International))
}

func TestFormatWithCarrierCode(t *testing.T) {
	e := testEngine(t)
	p := mustParse(t, e, "+442070313000", "")

	// GB defines no carrier code rule.
	assert.Equal(t, "020 7031 3000", e.FormatWithCarrierCode(p, "15"))
}

func TestReplaceFirstGroup(t *testing.T) {
	assert.Equal(t, "0${1} ${2}", replaceFirstGroup("${1} ${2}", "0${1}"))
	assert.Equal(t, "0${2} 15-${3}", replaceFirstGroup("${2} 15-${3}", "0${1}"))
	assert.Equal(t, "(${1}) ${2}", replaceFirstGroup("${1} ${2}", "(${1})"))
	assert.Equal(t, "plain", replaceFirstGroup("plain", "0${1}"))
}
