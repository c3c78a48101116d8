package phonenumber

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	plusChars  = `+\x{FF0B}`
	starSign   = `*`
	validAlpha = `A-Za-z`

	// Characters people use to separate digit groups, in a regexp class.
	validPunctuation = `\-x\x{2010}-\x{2015}\x{2212}\x{30FC}\x{FF0D}-\x{FF0F} \x{00A0}\x{00AD}\x{200B}\x{2060}\x{3000}()\x{FF08}\x{FF09}\x{FF3B}\x{FF3D}.\[\]/~\x{2053}\x{223C}\x{FF5E}`

	rfc3966Prefix       = "tel:"
	rfc3966PhoneContext = ";phone-context="
	rfc3966ISDNSubaddr  = ";isub="
	rfc3966ExtnPrefix   = ";ext="
	defaultExtnPrefix   = " ext. "
)

var (
	extnPatternsForParsing = buildExtnPattern()

	extnPattern         = regexp.MustCompile(`(?i)(?:` + extnPatternsForParsing + `)$`)
	validStartChar      = regexp.MustCompile(`[` + plusChars + `\p{Nd}]`)
	unwantedEndChars    = regexp.MustCompile(`[^\p{N}\p{L}#]+$`)
	secondNumberStart   = regexp.MustCompile(`[\\/] *x`)
	leadingPlusChars    = regexp.MustCompile(`^[` + plusChars + `]+`)
	validAlphaPhone     = regexp.MustCompile(`(?:.*?[A-Za-z]){3}`)
	separatorPattern    = regexp.MustCompile(`[` + validPunctuation + `]+`)
	leadingSeparators   = regexp.MustCompile(`^[` + validPunctuation + `]+`)
	rfc3966GlobalDigits = regexp.MustCompile(`^\+(?:\p{Nd}|[\-.()]?)*\p{Nd}(?:\p{Nd}|[\-.()]?)*$`)
	rfc3966DomainName   = regexp.MustCompile(`^(?:[A-Za-z\p{Nd}]+(?:-*[A-Za-z\p{Nd}])*\.)*[A-Za-z]+(?:-*[A-Za-z\p{Nd}])*\.?$`)
	singleIntlPrefix    = regexp.MustCompile(`^\d+(?:[~\x{2053}\x{223C}\x{FF5E}]\d+)?$`)
	nonDigits           = regexp.MustCompile(`\D+`)
)

func extnDigits(maxLen int) string {
	return `(\p{Nd}{1,` + strconv.Itoa(maxLen) + `})`
}

// buildExtnPattern assembles the extension grammar. Each alternative has one
// capture group holding the extension digits.
func buildExtnPattern() string {
	const (
		explicitLabels   = `(?:e?xt(?:ensi(?:o\x{0301}?|\x{00F3}))?n?|\x{FF45}?\x{FF58}\x{FF54}\x{FF4E}?|\x{0434}\x{043E}\x{0431}|anexo)`
		ambiguousLabels  = `(?:[x\x{FF58}#\x{FF03}~\x{FF5E}]|int|\x{FF49}\x{FF4E}\x{FF54})`
		ambiguousSep     = `[- ]+`
		sepBeforeLabel   = `[ \x{00A0}\t,]*`
		charsAfterLabel  = `[:\.\x{FF0E}]?[ \x{00A0}\t,-]*`
		optionalSuffix   = `#?`
		sepNoComma       = `[ \x{00A0}\t]*`
		autoDiallingMark = `(?:,{2}|;)`
	)

	rfc := rfc3966ExtnPrefix + extnDigits(20)
	explicit := sepBeforeLabel + explicitLabels + charsAfterLabel + extnDigits(20) + optionalSuffix
	ambiguous := sepBeforeLabel + ambiguousLabels + charsAfterLabel + extnDigits(9) + optionalSuffix
	american := ambiguousSep + extnDigits(6) + `#`
	autoDialling := sepNoComma + autoDiallingMark + charsAfterLabel + extnDigits(15) + optionalSuffix
	onlyCommas := sepNoComma + `(?:,)+` + charsAfterLabel + extnDigits(9) + optionalSuffix

	return strings.Join([]string{rfc, explicit, ambiguous, american, autoDialling, onlyCommas}, "|")
}

// extractPossibleNumber drops everything before the first plus sign or digit,
// trailing junk, and anything after a second-number marker such as "/ x".
func extractPossibleNumber(number string) string {
	loc := validStartChar.FindStringIndex(number)
	if loc == nil {
		return ""
	}
	number = number[loc[0]:]
	number = unwantedEndChars.ReplaceAllString(number, "")
	if loc := secondNumberStart.FindStringIndex(number); loc != nil {
		number = number[:loc[0]]
	}
	return number
}

// isViablePhoneNumber is a coarse shape check run before any digit is read.
func (e *Engine) isViablePhoneNumber(number string) bool {
	if len(number) < e.opts.MinNSNLength {
		return false
	}
	return e.validPhoneNumber.MatchString(number)
}

// stripExtension splits a trailing extension off number. The extension is
// only taken when what remains still looks like a phone number.
func (e *Engine) stripExtension(number string) (string, string) {
	m := extnPattern.FindStringSubmatchIndex(number)
	if m == nil || !e.isViablePhoneNumber(number[:m[0]]) {
		return number, ""
	}
	for g := 1; 2*g+1 < len(m); g++ {
		if m[2*g] >= 0 {
			return number[:m[0]], number[m[2*g]:m[2*g+1]]
		}
	}
	return number, ""
}

// isVanityNumber reports whether number spells letters in place of digits.
func isVanityNumber(number string) bool {
	return validAlphaPhone.MatchString(number)
}

// normalizeDigits keeps the decimal digits of number, folded to ASCII.
func normalizeDigits(number string) string {
	var b strings.Builder
	b.Grow(len(number))
	for _, r := range number {
		if d, ok := digitValue(r); ok {
			b.WriteByte(byte('0' + d))
		}
	}
	return b.String()
}

// digitValue returns the value of a decimal digit in any script. Unicode
// allocates decimal digits in runs that start at zero.
func digitValue(r rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}
	if !unicode.IsDigit(r) {
		return 0, false
	}
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return int(r-start) % 10, true
}

// normalizeDiallable keeps the characters a handset can dial.
func normalizeDiallable(number string) string {
	var b strings.Builder
	for _, r := range number {
		if d, ok := digitValue(r); ok {
			b.WriteByte(byte('0' + d))
			continue
		}
		switch r {
		case '+', '＋':
			b.WriteByte('+')
		case '*', '#':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// buildNationalNumberForParsing isolates the part of text that holds the
// number, honouring RFC 3966 phone-context and isdn-subaddress parameters.
func buildNationalNumberForParsing(text string) (string, error) {
	var number string

	contextIdx := strings.Index(text, rfc3966PhoneContext)
	if contextIdx >= 0 {
		context := extractPhoneContext(text, contextIdx)
		if !isPhoneContextValid(context) {
			return "", newParseError(NotANumber, "the phone-context value is invalid")
		}
		if strings.HasPrefix(context, "+") {
			number = context
		}
		start := 0
		if i := strings.Index(text, rfc3966Prefix); i >= 0 {
			start = i + len(rfc3966Prefix)
		}
		if start <= contextIdx {
			number += text[start:contextIdx]
		}
	} else {
		number = extractPossibleNumber(text)
	}

	if i := strings.Index(number, rfc3966ISDNSubaddr); i > 0 {
		number = number[:i]
	}
	return number, nil
}

func extractPhoneContext(text string, idx int) string {
	start := idx + len(rfc3966PhoneContext)
	if start >= len(text) {
		return ""
	}
	rest := text[start:]
	if end := strings.IndexByte(rest, ';'); end >= 0 {
		return rest[:end]
	}
	return rest
}

func isPhoneContextValid(context string) bool {
	if context == "" {
		return false
	}
	return rfc3966GlobalDigits.MatchString(context) || rfc3966DomainName.MatchString(context)
}
