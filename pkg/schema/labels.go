package schema

import (
	"regexp"
	"strings"
	"unicode"
)

var wordSeparators = regexp.MustCompile(`[_\-.\s]+`)

// acronyms keep their upper case in derived labels.
var acronyms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"uri":  "URI",
	"otp":  "OTP",
	"ip":   "IP",
	"api":  "API",
	"sku":  "SKU",
	"vat":  "VAT",
	"iban": "IBAN",
}

// DefaultLabeler turns a field name such as "billing_zipCode" or
// "user.id" into a label ("Billing Zip Code", "User ID").
func DefaultLabeler(name string) string {
	var words []string
	for _, chunk := range wordSeparators.Split(strings.TrimSpace(name), -1) {
		for _, word := range splitCamel(chunk) {
			if word == "" {
				continue
			}
			words = append(words, labelWord(word))
		}
	}
	return strings.Join(words, " ")
}

func labelWord(word string) string {
	lower := strings.ToLower(word)
	if acronym, ok := acronyms[lower]; ok {
		return acronym
	}
	runes := []rune(lower)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// splitCamel breaks on lower-to-upper and letter-digit transitions. Runs of
// capitals stay together ("HTTPCode" gives "HTTP", "Code").
func splitCamel(input string) []string {
	runes := []rune(input)
	if len(runes) == 0 {
		return nil
	}
	var (
		words []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}
		boundary := (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur)) ||
			(unicode.IsUpper(prev) && unicode.IsUpper(cur) && next != 0 && unicode.IsLower(next))
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}
