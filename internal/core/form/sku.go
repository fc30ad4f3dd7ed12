package form

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const (
	skuDelimiter     = "-"
	categoryCodeLen  = 3
	nameCodeLen      = 4
	timeSuffixDigits = 10000
)

// kindCodes maps a product kind to its SKU prefix.
var kindCodes = map[string]string{
	"ready-made": "RM",
	"custom":     "CU",
	"fabric":     "FB",
}

const defaultKindCode = "PR"

// GenerateSKU builds a SKU from the product kind, category and name plus a
// time-derived suffix. The name/category portion is deterministic; the
// suffix takes the low-order digits of the current time, so two calls within
// the same millisecond window with identical inputs can collide. Callers
// that need a free identifier use UniqueSKU.
func GenerateSKU(name, category, kind string) string {
	prefix, ok := kindCodes[strings.ToLower(strings.TrimSpace(kind))]
	if !ok {
		prefix = defaultKindCode
	}
	suffix := fmt.Sprintf("%04d", time.Now().UnixMilli()%timeSuffixDigits)
	return strings.Join([]string{prefix, categoryCode(category), nameCode(name), suffix}, skuDelimiter)
}

// UniqueSKU generates a SKU and, while taken reports it in use, retries with
// an incrementing salt appended to the time suffix.
func UniqueSKU(name, category, kind string, taken func(string) bool) string {
	sku := GenerateSKU(name, category, kind)
	base := sku
	for salt := 1; taken(sku); salt++ {
		sku = fmt.Sprintf("%s%s%d", base, skuDelimiter, salt)
	}
	return sku
}

// categoryCode takes the category's leading letters, uppercased, padded with
// X to a fixed width.
func categoryCode(category string) string {
	var b strings.Builder
	n := 0
	for _, r := range category {
		if n == categoryCodeLen {
			break
		}
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			n++
		}
	}
	for ; n < categoryCodeLen; n++ {
		b.WriteByte('X')
	}
	return b.String()
}

// nameCode keeps only alphanumerics from the name, uppercased, truncated to
// a fixed width.
func nameCode(name string) string {
	var b strings.Builder
	n := 0
	for _, r := range name {
		if n == nameCodeLen {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
			n++
		}
	}
	return b.String()
}
