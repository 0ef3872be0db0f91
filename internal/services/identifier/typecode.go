package identifier

import (
	"fmt"
	"strings"
	"time"
)

const (
	codeLength        = 3
	fallbackCode      = "UNK"
	requisitionPrefix = "REQ"
)

// DeriveTypeCode builds the 3-letter partition code for a type name.
// Three or more words contribute one initial each; two words contribute
// 2+1 letters (1+2 when the first word is a single letter); one word
// contributes its first three letters. The result is uppercased and padded
// on the right by repeating the last character until it is three long.
func DeriveTypeCode(name string) string {
	words := strings.Fields(name)

	var code string
	switch {
	case len(words) >= 3:
		code = firstRunes(words[0], 1) + firstRunes(words[1], 1) + firstRunes(words[2], 1)
	case len(words) == 2:
		if len([]rune(words[0])) == 1 {
			code = firstRunes(words[0], 1) + firstRunes(words[1], 2)
		} else {
			code = firstRunes(words[0], 2) + firstRunes(words[1], 1)
		}
	case len(words) == 1:
		code = firstRunes(words[0], codeLength)
	default:
		return fallbackCode
	}

	code = strings.ToUpper(code)
	if code == "" {
		return fallbackCode
	}

	runes := []rune(code)
	for len(runes) < codeLength {
		runes = append(runes, padRune(runes))
	}
	return string(runes[:codeLength])
}

// FormatProductID renders the final product identifier from a type code and
// an allocated serial, e.g. ("SPC", 1) -> "SPC000001".
func FormatProductID(code string, serial int64) string {
	return fmt.Sprintf("%s%06d", code, serial)
}

// RequisitionKey builds the per-month partition key for requisition numbers,
// e.g. "REQ0825" for August 2025. The caller supplies the business time zone
// so sequences roll over on the business calendar, not the server's.
func RequisitionKey(t time.Time, loc *time.Location) string {
	return requisitionPrefix + t.In(loc).Format("0106")
}

// FormatRequisitionID renders the final requisition identifier,
// e.g. ("REQ0825", 1) -> "REQ0825000001".
func FormatRequisitionID(key string, serial int64) string {
	return fmt.Sprintf("%s%06d", key, serial)
}

func firstRunes(word string, n int) string {
	runes := []rune(word)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

func padRune(runes []rune) rune {
	if len(runes) == 0 {
		return 'X'
	}
	return runes[len(runes)-1]
}
