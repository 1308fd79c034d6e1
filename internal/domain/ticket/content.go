package ticket

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"supportdesk/internal/shared/constants"
)

// NormalizeContent NFC-normalizes and trims message text and enforces the
// length limit in runes. maxRunes <= 0 selects the default limit.
func NormalizeContent(raw string, maxRunes int) (string, error) {
	if maxRunes <= 0 {
		maxRunes = constants.DefaultMaxContentLength
	}

	content := strings.TrimSpace(norm.NFC.String(raw))
	if content == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > maxRunes {
		return "", ErrContentTooLong
	}
	return content, nil
}
