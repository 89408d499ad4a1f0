// Package dateutil resolves the "auto" date value used in lecture metadata.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// autoPrefix selects today's date; an optional ":format" suffix picks a
// preset or a token format, e.g. "auto:long" or "auto:DD/MM/YYYY".
const autoPrefix = "auto"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Resolve expands a metadata date value. "auto" becomes today's date in ISO
// form; "auto:<preset-or-format>" formats today accordingly; anything else
// is passed through verbatim (explicit dates are the author's business).
func Resolve(date string, now func() time.Time) (string, error) {
	if date != autoPrefix && !strings.HasPrefix(date, autoPrefix+":") {
		return date, nil
	}

	format := "iso"
	if rest, ok := strings.CutPrefix(date, autoPrefix+":"); ok {
		format = rest
	}

	if preset, ok := DatePresets[format]; ok {
		format = preset
	}

	goFmt, err := parseDateFormat(format)
	if err != nil {
		return "", err
	}
	return now().Format(goFmt), nil
}

// parseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Non-token characters are
// preserved as literals.
func parseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: empty format", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format too long (%d chars, max %d)",
			ErrInvalidDateFormat, len(format), MaxDateFormatLength)
	}

	var b strings.Builder
	i := 0
outer:
	for i < len(format) {
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				b.WriteString(t.goFmt)
				i += len(t.token)
				continue outer
			}
		}
		b.WriteByte(format[i])
		i++
	}
	return b.String(), nil
}
