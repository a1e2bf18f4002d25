// Package watermark decides which pages of a merge receive signature stamps
// and builds the text printed inside each stamp.
package watermark

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"golang.org/x/text/language"
)

// SignatureInfo is display metadata about one signer. Nothing is verified.
type SignatureInfo struct {
	CertificateNumber string `json:"certificateNumber"`
	Owner             string `json:"owner"`
	Validity          string `json:"validity"`
}

// DataError reports a signature that cannot be rendered.
type DataError struct {
	Index int
	Field string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("invalid watermark data: signature %d: %s is required", e.Index, e.Field)
}

// Validate checks the fields a stamp cannot do without.
func (s SignatureInfo) Validate(index int) error {
	if strings.TrimSpace(s.CertificateNumber) == "" {
		return &DataError{Index: index, Field: "certificateNumber"}
	}
	if strings.TrimSpace(s.Owner) == "" {
		return &DataError{Index: index, Field: "owner"}
	}
	return nil
}

// Labels are the fixed phrases of a stamp in one language.
type Labels struct {
	Header      string
	Certificate string
	Owner       string
	ValidUntil  string
	NoDate      string
	DateLayout  string
}

var (
	English = Labels{
		Header:      "Document signed with a qualified electronic signature",
		Certificate: "Certificate",
		Owner:       "Owner",
		ValidUntil:  "Valid until",
		NoDate:      "date not specified",
		DateLayout:  "01/02/2006",
	}
	Russian = Labels{
		Header:      "Документ подписан усиленной квалифицированной электронной подписью",
		Certificate: "Сертификат",
		Owner:       "Владелец",
		ValidUntil:  "Действителен до",
		NoDate:      "Дата не указана",
		DateLayout:  "02.01.2006",
	}
)

// The first entry is the fallback for unmatched locales.
var (
	matcher      = language.NewMatcher([]language.Tag{language.English, language.Russian})
	localeLabels = []Labels{English, Russian}
)

// LabelsFor returns the labels closest to the BCP 47 locale.
func LabelsFor(locale string) Labels {
	_, i, _ := matcher.Match(language.Make(locale))
	return localeLabels[i]
}

// Text renders the stamp body for one signature.
func Text(sig SignatureInfo, labels Labels) string {
	return fmt.Sprintf("%s\n%s: %s\n%s: %s\n%s: %s",
		labels.Header,
		labels.Certificate, sig.CertificateNumber,
		labels.Owner, sig.Owner,
		labels.ValidUntil, FormatValidity(sig.Validity, labels),
	)
}

// FormatValidity formats a loosely specified date, or returns labels.NoDate
// when it cannot be parsed.
func FormatValidity(validity string, labels Labels) string {
	t, ok := parseDate(validity)
	if !ok {
		return labels.NoDate
	}
	return t.Format(labels.DateLayout)
}

var extraLayouts = []string{"02.01.2006", "02.01.2006 15:04:05", time.RFC1123, time.RFC1123Z}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range extraLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// now.Parse fills missing parts from the current time, so bare numbers
	// like "12" would become today's date at noon.
	if !strings.ContainsAny(s, "-/") {
		return time.Time{}, false
	}
	t, err := now.Parse(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
