package services

import (
	"strings"
	"unicode/utf8"
)

// Intent is the classified meaning of an inbound confirmation reply.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentConfirm
	IntentCancel
)

func (i Intent) String() string {
	switch i {
	case IntentConfirm:
		return "confirm"
	case IntentCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Reply vocabularies, English and Arabic. Order matters: the affirmative list
// is scanned first and the first hit wins, so "yes but no" classifies as
// confirm. Keep this reproducible; do not reorder.
var (
	yesReplies = []string{"yes", "y", "نعم", "اي", "ايه", "اوكي", "ok", "okay", "confirm", "تأكيد"}
	noReplies  = []string{"no", "n", "لا", "cancel", "الغاء", "إلغاء"}
)

// ClassifyReply maps a free-text message body to a confirm/cancel/unknown
// intent via case-insensitive matching. Multi-character tokens match as
// substrings; single-character tokens ("y", "n") only match the whole trimmed
// body, otherwise "maybe" would read as a confirmation.
func ClassifyReply(body string) Intent {
	lower := strings.ToLower(strings.TrimSpace(body))
	if lower == "" {
		return IntentUnknown
	}

	for _, yes := range yesReplies {
		if tokenMatches(lower, yes) {
			return IntentConfirm
		}
	}
	for _, no := range noReplies {
		if tokenMatches(lower, no) {
			return IntentCancel
		}
	}
	return IntentUnknown
}

func tokenMatches(body, token string) bool {
	if utf8.RuneCountInString(token) == 1 {
		return body == token
	}
	return strings.Contains(body, token)
}
