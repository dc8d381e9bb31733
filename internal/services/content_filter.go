package services

import (
	"regexp"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
)

var BannedWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"asshole", "bastard", "bitch", "cunt",
	"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag",
	"retard", "retarded", "tranny",
	"porn", "porno", "nude", "nudes",
}

// ContentFilter screens user-written text on items and claims.
type ContentFilter struct {
	bannedWordRegexps   []*regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	allCapsPattern      *regexp.Regexp
}

// NewContentFilter compiles BannedWords plus any deployment-specific words.
func NewContentFilter(extra []string) *ContentFilter {
	f := &ContentFilter{}
	words := append(append([]string{}, BannedWords...), extra...)
	f.bannedWordRegexps = make([]*regexp.Regexp, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if err == nil {
			f.bannedWordRegexps = append(f.bannedWordRegexps, re)
		}
	}

	f.repeatedCharPattern = regexp.MustCompile(`(?i)(a{5,}|b{5,}|c{5,}|d{5,}|e{5,}|f{5,}|g{5,}|h{5,}|i{5,}|j{5,}|k{5,}|l{5,}|m{5,}|n{5,}|o{5,}|p{5,}|q{5,}|r{5,}|s{5,}|t{5,}|u{5,}|v{5,}|w{5,}|x{5,}|y{5,}|z{5,}|!{5,}|\?{5,})`)
	f.allCapsPattern = regexp.MustCompile(`[A-Z]{6,}`)
	return f
}

// Check returns false and a reason code when text violates the guidelines.
func (f *ContentFilter) Check(text string) (bool, string) {
	if text == "" {
		return true, ""
	}
	for _, re := range f.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if f.repeatedCharPattern.MatchString(text) {
		return false, "spam_detected"
	}
	if len(f.allCapsPattern.FindAllString(text, -1)) > 2 {
		return false, "excessive_caps"
	}
	return true, ""
}

// Screen checks every field and returns ErrInvalidInput for the first
// violation.
func (f *ContentFilter) Screen(fields ...string) error {
	for _, text := range fields {
		if ok, reason := f.Check(text); !ok {
			return errs.Invalid("%s", rejectionMessage(reason))
		}
	}
	return nil
}

func rejectionMessage(reason string) string {
	messages := map[string]string{
		"inappropriate_language": "text contains inappropriate language",
		"spam_detected":          "text appears to be spam",
		"excessive_caps":         "please avoid excessive capital letters",
	}
	if msg, ok := messages[reason]; ok {
		return msg
	}
	return "text does not meet our content guidelines"
}
