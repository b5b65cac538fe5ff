package scoring

import (
	"regexp"
	"strings"
)

// buyingKeywords are phrases that indicate purchase intent.
var buyingKeywords = []string{
	"send proposal",
	"ready to buy",
	"approved budget",
	"timeline",
	"implementation",
	"contract",
	"po",
	"quote",
	"pricing",
	"final decision",
	"move forward",
	"sign off",
	"demo",
	"evaluation",
	"trial",
	"pilot",
}

var buyingPatterns = compileKeywords(buyingKeywords)

// compileKeywords builds one case-insensitive, word-bounded pattern per
// keyword. Keywords are quoted so punctuation matches literally.
func compileKeywords(keywords []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`)
	}
	return patterns
}

// BuyingSignal reports whether notes contain any buying keyword as a whole
// word or contiguous phrase.
func BuyingSignal(notes string) bool {
	for _, p := range buyingPatterns {
		if p.MatchString(notes) {
			return true
		}
	}
	return false
}
