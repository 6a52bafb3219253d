package speech

import "strings"

var languageNames = map[string]string{
	"english":   "en",
	"hindi":     "hi",
	"marathi":   "mr",
	"bengali":   "bn",
	"tamil":     "ta",
	"telugu":    "te",
	"kannada":   "kn",
	"malayalam": "ml",
	"gujarati":  "gu",
	"punjabi":   "pa",
	"urdu":      "ur",
	"spanish":   "es",
	"french":    "fr",
	"german":    "de",
}

// LanguageCode maps a language name or BCP-47 tag to its base ISO 639-1
// code. Unknown names return "".
func LanguageCode(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if code, ok := languageNames[n]; ok {
		return code
	}
	if base, _, found := strings.Cut(n, "-"); found {
		n = base
	}
	if len(n) == 2 {
		return n
	}
	return ""
}
