package textfilter

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const censored = "[censored]"

// replacements maps profanity to family-friendly alternatives.
var replacements = map[string]string{
	"fuck":         "fudge",
	"shit":         "shoot",
	"damn":         "dang",
	"hell":         "heck",
	"ass":          "butt",
	"bitch":        "jerk",
	"bastard":      "jerk",
	"crap":         "crud",
	"piss":         "ticked",
	"dick":         "jerk",
	"motherfucker": "mother-trucker",
	"goddamn":      "gosh-dang",
	"asshole":      "jerk",
	"dumbass":      "dummy",
	"jackass":      "jerk",
	"smartass":     "smarty",
	"badass":       "tough",
	"bullshit":     "baloney",
	"horseshit":    "nonsense",
	"dipshit":      "dummy",
	"shithead":     "jerk",
	"dickhead":     "jerk",
	"prick":        "jerk",
	"douche":       "jerk",
	"douchebag":    "jerk",
	"cock":         censored,
	"pussy":        censored,
	"tits":         censored,
	"whore":        censored,
	"slut":         censored,
	"fag":          censored,
	"retard":       censored,
	"nigger":       censored,
	"nigga":        censored,
	"spic":         censored,
	"chink":        censored,
	"kike":         censored,
}

type rule struct {
	re          *regexp.Regexp
	replacement string
}

// ProfanityFilter handles filtering and replacement of profanity in
// narrator output.
type ProfanityFilter struct {
	rules []rule
}

// NewProfanityFilter compiles one whole-word rule per entry, longest words
// first so compounds win over their parts. Simple plurals match too.
func NewProfanityFilter() *ProfanityFilter {
	words := make([]string, 0, len(replacements))
	for w := range replacements {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})

	pf := &ProfanityFilter{rules: make([]rule, 0, len(words))}
	for _, w := range words {
		pf.rules = append(pf.rules, rule{
			re:          regexp.MustCompile(`(?i)\b(` + regexp.QuoteMeta(w) + `)(e?s)?\b`),
			replacement: replacements[w],
		})
	}
	return pf
}

// FilterText replaces profanity, keeping the case pattern and any plural suffix.
func (pf *ProfanityFilter) FilterText(text string) string {
	result := text
	for _, r := range pf.rules {
		result = r.re.ReplaceAllStringFunc(result, func(match string) string {
			sub := r.re.FindStringSubmatch(match)
			word, suffix := sub[1], sub[2]
			if r.replacement == censored {
				return censored
			}
			return preserveCase(word, r.replacement) + pluralSuffix(r.replacement, suffix, word)
		})
	}
	return result
}

// ContainsProfanity checks if the text contains any profanity
func (pf *ProfanityFilter) ContainsProfanity(text string) bool {
	for _, r := range pf.rules {
		if r.re.MatchString(text) {
			return true
		}
	}
	return false
}

func pluralSuffix(replacement, suffix, original string) string {
	if suffix == "" {
		return ""
	}
	s := "s"
	if strings.HasSuffix(replacement, "s") || strings.HasSuffix(replacement, "sh") {
		s = "es"
	}
	if strings.ToUpper(original) == original {
		return strings.ToUpper(s)
	}
	return s
}

// preserveCase applies the case pattern of the original word to the replacement
func preserveCase(original, replacement string) string {
	if len(original) == 0 {
		return replacement
	}

	// All uppercase
	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}

	// All lowercase
	if strings.ToLower(original) == original {
		return strings.ToLower(replacement)
	}

	// Title case
	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}

	// Mixed case: follow the original rune by rune
	result := make([]rune, 0, len(replacement))
	originalRunes := []rune(original)
	for i, r := range replacement {
		if i < len(originalRunes) && unicode.IsUpper(originalRunes[i]) {
			result = append(result, unicode.ToUpper(r))
		} else {
			result = append(result, unicode.ToLower(r))
		}
	}
	return string(result)
}

// ShouldFilterContent reports whether a content rating always masks
// profanity. PG13 allows mild swearing, so only G and PG do.
func ShouldFilterContent(rating string) bool {
	rating = strings.ToUpper(strings.TrimSpace(rating))
	switch rating {
	case "G", "PG":
		return true
	default:
		return false
	}
}
