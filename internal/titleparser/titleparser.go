// Package titleparser parses and rebuilds the bracket-tagged thread titles
// used on the quest board, e.g.
//
//	[RECRUITING] [ONLINE] [ONESHOT] [D&D] Lost Mine of Phandelver
//
// Tag order in the input is flexible; BuildCanonicalTitle always emits the
// fixed [STATUS] [MODE] [TYPE] [SYSTEM] order.
package titleparser

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultTitle is used when a thread title contains nothing but tags.
const DefaultTitle = "Untitled Quest"

var bracketRE = regexp.MustCompile(`\[([^\]]+)\]`)

var validStatus = map[string]struct{}{
	"RECRUITING": {},
	"FULL":       {},
	"COMPLETED":  {},
	"CANCELLED":  {},
	"DELETED":    {},
}

var validMode = map[string]struct{}{
	"ONLINE":  {},
	"OFFLINE": {},
}

var validType = map[string]struct{}{
	"ONESHOT":  {},
	"CAMPAIGN": {},
}

// systemKeywords hint at the game system inside a quest's body text. Order
// matters: the first match wins.
var systemKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bD&D\b`),
	regexp.MustCompile(`(?i)\bDND\b`),
	regexp.MustCompile(`(?i)\bDungeons\s*&?\s*Dragons\b`),
	regexp.MustCompile(`(?i)\bPathfinder\b`),
	regexp.MustCompile(`(?i)\bPF2e?\b`),
	regexp.MustCompile(`(?i)\bCall of Cthulhu\b`),
	regexp.MustCompile(`(?i)\bCoC\b`),
	regexp.MustCompile(`(?i)\bVampire\b`),
	regexp.MustCompile(`(?i)\bV5\b`),
	regexp.MustCompile(`(?i)\bVtM\b`),
	regexp.MustCompile(`(?i)\bSavage Worlds\b`),
	regexp.MustCompile(`(?i)\bFate\b`),
	regexp.MustCompile(`(?i)\bCyberpunk\b`),
	regexp.MustCompile(`(?i)\bShadowrun\b`),
	regexp.MustCompile(`(?i)\bStarfinder\b`),
	regexp.MustCompile(`(?i)\bBlades in the Dark\b`),
	regexp.MustCompile(`(?i)\bDelta Green\b`),
	regexp.MustCompile(`(?i)\bWarhammer\b`),
	regexp.MustCompile(`(?i)\bWFRP\b`),
	regexp.MustCompile(`(?i)\b13th Age\b`),
	regexp.MustCompile(`(?i)\bTraveller\b`),
	regexp.MustCompile(`(?i)\bMythras\b`),
	regexp.MustCompile(`(?i)\bDCC\b`),
}

// Fields holds the parameters encoded in (or destined for) a thread title.
// Empty string means the field is absent.
type Fields struct {
	Status    string
	Mode      string
	QuestType string
	System    string
	Title     string
}

// Parse extracts quest parameters from a thread title. Every bracketed token
// is matched case-insensitively against the status/mode/type vocabularies;
// the first token that matches none of them becomes the system tag. The text
// left over after stripping all tags becomes the free title. Parse never
// fails: any input produces a best-effort result.
func Parse(title string) Fields {
	var f Fields

	for _, m := range bracketRE.FindAllStringSubmatch(title, -1) {
		token := strings.ToUpper(strings.TrimSpace(m[1]))
		switch {
		case hasKey(validStatus, token):
			f.Status = token
		case hasKey(validMode, token):
			f.Mode = token
		case hasKey(validType, token):
			f.QuestType = token
		default:
			if f.System == "" {
				f.System = token
			}
		}
	}

	f.Title = strings.TrimSpace(bracketRE.ReplaceAllString(title, ""))
	if f.Title == "" {
		f.Title = DefaultTitle
	}
	return f
}

// DetectSystem scans body text for a known game system name and returns the
// matched text uppercased, or "" when nothing matches.
func DetectSystem(body string) string {
	for _, re := range systemKeywords {
		if m := re.FindString(body); m != "" {
			return strings.ToUpper(strings.TrimSpace(m))
		}
	}
	return ""
}

// BuildCanonicalTitle renders the canonical thread title, omitting brackets
// for unset fields: [STATUS] [MODE] [TYPE] [SYSTEM] Title.
func BuildCanonicalTitle(f Fields) string {
	parts := make([]string, 0, 5)
	for _, v := range []string{f.Status, f.Mode, f.QuestType, f.System} {
		if v != "" {
			parts = append(parts, fmt.Sprintf("[%s]", v))
		}
	}
	title := f.Title
	if title == "" {
		title = DefaultTitle
	}
	parts = append(parts, title)
	return strings.Join(parts, " ")
}

// StatusColor maps a quest status to its embed colour.
func StatusColor(status string) int {
	switch status {
	case "RECRUITING":
		return 0x57F287 // green
	case "FULL":
		return 0xFEE75C // yellow
	case "COMPLETED":
		return 0x5865F2 // blurple
	case "CANCELLED":
		return 0xED4245 // red
	default:
		return 0x99AAB5 // grey
	}
}

func hasKey(set map[string]struct{}, k string) bool {
	_, ok := set[k]
	return ok
}
