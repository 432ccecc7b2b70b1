package content

import (
	"regexp"
	"strings"
)

// Profile is the structured form of a full-profile completion. Missing
// sections degrade to empty values; partial model output yields partial
// content rather than an error.
type Profile struct {
	SEOTitle            string
	SEODescription      string
	Features            []string
	Materials           []string
	Colors              []string
	Tags                []string
	BasicDescription    string
	DetailedDescription string
}

var (
	// Leading bold-wrapped ordinal, e.g. "**3.**" or "3." at section start.
	bulletMarker   = regexp.MustCompile(`^\s*(\*\*\s*\d+\.\s*\*\*|\d+\.)\s*`)
	emphasisMarker = strings.NewReplacer("**", "", "__", "")
	sectionBreak   = regexp.MustCompile(`\n\s*\n`)
)

// SplitSections breaks raw completion text on blank lines into ordered
// sections. Consumption is positional: a dropped or extra section shifts
// everything after it.
func SplitSections(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	sections := make([]string, 0, 8)
	for _, chunk := range sectionBreak.Split(raw, -1) {
		if chunk = strings.TrimSpace(chunk); chunk != "" {
			sections = append(sections, chunk)
		}
	}
	return sections
}

// StripMarkdown removes emphasis markers and a leading numbered-bullet
// marker from one section.
func StripMarkdown(section string) string {
	section = bulletMarker.ReplaceAllString(section, "")
	return strings.TrimSpace(emphasisMarker.Replace(section))
}

// ParseList splits a comma-separated section into trimmed, non-empty items,
// order preserved, duplicates kept.
func ParseList(section string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(StripMarkdown(section), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseLines splits raw text into one item per non-empty line. Used for the
// single-field features path, which asks for one feature per line.
func ParseLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	items := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		if line = StripMarkdown(line); line != "" {
			items = append(items, line)
		}
	}
	return items
}

// ParseProfile maps blank-line sections to fields by fixed position,
// mirroring the order FullProfilePrompt requests. Fewer sections than
// expected default the remaining fields to empty values.
func ParseProfile(raw string) Profile {
	sections := SplitSections(raw)

	text := func(i int) string {
		if i >= len(sections) {
			return ""
		}
		return StripMarkdown(sections[i])
	}
	list := func(i int) []string {
		if i >= len(sections) {
			return []string{}
		}
		return ParseList(sections[i])
	}

	return Profile{
		SEOTitle:            text(0),
		SEODescription:      text(1),
		Features:            list(2),
		Materials:           list(3),
		Colors:              list(4),
		Tags:                list(5),
		BasicDescription:    text(6),
		DetailedDescription: text(7),
	}
}
