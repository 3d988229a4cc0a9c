package articulation

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Marker-section extraction. The synthesis prompt asks the collaborator for
// "### Heading:" sections, but real responses drift: headings lose the
// hashes, gain bold markers, or drop the colon. Each expected heading is
// matched permissively at line start; absence degrades to an empty string,
// never an error.

var (
	markerCacheMu sync.Mutex
	markerCache   = map[string]*regexp.Regexp{}
)

// markerPattern returns a compiled matcher for one heading label.
// Accepted at line start: "### Heading:", "### Heading", "**Heading:**",
// and a bare "Heading:". A bare heading without hashes, bold markers, or a
// colon is not a marker; that would swallow ordinary prose.
func markerPattern(heading string) *regexp.Regexp {
	markerCacheMu.Lock()
	defer markerCacheMu.Unlock()

	if re, ok := markerCache[heading]; ok {
		return re
	}

	h := regexp.QuoteMeta(heading)
	re := regexp.MustCompile(`(?mi)^[ \t]*(?:(?:#{1,6}[ \t]*|\*\*)` + h + `(?:\*\*)?[ \t]*:?(?:\*\*)?|` + h + `[ \t]*:)[ \t]*`)
	markerCache[heading] = re
	return re
}

// sectionMarker is one located heading marker in the scanned text.
type sectionMarker struct {
	heading      string
	start        int // marker start, bounds the previous section
	contentStart int // first byte after the marker
}

// ExtractSections scans free text for the expected heading markers and
// returns a mapping from heading label to the trimmed body between that
// marker and the next one (or end of text). Every expected heading is
// present in the result; missing headings map to "".
func ExtractSections(text string, headings []string) map[string]string {
	out := make(map[string]string, len(headings))
	for _, h := range headings {
		out[h] = ""
	}
	if strings.TrimSpace(text) == "" {
		return out
	}

	var markers []sectionMarker
	for _, h := range headings {
		loc := markerPattern(h).FindStringIndex(text)
		if loc == nil {
			continue
		}
		markers = append(markers, sectionMarker{heading: h, start: loc[0], contentStart: loc[1]})
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].start < markers[j].start })

	for i, m := range markers {
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		out[m.heading] = strings.TrimSpace(text[m.contentStart:end])
	}
	return out
}

// ExtractSection is the single-heading convenience form.
func ExtractSection(text, heading string) string {
	return ExtractSections(text, []string{heading})[heading]
}

// HasSection reports whether a marker for the heading occurs in the text.
// Extraction alone cannot tell a missing marker from a matched marker with
// an empty body; callers branching on marker presence use this.
func HasSection(text, heading string) bool {
	return markerPattern(heading).MatchString(text)
}
