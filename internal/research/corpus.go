package research

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ResearchCorpus is the merged, provenance-labeled text built from all
// available source records for one company. Created per request and never
// persisted.
type ResearchCorpus struct {
	Company   string
	Records   []SourceRecord
	composite string
}

// Block order is fixed so the composite is deterministic regardless of how
// the caller assembled Sources.
var originOrder = []Origin{OriginWiki, OriginNews, OriginWeb, OriginFinancial}

var originLabels = map[Origin]string{
	OriginWiki:      "Wikipedia",
	OriginNews:      "News",
	OriginWeb:       "Web search",
	OriginFinancial: "Financials",
}

// BuildCorpus merges the pre-fetched sources for a company into one
// composite corpus. None of the origins are required: with no sources at
// all the composite is just the company header line and downstream stages
// run in degraded mode.
func BuildCorpus(company string, sources Sources) *ResearchCorpus {
	byOrigin := map[Origin][]SourceRecord{
		OriginWeb:       sources.Web,
		OriginNews:      sources.News,
		OriginWiki:      sources.Wiki,
		OriginFinancial: sources.Financial,
	}

	c := &ResearchCorpus{Company: company}

	var b strings.Builder
	fmt.Fprintf(&b, "Research corpus for: %s\n", company)

	for _, origin := range originOrder {
		records := byOrigin[origin]
		if len(records) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n=== %s ===\n", originLabels[origin])
		for _, r := range records {
			r.Origin = origin
			r.Body = StripHTML(r.Body)
			c.Records = append(c.Records, r)

			if r.Title != "" {
				fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(r.Title))
			}
			if r.Body != "" {
				fmt.Fprintf(&b, "%s\n", strings.TrimSpace(r.Body))
			}
			if r.URL != "" {
				fmt.Fprintf(&b, "(source: %s)\n", r.URL)
			}
		}
	}

	c.composite = strings.TrimRight(b.String(), "\n")
	return c
}

// Composite returns the deterministic labeled text block.
func (c *ResearchCorpus) Composite() string {
	return c.composite
}

// Prefix returns at most n bytes of the composite, cut at a rune boundary.
// Used to bound prompt size in the regeneration stage. n <= 0 means no
// corpus context at all, not an unbounded one.
func (c *ResearchCorpus) Prefix(n int) string {
	if n <= 0 {
		return ""
	}
	s := c.composite
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// RecordsByOrigin filters the corpus records by origin, preserving order.
func (c *ResearchCorpus) RecordsByOrigin(origin Origin) []SourceRecord {
	var out []SourceRecord
	for _, r := range c.Records {
		if r.Origin == origin {
			out = append(out, r)
		}
	}
	return out
}

var whitespaceRun = regexp.MustCompile(`[ \t]+`)

// StripHTML reduces an HTML fragment to its visible text. Web snippets
// arrive with markup more often than not; plain text passes through
// unchanged.
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return strings.TrimSpace(whitespaceRun.ReplaceAllString(b.String(), " "))
}
