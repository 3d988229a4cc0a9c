// Package research implements the research synthesis and account-plan
// pipeline: source aggregation, LLM-backed synthesis, plan generation, and
// targeted section regeneration. Stages are synchronous and blocking; a
// stage makes at most one collaborator call per invocation.
package research

import (
	"fmt"
	"sort"
	"strings"
)

// Origin identifies where a source record was retrieved from.
type Origin string

const (
	OriginWeb       Origin = "web"
	OriginNews      Origin = "news"
	OriginWiki      Origin = "wiki"
	OriginFinancial Origin = "financial"
)

// SourceRecord is one externally retrieved fact snippet. Immutable once
// fetched; retrieval itself happens outside the pipeline.
type SourceRecord struct {
	Origin Origin `json:"origin"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body"`
	URL    string `json:"url,omitempty"`
}

// Sources groups pre-fetched records by origin. Any field may be nil or
// empty; the pipeline treats absence and empty identically.
type Sources struct {
	Web       []SourceRecord
	News      []SourceRecord
	Wiki      []SourceRecord
	Financial []SourceRecord
}

// Empty reports whether no origin contributed any record.
func (s Sources) Empty() bool {
	return len(s.Web) == 0 && len(s.News) == 0 && len(s.Wiki) == 0 && len(s.Financial) == 0
}

// SynthesisResult is the output of the synthesis stage. Conflicts is empty
// when the collaborator reports none or its conflict text was unusable.
type SynthesisResult struct {
	Summary   string   `json:"summary"`
	Conflicts []string `json:"conflicts"`
}

// FinancialSnapshot is a structured financial record for one company, as
// handed over by an external provider. FormatRecord turns it into an
// ordinary SourceRecord so financial data flows through the same aggregation
// path as everything else.
type FinancialSnapshot struct {
	MarketCap       int64  `json:"market_cap,omitempty"`
	Employees       int    `json:"employees,omitempty"`
	Sector          string `json:"sector,omitempty"`
	Industry        string `json:"industry,omitempty"`
	BusinessSummary string `json:"business_summary,omitempty"`
}

// FormatRecord renders the snapshot as a financial-origin source record.
func (f FinancialSnapshot) FormatRecord() SourceRecord {
	var b strings.Builder
	if f.Sector != "" {
		fmt.Fprintf(&b, "Sector: %s\n", f.Sector)
	}
	if f.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", f.Industry)
	}
	if f.MarketCap > 0 {
		fmt.Fprintf(&b, "Market cap: %d\n", f.MarketCap)
	}
	if f.Employees > 0 {
		fmt.Fprintf(&b, "Employees: %d\n", f.Employees)
	}
	if f.BusinessSummary != "" {
		b.WriteString(f.BusinessSummary)
	}
	return SourceRecord{
		Origin: OriginFinancial,
		Title:  "Financial snapshot",
		Body:   strings.TrimSpace(b.String()),
	}
}

// AccountPlan maps section names to section content. Once validated against
// the required-section contract every contract key is present and non-empty;
// the map may carry additional keys added later (export metadata, custom
// sections from older store versions).
type AccountPlan map[string]string

// Clone returns a deep copy of the plan.
func (p AccountPlan) Clone() AccountPlan {
	if p == nil {
		return nil
	}
	out := make(AccountPlan, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Validate checks the plan against the required-section contract. It reports
// every missing or empty section, not just the first.
func (p AccountPlan) Validate(required []string) error {
	var missing []string
	for _, key := range required {
		if strings.TrimSpace(p[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing sections %s", ErrPlanIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

// Markdown renders the plan as a markdown document with one "### section"
// heading per entry. Contract sections come first in contract order; any
// extra keys follow alphabetically.
func (p AccountPlan) Markdown(sectionOrder []string) string {
	var b strings.Builder
	seen := make(map[string]bool, len(p))

	write := func(key string) {
		content, ok := p[key]
		if !ok || seen[key] {
			return
		}
		seen[key] = true
		fmt.Fprintf(&b, "### %s\n%s\n\n", headingForKey(key), content)
	}

	for _, key := range sectionOrder {
		write(key)
	}

	var rest []string
	for key := range p {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		write(key)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// headingForKey turns a snake_case section key into a title-cased heading.
func headingForKey(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
