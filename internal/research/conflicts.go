package research

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NormalizeConflicts turns the raw conflicts section of a synthesis response
// into an ordered list. "none" (any case) and blank text yield an empty
// list; otherwise lines are split, leading bullet characters stripped, and
// blank lines dropped. Order is preserved.
func NormalizeConflicts(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.EqualFold(trimmed, "none") {
		return nil
	}

	var out []string
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimLeft(line, " \t-•*")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// ConflictDetector inspects a corpus for cross-source contradictions before
// the collaborator sees it. Detector findings merge with whatever the
// collaborator itself reports. Implementations are heuristic and
// best-effort; an empty result means nothing detectable, not nothing wrong.
type ConflictDetector interface {
	Detect(corpus *ResearchCorpus) []string
}

// EmployeeCountDetector flags web snippets that mention employee counts
// disagreeing with the financial snapshot. Deliberately illustrative: it
// only catches the exact-number case and a more serious deployment should
// swap in a stronger detector.
type EmployeeCountDetector struct{}

var employeeNumber = regexp.MustCompile(`([\d][\d,]*)\s*(?:full[- ]time\s+)?employees`)

// Detect implements ConflictDetector.
func (EmployeeCountDetector) Detect(corpus *ResearchCorpus) []string {
	reported := financialEmployeeCount(corpus)
	if reported == 0 {
		return nil
	}

	var conflicts []string
	for _, r := range corpus.RecordsByOrigin(OriginWeb) {
		body := strings.ToLower(r.Body)
		if !strings.Contains(body, "employee") {
			continue
		}
		m := employeeNumber.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err != nil || n == reported {
			continue
		}
		conflicts = append(conflicts, fmt.Sprintf(
			"Employee count: financial data reports %d, but a web snippet mentions %d", reported, n))
	}
	return conflicts
}

// financialEmployeeCount pulls the reported employee count out of the
// financial block, if present.
func financialEmployeeCount(corpus *ResearchCorpus) int {
	for _, r := range corpus.RecordsByOrigin(OriginFinancial) {
		for _, line := range strings.Split(r.Body, "\n") {
			if !strings.HasPrefix(line, "Employees:") {
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Employees:")))
			if err == nil {
				return n
			}
		}
	}
	return 0
}
