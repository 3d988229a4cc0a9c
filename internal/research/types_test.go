package research

import (
	"errors"
	"strings"
	"testing"
)

func TestAccountPlanValidate(t *testing.T) {
	required := []string{"company_overview", "next_steps"}

	full := AccountPlan{"company_overview": "a", "next_steps": "b", "extra": "c"}
	if err := full.Validate(required); err != nil {
		t.Errorf("complete plan rejected: %v", err)
	}

	partial := AccountPlan{"company_overview": "a"}
	err := partial.Validate(required)
	if !errors.Is(err, ErrPlanIncomplete) {
		t.Fatalf("err = %v, want ErrPlanIncomplete", err)
	}
	if !strings.Contains(err.Error(), "next_steps") {
		t.Errorf("error does not name missing section: %v", err)
	}

	blank := AccountPlan{"company_overview": " \t ", "next_steps": "b"}
	if err := blank.Validate(required); !errors.Is(err, ErrPlanIncomplete) {
		t.Errorf("whitespace-only section accepted: %v", err)
	}
}

func TestAccountPlanValidateReportsAllMissing(t *testing.T) {
	err := AccountPlan{}.Validate([]string{"a", "b", "c"})
	if err == nil {
		t.Fatal("empty plan accepted")
	}
	for _, key := range []string{"a", "b", "c"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error missing section %q: %v", key, err)
		}
	}
}

func TestAccountPlanClone(t *testing.T) {
	orig := AccountPlan{"k": "v"}
	cp := orig.Clone()
	cp["k"] = "changed"
	if orig["k"] != "v" {
		t.Error("Clone shares the underlying map")
	}
	if AccountPlan(nil).Clone() != nil {
		t.Error("Clone of nil plan should stay nil")
	}
}

func TestAccountPlanMarkdown(t *testing.T) {
	plan := AccountPlan{
		"next_steps":       "Call them.",
		"company_overview": "Anvils.",
		"zz_custom":        "Extra notes.",
	}

	md := plan.Markdown([]string{"company_overview", "next_steps"})

	overview := strings.Index(md, "### Company Overview")
	next := strings.Index(md, "### Next Steps")
	custom := strings.Index(md, "### Zz Custom")
	if overview < 0 || next < 0 || custom < 0 {
		t.Fatalf("missing headings:\n%s", md)
	}
	if !(overview < next && next < custom) {
		t.Errorf("sections out of order:\n%s", md)
	}
	if !strings.Contains(md, "### Company Overview\nAnvils.") {
		t.Errorf("content not under heading:\n%s", md)
	}
}

func TestFinancialSnapshotFormatRecord(t *testing.T) {
	rec := FinancialSnapshot{
		Sector:          "Manufacturing",
		Industry:        "Heavy equipment",
		MarketCap:       12_000_000,
		Employees:       4200,
		BusinessSummary: "Makes anvils.",
	}.FormatRecord()

	if rec.Origin != OriginFinancial {
		t.Errorf("Origin = %q", rec.Origin)
	}
	for _, want := range []string{"Sector: Manufacturing", "Employees: 4200", "Makes anvils."} {
		if !strings.Contains(rec.Body, want) {
			t.Errorf("body missing %q:\n%s", want, rec.Body)
		}
	}

	empty := FinancialSnapshot{}.FormatRecord()
	if empty.Body != "" {
		t.Errorf("empty snapshot body = %q", empty.Body)
	}
}

func TestSourcesEmpty(t *testing.T) {
	if !(Sources{}).Empty() {
		t.Error("zero Sources should be empty")
	}
	if (Sources{News: []SourceRecord{{Body: "x"}}}).Empty() {
		t.Error("Sources with records reported empty")
	}
}
