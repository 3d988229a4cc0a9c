package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"planforge/internal/research"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestStore(t *testing.T) *PlanStore {
	t.Helper()
	return NewPlanStore(filepath.Join(t.TempDir(), "plans.json"))
}

func samplePlan() research.AccountPlan {
	return research.AccountPlan{
		"company_overview": "Acme makes anvils.",
		"pain_points":      "Gravity-related returns.",
		"next_steps":       "Schedule discovery call.",
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	plan := samplePlan()

	if err := s.Save("Acme Corp", plan); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok := s.Load("Acme Corp")
	if !ok {
		t.Fatal("Load returned ok=false for saved company")
	}
	if len(got) != len(plan) {
		t.Fatalf("loaded %d sections, want %d", len(got), len(plan))
	}
	for k, v := range plan {
		if got[k] != v {
			t.Errorf("section %q = %q, want %q", k, got[k], v)
		}
	}
}

func TestLoadUnknownCompany(t *testing.T) {
	s := newTestStore(t)
	if _, ok := s.Load("Nobody Inc"); ok {
		t.Error("Load returned ok=true for unknown company")
	}
}

func TestKeysAreExactMatch(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("Acme Corp", samplePlan()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	for _, key := range []string{"acme corp", "Acme Corp ", "ACME CORP"} {
		if _, ok := s.Load(key); ok {
			t.Errorf("Load(%q) matched, keys must be exact", key)
		}
	}
}

func TestSaveOverwritesExisting(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("Acme Corp", samplePlan()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	updated := research.AccountPlan{"company_overview": "Revised."}
	if err := s.Save("Acme Corp", updated); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok := s.Load("Acme Corp")
	if !ok {
		t.Fatal("Load failed after overwrite")
	}
	if len(got) != 1 || got["company_overview"] != "Revised." {
		t.Errorf("overwrite not applied, got %v", got)
	}

	if list := s.ListCompanies(); len(list) != 1 {
		t.Errorf("overwrite duplicated key: %v", list)
	}
}

func TestListCompaniesPreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	names := []string{"Zeta Ltd", "Acme Corp", "Midway LLC"}
	for _, n := range names {
		if err := s.Save(n, samplePlan()); err != nil {
			t.Fatalf("Save(%q): %v", n, err)
		}
	}

	got := s.ListCompanies()
	if len(got) != len(names) {
		t.Fatalf("ListCompanies returned %v", got)
	}
	for i, n := range names {
		if got[i] != n {
			t.Errorf("position %d = %q, want %q", i, got[i], n)
		}
	}
}

func TestListCompaniesEmptyStore(t *testing.T) {
	s := newTestStore(t)
	if got := s.ListCompanies(); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestUpdateSection(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("Acme Corp", samplePlan()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !s.UpdateSection("Acme Corp", "pain_points", "New content.") {
		t.Fatal("UpdateSection returned false for valid update")
	}

	got, _ := s.Load("Acme Corp")
	if got["pain_points"] != "New content." {
		t.Errorf("pain_points = %q, want updated content", got["pain_points"])
	}
}

func TestUpdateSectionUnknownKeyLeavesFileUntouched(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("Acme Corp", samplePlan()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if s.UpdateSection("Acme Corp", "unknown_key", "x") {
		t.Error("UpdateSection created a new section")
	}
	if s.UpdateSection("Nobody Inc", "pain_points", "x") {
		t.Error("UpdateSection succeeded for unknown company")
	}

	after, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(before) != string(after) {
		t.Error("rejected update modified the store file")
	}
}

func TestCorruptFileResetsToEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not valid json"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if got := s.ListCompanies(); len(got) != 0 {
		t.Errorf("corrupt store listed companies: %v", got)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile after reset: %v", err)
	}
	if strings.TrimSpace(string(data)) != "{}" {
		t.Errorf("corrupt store not reset, file = %q", data)
	}
}

func TestReadsLegacyBarePlanFormat(t *testing.T) {
	s := newTestStore(t)
	legacy := `{
  "Acme Corp": {
    "company_overview": "Bare map, no envelope.",
    "next_steps": "Call them."
  }
}`
	if err := os.WriteFile(s.Path(), []byte(legacy), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, ok := s.Load("Acme Corp")
	if !ok {
		t.Fatal("legacy-format plan not loaded")
	}
	if got["company_overview"] != "Bare map, no envelope." {
		t.Errorf("legacy content = %q", got["company_overview"])
	}
}

func TestWritesEnvelopeFormat(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("Acme Corp", samplePlan()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var doc map[string]struct {
		Plan      map[string]string `json:"plan"`
		CreatedAt string            `json:"created_at"`
		Version   string            `json:"version"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("store file is not valid JSON: %v", err)
	}

	entry, ok := doc["Acme Corp"]
	if !ok {
		t.Fatal("saved company missing from document")
	}
	if entry.Plan == nil {
		t.Error("entry missing plan field")
	}
	if entry.CreatedAt == "" {
		t.Error("entry missing created_at")
	}
	if entry.Version != StoreVersion {
		t.Errorf("version = %q, want %q", entry.Version, StoreVersion)
	}
}

func TestExport(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("Acme Corp", samplePlan()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := s.Export("Acme Corp")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if got["exported_at"] == "" {
		t.Error("export missing exported_at timestamp")
	}
	if got["company_overview"] != "Acme makes anvils." {
		t.Errorf("exported content wrong: %q", got["company_overview"])
	}

	// Export must not leak the timestamp back into the stored plan.
	stored, _ := s.Load("Acme Corp")
	if _, ok := stored["exported_at"]; ok {
		t.Error("exported_at leaked into stored plan")
	}
}

func TestExportUnknownCompany(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Export("Nobody Inc"); err == nil {
		t.Error("Export succeeded for unknown company")
	}
}

func TestLoadReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("Acme Corp", samplePlan()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	first, _ := s.Load("Acme Corp")
	first["company_overview"] = "mutated"

	second, _ := s.Load("Acme Corp")
	if second["company_overview"] == "mutated" {
		t.Error("Load returned a shared map")
	}
}
