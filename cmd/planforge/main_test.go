package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCommandRegistration(t *testing.T) {
	want := map[string]bool{"research": false, "chat": false, "plans": false, "status": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestPlansSubcommands(t *testing.T) {
	want := map[string]bool{"list": false, "show": false, "edit": false, "export": false}
	for _, c := range plansCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("plans subcommand %q not registered", name)
		}
	}
}

func TestLoadRecordFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "web.json")
	content := `[{"title": "Acme", "body": "Sells anvils.", "url": "https://acme.example"}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	records, err := loadRecordFile(path)
	if err != nil {
		t.Fatalf("loadRecordFile: %v", err)
	}
	if len(records) != 1 || records[0].Body != "Sells anvils." {
		t.Errorf("records = %v", records)
	}

	if got, err := loadRecordFile(""); err != nil || got != nil {
		t.Errorf("empty path should be a no-op, got %v, %v", got, err)
	}

	if _, err := loadRecordFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should error")
	}
}

func TestLoadSourcesFinancial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fin.json")
	if err := os.WriteFile(path, []byte(`{"employees": 4200, "sector": "Manufacturing"}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	financialFile = path
	defer func() { financialFile = "" }()

	sources, err := loadSources()
	if err != nil {
		t.Fatalf("loadSources: %v", err)
	}
	if len(sources.Financial) != 1 {
		t.Fatalf("Financial = %v", sources.Financial)
	}
	body := sources.Financial[0].Body
	if body == "" {
		t.Error("financial record body empty")
	}
}
