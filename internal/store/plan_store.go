// Package store persists account plans. The store is one JSON document
// keyed by exact company name; every operation is a full-file
// read-modify-write. That is deliberate: single-user scale, no locking,
// last-writer-wins across processes. A multi-user deployment would need
// per-company keys plus optimistic version checks instead.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"planforge/internal/logging"
	"planforge/internal/research"
)

// StoreVersion is written into every persisted plan envelope.
const StoreVersion = "1.1"

// PlanStore is a persistent, keyed-by-company mapping from company name to
// account plan. Keys are exact-match: case-sensitive, whitespace
// significant, no normalization.
type PlanStore struct {
	mu   sync.Mutex
	path string
}

// planEnvelope is the persisted per-company shape. Older store files hold
// the bare section map instead; both shapes are read, only this one is
// written.
type planEnvelope struct {
	Plan      research.AccountPlan `json:"plan"`
	CreatedAt string               `json:"created_at"`
	Version   string               `json:"version"`
}

// planDB is the decoded whole-file state. companies preserves the key
// order of the underlying document, which is insertion order.
type planDB struct {
	companies []string
	plans     map[string]planEnvelope
}

// NewPlanStore creates a store over the given file path. The file is
// created lazily on first save.
func NewPlanStore(path string) *PlanStore {
	return &PlanStore{path: path}
}

// Path returns the backing file path.
func (s *PlanStore) Path() string {
	return s.path
}

// Save upserts the plan for a company, overwriting any existing entry
// under that exact key.
func (s *PlanStore) Save(company string, plan research.AccountPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.load()
	if _, exists := db.plans[company]; !exists {
		db.companies = append(db.companies, company)
	}
	db.plans[company] = planEnvelope{
		Plan:      plan.Clone(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Version:   StoreVersion,
	}

	if err := s.persist(db); err != nil {
		logging.Store("save failed for %q: %v", company, err)
		return err
	}
	logging.Store("saved plan for %q (%d sections)", company, len(plan))
	return nil
}

// Load returns the plan for a company, or ok=false when the company is
// unknown.
func (s *PlanStore) Load(company string) (research.AccountPlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, ok := s.load().plans[company]
	if !ok {
		return nil, false
	}
	return env.Plan.Clone(), true
}

// ListCompanies returns every stored company in the order read back from
// the underlying document.
func (s *PlanStore) ListCompanies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.load().companies...)
}

// UpdateSection replaces the content of one existing section and
// re-persists the whole collection. It returns false without touching the
// file when the company is unknown, the section does not already exist, or
// the write fails. New sections are never created here.
func (s *PlanStore) UpdateSection(company, sectionKey, newContent string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.load()
	env, ok := db.plans[company]
	if !ok {
		logging.Store("update rejected: unknown company %q", company)
		return false
	}
	if _, ok := env.Plan[sectionKey]; !ok {
		logging.Store("update rejected: company %q has no section %q", company, sectionKey)
		return false
	}

	env.Plan[sectionKey] = newContent
	db.plans[company] = env

	if err := s.persist(db); err != nil {
		logging.Store("update failed for %q/%q: %v", company, sectionKey, err)
		return false
	}
	logging.Store("updated section %q for %q", sectionKey, company)
	return true
}

// Export serializes one company's plan to an indented JSON string with an
// added exported_at timestamp. Returns an error for unknown companies.
func (s *PlanStore) Export(company string) (string, error) {
	plan, ok := s.Load(company)
	if !ok {
		return "", fmt.Errorf("no plan stored for %q", company)
	}

	out := plan.Clone()
	out["exported_at"] = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize plan: %w", err)
	}
	return string(data), nil
}

// load reads and decodes the whole document. Missing and empty files mean
// an empty store; a corrupt file is reset to an empty document rather than
// propagating a parse error to the caller.
func (s *PlanStore) load() *planDB {
	db := &planDB{plans: make(map[string]planEnvelope)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Store("read failed, treating as empty: %v", err)
		}
		return db
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return db
	}

	companies, plans, err := decodeOrdered(data)
	if err != nil {
		logging.Store("store file corrupt, resetting: %v", err)
		s.reset()
		return db
	}

	db.companies = companies
	db.plans = plans
	return db
}

// decodeOrdered parses the top-level object while preserving key order.
// Each value may be a plan envelope or a bare section map.
func decodeOrdered(data []byte) ([]string, map[string]planEnvelope, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("store document is not a JSON object")
	}

	var companies []string
	plans := make(map[string]planEnvelope)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		company, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("non-string key in store document")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}

		env, err := decodeEntry(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("entry %q: %w", company, err)
		}

		if _, dup := plans[company]; !dup {
			companies = append(companies, company)
		}
		plans[company] = env
	}

	// Consume the closing brace so trailing garbage is caught.
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	return companies, plans, nil
}

// decodeEntry accepts both persisted shapes.
func decodeEntry(raw json.RawMessage) (planEnvelope, error) {
	var env planEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Plan != nil {
		return env, nil
	}

	var plan research.AccountPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return planEnvelope{}, err
	}
	return planEnvelope{Plan: plan}, nil
}

// persist writes the whole document back, keys in insertion order,
// two-space indentation.
func (s *PlanStore) persist(db *planDB) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("{")
	for i, company := range db.companies {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")

		key, err := json.Marshal(company)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteString(": ")

		val, err := json.MarshalIndent(db.plans[company], "  ", "  ")
		if err != nil {
			return err
		}
		buf.Write(val)
	}
	if len(db.companies) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}")

	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	return nil
}

// reset self-heals a corrupt store file back to an empty document.
func (s *PlanStore) reset() {
	if err := os.WriteFile(s.path, []byte("{}"), 0644); err != nil {
		logging.Store("reset failed: %v", err)
	}
}
