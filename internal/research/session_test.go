package research

import "testing"

func TestSessionRecordAndClear(t *testing.T) {
	s := NewSession()
	if s.ID == "" {
		t.Error("session ID empty")
	}

	s.Record("q1", "a1")
	s.Record("q2", "a2")
	if len(s.History) != 2 || s.History[1].Assistant != "a2" {
		t.Errorf("History = %v", s.History)
	}

	s.ClearHistory()
	if len(s.History) != 0 {
		t.Error("ClearHistory left turns behind")
	}
}

func TestExtractCompanyName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"research Tesla", "Tesla"},
		{"Tell me about Acme Corp", "Acme Corp"},
		{"find information on Globex", "Globex"},
		{"Initech", "Initech"},
		// Keywords must not match inside a name.
		{"Amazon", "Amazon"},
		{"Honeywell", "Honeywell"},
		{"Monsanto", "Monsanto"},
		{"research Monsanto", "Monsanto"},
		{"  research  ", ""},
	}
	for _, tc := range cases {
		if got := ExtractCompanyName(tc.in); got != tc.want {
			t.Errorf("ExtractCompanyName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
