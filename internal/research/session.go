package research

import (
	"strings"

	"github.com/google/uuid"
)

// Turn is one completed user/assistant exchange.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// Session is the per-conversation state passed into stage calls. Nothing
// here is process-global; the plan store is the only durable state.
type Session struct {
	ID        string
	Company   string
	Corpus    *ResearchCorpus
	Synthesis SynthesisResult
	History   []Turn
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// Record appends a completed exchange to the history.
func (s *Session) Record(user, assistant string) {
	s.History = append(s.History, Turn{User: user, Assistant: assistant})
}

// ClearHistory drops the conversation history, keeping research state.
func (s *Session) ClearHistory() {
	s.History = nil
}

// queryKeywords are stripped when pulling a company name out of a free-form
// research request ("research Tesla" -> "Tesla"). Longer phrases first so
// "tell me about" wins over "about".
var queryKeywords = []string{
	"tell me about", "find information", "research", "search", "about", "on",
}

// ExtractCompanyName strips leading research phrasing from a free-form
// query, leaving the company name as written. Keywords only match as whole
// leading words, never inside a name: "research Amazon" yields "Amazon" and
// a bare "Monsanto" passes through untouched, so the result is usable as a
// store key.
func ExtractCompanyName(query string) string {
	name := strings.TrimSpace(query)
	for {
		lower := strings.ToLower(name)
		stripped := false
		for _, kw := range queryKeywords {
			if lower == kw {
				return ""
			}
			if strings.HasPrefix(lower, kw+" ") {
				name = strings.TrimSpace(name[len(kw):])
				stripped = true
				break
			}
		}
		if !stripped {
			return name
		}
	}
}
