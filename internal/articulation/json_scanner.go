package articulation

// findJSONObjects scans the input for balanced top-level JSON object
// candidates and returns each as a substring, in order of appearance.
//
// A byte-level state machine tracks brace depth while skipping string
// contents and escape sequences, so braces inside JSON strings never
// unbalance the scan. Iterating bytes is safe for the ASCII delimiters
// involved: UTF-8 guarantees ASCII bytes never occur inside a multi-byte
// sequence.
func findJSONObjects(s string) []string {
	var (
		candidates []string
		depth      int
		start      = -1
		inString   bool
		escape     bool
	)

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}

		if inString {
			switch b {
			case '\\':
				escape = true
			case '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue // stray closer in prose
			}
			depth--
			if depth == 0 && start != -1 {
				candidates = append(candidates, s[start:i+1])
				start = -1
			}
		}
	}

	return candidates
}
