package articulation

import "testing"

func TestFindJSONObjects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", `{"a":1}`, []string{`{"a":1}`}},
		{"prose wrapped", `before {"a":1} after`, []string{`{"a":1}`}},
		{"two objects", `{"a":1} and {"b":2}`, []string{`{"a":1}`, `{"b":2}`}},
		{"nested", `{"a":{"b":2}}`, []string{`{"a":{"b":2}}`}},
		{"brace in string", `{"s":"x } y"}`, []string{`{"s":"x } y"}`}},
		{"escaped quote", `{"s":"he said \" {"}`, []string{`{"s":"he said \" {"}`}},
		{"stray closer", `} {"a":1}`, []string{`{"a":1}`}},
		{"unterminated", `{"a":1`, nil},
		{"none", `no objects`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findJSONObjects(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("findJSONObjects() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("candidate %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
