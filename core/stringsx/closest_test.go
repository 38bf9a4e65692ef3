package stringsx

import "testing"

func TestClosest(t *testing.T) {
	testCases := []struct {
		name       string
		s          string
		candidates []string
		expected   string
		found      bool
	}{
		{
			name:       "Single typo",
			s:          "SomeOtherMetod",
			candidates: []string{"SomeMethod", "SomeOtherMethod"},
			expected:   "SomeOtherMethod",
			found:      true,
		},
		{
			name:       "Case differs only",
			s:          "somemethod",
			candidates: []string{"SomeMethod", "SomeOtherMethod"},
			expected:   "SomeMethod",
			found:      true,
		},
		{
			name:       "Nothing similar",
			s:          "Transfer",
			candidates: []string{"SomeMethod", "SomeOtherMethod"},
			found:      false,
		},
		{
			name:       "Empty input",
			s:          "",
			candidates: []string{"a"},
			found:      false,
		},
		{
			name:       "No candidates",
			s:          "SomeMethod",
			candidates: nil,
			found:      false,
		},
		{
			name:       "Exact match is skipped",
			s:          "Alpha",
			candidates: []string{"Alpha"},
			found:      false,
		},
		{
			name:       "Tie resolved in candidate order",
			s:          "Bx",
			candidates: []string{"Ax", "Cx"},
			expected:   "Ax",
			found:      true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, found := Closest(tc.s, tc.candidates...)
			if found != tc.found {
				t.Fatalf("Test %s failed: expected found %v, got %v", tc.name, tc.found, found)
			}
			if found && result != tc.expected {
				t.Errorf("Test %s failed: expected '%s', got '%s'", tc.name, tc.expected, result)
			}
		})
	}
}

func TestSuggestion(t *testing.T) {
	if s := Suggestion("SomeMetod", "SomeMethod"); s != ", did you mean 'SomeMethod'?" {
		t.Errorf("unexpected suggestion '%s'", s)
	}

	if s := Suggestion("Unrelated", "SomeMethod"); s != "" {
		t.Errorf("expected empty suggestion, got '%s'", s)
	}
}
