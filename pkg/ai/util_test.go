package ai

import (
	"testing"
)

type extractionPayload struct {
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
}

func TestUnmarshalFlexible(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  extractionPayload
	}{
		{
			name:  "standard json",
			input: `{"full_name": "Kim Novak", "roles": ["Madeleine"]}`,
			want:  extractionPayload{FullName: "Kim Novak", Roles: []string{"Madeleine"}},
		},
		{
			name:  "double encoded",
			input: `"{\"full_name\": \"Kim Novak\", \"roles\": [\"Madeleine\"]}"`,
			want:  extractionPayload{FullName: "Kim Novak", Roles: []string{"Madeleine"}},
		},
		{
			name:  "malformed but repairable",
			input: `{full_name: "Kim Novak", roles: ["Madeleine"],}`,
			want:  extractionPayload{FullName: "Kim Novak", Roles: []string{"Madeleine"}},
		},
		{
			name:  "duplicate leading brace",
			input: `{{"full_name": "Kim Novak", "roles": ["Madeleine"]}`,
			want:  extractionPayload{FullName: "Kim Novak", Roles: []string{"Madeleine"}},
		},
		{
			name:  "surrounding whitespace",
			input: "\n  {\"full_name\": \"Kim Novak\", \"roles\": [\"Madeleine\"]}  \n",
			want:  extractionPayload{FullName: "Kim Novak", Roles: []string{"Madeleine"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got extractionPayload
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.FullName != tc.want.FullName {
				t.Errorf("full_name = %q, want %q", got.FullName, tc.want.FullName)
			}
			if len(got.Roles) != len(tc.want.Roles) {
				t.Errorf("roles = %v, want %v", got.Roles, tc.want.Roles)
			}
		})
	}
}

func TestUnmarshalFlexibleRejectsGarbage(t *testing.T) {
	var got extractionPayload
	if err := UnmarshalFlexible("", &got); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema(&extractionPayload{})
	if schema == nil {
		t.Fatal("schema is nil")
	}
}
