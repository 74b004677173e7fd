package language

import "testing"

func TestResolveCodes(t *testing.T) {
	cases := []struct {
		in   string
		code string
	}{
		{"ja", "ja"},
		{"jpn", "ja"},
		{"Japanese", "ja"},
		{"es", "es"},
		{"FRENCH", "fr"},
		{"pt-BR", "pt"},
	}
	for _, tc := range cases {
		lang, err := Resolve(tc.in)
		if err != nil {
			t.Errorf("Resolve(%q): %v", tc.in, err)
			continue
		}
		if lang.Code != tc.code {
			t.Errorf("Resolve(%q).Code = %q, want %q", tc.in, lang.Code, tc.code)
		}
		if lang.Name == "" {
			t.Errorf("Resolve(%q) has empty display name", tc.in)
		}
	}
}

func TestResolveRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "   ", "!!", "notalanguage"} {
		if _, err := Resolve(bad); err == nil {
			t.Errorf("Resolve(%q) should fail", bad)
		}
	}
}
