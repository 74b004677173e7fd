package export

import "testing"

func TestEpisodePrefix(t *testing.T) {
	cases := []struct {
		stem string
		want string
	}{
		{"series_01_02", "01.02 "},
		{"film", ""},
		{"lesson_03", "03 "},
		{"season2_episode_10-11", "10.11 "},
		{"42", "42 "},
		// The numeric group must sit at the very end of the stem.
		{"show.2020.1080p", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := EpisodePrefix(tc.stem); got != tc.want {
			t.Errorf("EpisodePrefix(%q) = %q, want %q", tc.stem, got, tc.want)
		}
	}
}
