package titleparser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  Fields
	}{
		{
			name:  "all tags present",
			title: "[RECRUITING] [ONLINE] [ONESHOT] [D&D] Lost Mine of Phandelver",
			want: Fields{
				Status:    "RECRUITING",
				Mode:      "ONLINE",
				QuestType: "ONESHOT",
				System:    "D&D",
				Title:     "Lost Mine of Phandelver",
			},
		},
		{
			name:  "tags in arbitrary order",
			title: "Curse of Strahd [CAMPAIGN] [offline] [full]",
			want: Fields{
				Status:    "FULL",
				Mode:      "OFFLINE",
				QuestType: "CAMPAIGN",
				Title:     "Curse of Strahd",
			},
		},
		{
			name:  "first unknown token becomes the system, later ones ignored",
			title: "[Pathfinder] [Homebrew] The Long Road",
			want: Fields{
				System: "PATHFINDER",
				Title:  "The Long Road",
			},
		},
		{
			name:  "no tags at all",
			title: "Just a plain thread",
			want:  Fields{Title: "Just a plain thread"},
		},
		{
			name:  "only tags falls back to default title",
			title: "[RECRUITING] [ONESHOT]",
			want: Fields{
				Status:    "RECRUITING",
				QuestType: "ONESHOT",
				Title:     DefaultTitle,
			},
		},
		{
			name:  "empty input",
			title: "",
			want:  Fields{Title: DefaultTitle},
		},
		{
			name:  "tokens are trimmed and uppercased",
			title: "[ recruiting ] [ cyberpunk ] Neon Nights",
			want: Fields{
				Status: "RECRUITING",
				System: "CYBERPUNK",
				Title:  "Neon Nights",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.title)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.title, diff)
			}
		})
	}
}

func TestBuildCanonicalTitle(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   string
	}{
		{
			name: "all fields",
			fields: Fields{
				Status:    "RECRUITING",
				Mode:      "ONLINE",
				QuestType: "ONESHOT",
				System:    "D&D",
				Title:     "Lost Mine of Phandelver",
			},
			want: "[RECRUITING] [ONLINE] [ONESHOT] [D&D] Lost Mine of Phandelver",
		},
		{
			name:   "unset fields omitted",
			fields: Fields{Status: "FULL", Title: "Strahd"},
			want:   "[FULL] Strahd",
		},
		{
			name:   "empty title falls back to default",
			fields: Fields{Status: "RECRUITING"},
			want:   "[RECRUITING] " + DefaultTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildCanonicalTitle(tt.fields); got != tt.want {
				t.Errorf("BuildCanonicalTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Parse(BuildCanonicalTitle(Parse(T))) must be a fixed point for any input.
func TestRoundTripFixedPoint(t *testing.T) {
	titles := []string{
		"[RECRUITING] [ONLINE] [ONESHOT] [D&D] Lost Mine of Phandelver",
		"Curse of Strahd [CAMPAIGN] [offline]",
		"[Pathfinder] The Long Road",
		"plain title, no tags",
		"[RECRUITING]",
		"",
	}

	for _, title := range titles {
		once := Parse(title)
		twice := Parse(BuildCanonicalTitle(once))
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("round trip of %q not a fixed point (-first +second):\n%s", title, diff)
		}
	}
}

func TestDetectSystem(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"Looking for players for a D&D 5e oneshot this weekend", "D&D"},
		{"We'll be playing pathfinder 2e remastered", "PATHFINDER"},
		{"A Call of Cthulhu investigation set in 1920s Boston", "CALL OF CTHULHU"},
		{"blades in the dark, score-based heists", "BLADES IN THE DARK"},
		{"A freeform narrative game, system agnostic", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := DetectSystem(tt.body); got != tt.want {
			t.Errorf("DetectSystem(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestStatusColor(t *testing.T) {
	if StatusColor("RECRUITING") == StatusColor("CANCELLED") {
		t.Error("expected distinct colours for RECRUITING and CANCELLED")
	}
	if got := StatusColor("DELETED"); got != 0x99AAB5 {
		t.Errorf("expected grey fallback for DELETED, got %#x", got)
	}
}
