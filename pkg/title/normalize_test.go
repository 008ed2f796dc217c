package title

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Metal Gear Solid (Disc 1) [SLUS-00594].bin", "Metal Gear Solid"},
		{"Final_Fantasy_VII_(Disc_2_of_3)", "Final Fantasy VII"},
		{"Chrono_Cross_(USA).iso", "Chrono Cross"},
		{"CC", "Chrono Cross"},
		{"MGS", "Metal Gear Solid"},
		{"Metal Gear", "Metal Gear Solid"},
		{"GT 2", "Gran Turismo 2"},
		{"Gran Turismo 2 Arcade Mode", "Gran Turismo 2"},
		{"Crash 3", "Crash Bandicoot: Warped"},
		{"Ape Excape", "Ape Escape"},
		{"House_of_Dead_2", "House of the Dead 2"},
		{"Shin Megami Tensei Soul Hackers", "Shin Megami Tensei: Devil Summoner: Soul Hackers"},
		{"Wipeout3", "Wipeout 3"},
		{"Tekken 3 (Europe) (PAL)", "Tekken 3"},
		{"  Extra   Spaces  ", "Extra Spaces"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Normalization must be a fixed point: running it twice can never produce a
// different string than running it once.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Metal Gear Solid (Disc 1) [SLUS-00594].bin",
		"Final_Fantasy_VII_(Disc_2_of_3)",
		"Shin Megami Tensei Soul Hackers",
		"Crash 3",
		"GT 2",
		"Spyro 2 Riptos Rage",
		"House_of_Dead_2",
		"Wild.Arms.(USA).bin",
		"some random title 99",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeMalformedInput(t *testing.T) {
	// Nothing here should panic or error; worst case the trimmed input comes
	// back partially cleaned.
	inputs := []string{"(((", "[unclosed", "...", "___", "\x00\x01\x02", ")("}
	for _, in := range inputs {
		_ = Normalize(in)
	}
}
