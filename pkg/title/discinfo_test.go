package title

import "testing"

func TestExtractDiscInfo(t *testing.T) {
	tests := []struct {
		filename   string
		wantNumber int
		wantTotal  int
	}{
		{"Final Fantasy VII (Disc 2 of 3).bin", 2, 3},
		{"Metal Gear Solid disk 2", 2, 1},
		{"Wild Arms cd2", 2, 1},
		{"Riven (Disc 4/5).cue", 4, 5},
		{"Tekken 3.iso", 1, 1},
		{"", 1, 1},
		// The number and total searches are independent: "/2" below feeds the
		// total even though it has nothing to do with disc numbering.
		{"Some Game (Disc 1) (NTSC/2 players)", 1, 2},
		// A cd-style token overrides a disc-style number.
		{"Weird Dump disc 1 cd 3", 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			number, total := ExtractDiscInfo(tt.filename)
			if number != tt.wantNumber || total != tt.wantTotal {
				t.Errorf("ExtractDiscInfo(%q) = (%d, %d), want (%d, %d)",
					tt.filename, number, total, tt.wantNumber, tt.wantTotal)
			}
		})
	}
}

func TestDetectRegions(t *testing.T) {
	tests := []struct {
		filename string
		want     RegionSet
	}{
		{"Crash Bandicoot (USA).bin", RegionSet{NA: true}},
		{"Crash Bandicoot (NTSC-U).bin", RegionSet{NA: true}},
		{"Tekken 3 (Europe) (PAL)", RegionSet{EU: true}},
		{"Biohazard (J).bin", RegionSet{JP: true}},
		{"Gran Turismo 2 (USA) (Japan)", RegionSet{NA: true, JP: true}},
		{"Gran Turismo 2", RegionSet{}},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := DetectRegions(tt.filename); got != tt.want {
				t.Errorf("DetectRegions(%q) = %+v, want %+v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestRegionSetString(t *testing.T) {
	tests := []struct {
		set  RegionSet
		want string
	}{
		{RegionSet{}, "unknown"},
		{RegionSet{NA: true}, "NTSC-U"},
		{RegionSet{EU: true, JP: true}, "PAL/NTSC-J"},
	}
	for _, tt := range tests {
		if got := tt.set.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.set, got, tt.want)
		}
	}
}
