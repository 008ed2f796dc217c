package catalog

import "testing"

func searchFixture(t *testing.T) *Store {
	t.Helper()
	store := NewStore(setupTestDB(t))
	games := []*Game{
		{Title: "Metal Gear Solid", Publisher: "Konami", SerialNumber: "SLUS-00594"},
		{Title: "Silent Hill", Publisher: "Konami", SerialNumber: "SLUS-00707"},
		{Title: "Gran Turismo", Publisher: "SCEA", SerialNumber: "SCUS-94194"},
	}
	for _, g := range games {
		if err := store.AddGame(g); err != nil {
			t.Fatalf("AddGame %q: %v", g.Title, err)
		}
	}
	return store
}

func TestStore_SearchGames_Substring(t *testing.T) {
	store := searchFixture(t)

	got, err := store.SearchGames("gear")
	if err != nil {
		t.Fatalf("SearchGames: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Metal Gear Solid" {
		t.Errorf("title search wrong: %+v", got)
	}

	got, err = store.SearchGames("Konami")
	if err != nil {
		t.Fatalf("SearchGames: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("publisher search got %d rows, want 2", len(got))
	}

	got, err = store.SearchGames("SCUS")
	if err != nil {
		t.Fatalf("SearchGames: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Gran Turismo" {
		t.Errorf("serial search wrong: %+v", got)
	}
}

func TestStore_SearchGames_FuzzyFallback(t *testing.T) {
	store := searchFixture(t)

	// No substring hit; the fuzzy pass should still find the title.
	got, err := store.SearchGames("Metl Gear Solid")
	if err != nil {
		t.Fatalf("SearchGames: %v", err)
	}
	if len(got) == 0 || got[0].Title != "Metal Gear Solid" {
		t.Errorf("fuzzy fallback wrong: %+v", got)
	}
}

func TestStore_SearchGames_NoHit(t *testing.T) {
	store := searchFixture(t)

	got, err := store.SearchGames("zzzz")
	if err != nil {
		t.Fatalf("SearchGames: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d rows, want 0", len(got))
	}
}

func TestStore_Stats(t *testing.T) {
	store := NewStore(setupTestDB(t))

	games := []*Game{
		{Title: "Ridge Racer", Publisher: "Namco", RegionJP: true, RegionNA: true, IsLaunchTitle: true},
		{Title: "Tekken", Publisher: "Namco", RegionJP: true},
		{Title: "Wipeout", Publisher: "Psygnosis", RegionEU: true},
	}
	for _, g := range games {
		if err := store.AddGame(g); err != nil {
			t.Fatalf("AddGame %q: %v", g.Title, err)
		}
	}

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalGames != 3 || st.LaunchTitles != 1 || st.Publishers != 2 {
		t.Errorf("stats wrong: %+v", st)
	}
	if st.RegionJP != 2 || st.RegionEU != 1 || st.RegionNA != 1 {
		t.Errorf("region counts wrong: %+v", st)
	}
}
