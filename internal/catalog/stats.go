package catalog

import "fmt"

// Stats summarizes the catalog.
type Stats struct {
	TotalGames   int
	LaunchTitles int
	RegionJP     int
	RegionEU     int
	RegionNA     int
	Publishers   int
}

// Stats computes catalog-wide counts in a single query.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{}
	err := s.db.QueryRow(`
		SELECT COUNT(*),
			COALESCE(SUM(is_launch_title), 0),
			COALESCE(SUM(region_jp), 0),
			COALESCE(SUM(region_eu), 0),
			COALESCE(SUM(region_na), 0),
			COUNT(DISTINCT NULLIF(publisher, ''))
		FROM games`,
	).Scan(&st.TotalGames, &st.LaunchTitles, &st.RegionJP, &st.RegionEU,
		&st.RegionNA, &st.Publishers)
	if err != nil {
		return nil, fmt.Errorf("catalog stats: %w", err)
	}
	return st, nil
}
