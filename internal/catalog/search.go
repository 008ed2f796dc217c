package catalog

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SearchGames finds catalog rows whose title, publisher or serial contains
// the term. When the substring pass comes up empty, a fuzzy pass over titles
// catches misspellings, best matches first.
func (s *Store) SearchGames(term string) ([]*Game, error) {
	like := "%" + term + "%"
	rows, err := s.db.Query(`
		SELECT `+gameColumns+` FROM games
		WHERE title LIKE ? OR publisher LIKE ? OR serial_number LIKE ?
		ORDER BY title`,
		like, like, like,
	)
	if err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	if len(results) > 0 {
		return results, nil
	}
	return s.fuzzySearch(term)
}

func (s *Store) fuzzySearch(term string) ([]*Game, error) {
	games, err := s.ListGames(Filter{})
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(games))
	for i, g := range games {
		titles[i] = g.Title
	}

	ranks := fuzzy.RankFindNormalizedFold(term, titles)
	sort.Sort(ranks)

	results := make([]*Game, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, games[r.OriginalIndex])
	}
	return results, nil
}
