package badges

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
)

type definitionSearchItems []*models.BadgeDefinition

func (d definitionSearchItems) String(i int) string {
	return strings.ToLower(d[i].Name)
}

func (d definitionSearchItems) Len() int {
	return len(d)
}

// SearchDefinitions fuzzy-matches the catalog by badge name, best matches
// first. An empty query returns the whole catalog in id order.
func (s *Service) SearchDefinitions(ctx context.Context, query string) ([]*models.BadgeDefinition, error) {
	defs, err := s.cache.GetDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	items := make(definitionSearchItems, 0, len(defs))
	for _, def := range defs {
		items = append(items, def)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].BadgeID < items[j].BadgeID })

	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return items, nil
	}

	matches := fuzzy.FindFrom(query, items)
	results := make([]*models.BadgeDefinition, len(matches))
	for i, match := range matches {
		results[i] = items[match.Index]
	}

	return results, nil
}
