package badges

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
)

// CatalogEntry is the wire form of a badge definition, as found in
// catalog.json and the admin catalog endpoint.
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
	Points      int64  `json:"points"`
	Criteria    struct {
		Type       string     `json:"type"`
		Threshold  int64      `json:"threshold,omitempty"`
		CutoffDate *time.Time `json:"cutoffDate,omitempty"`
	} `json:"criteria"`
}

// ParseCatalog decodes a catalog document into badge definitions.
func ParseCatalog(r io.Reader) ([]*models.BadgeDefinition, error) {
	var entries []CatalogEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return CatalogToDefinitions(entries)
}

// CatalogToDefinitions converts wire entries into model definitions,
// rejecting entries without an id.
func CatalogToDefinitions(entries []CatalogEntry) ([]*models.BadgeDefinition, error) {
	defs := make([]*models.BadgeDefinition, 0, len(entries))
	for i, entry := range entries {
		if entry.ID == "" {
			return nil, fmt.Errorf("catalog entry %d has no id", i)
		}
		defs = append(defs, &models.BadgeDefinition{
			BadgeID:     entry.ID,
			Name:        entry.Name,
			Description: entry.Description,
			Icon:        entry.Icon,
			Category:    entry.Category,
			Rarity:      entry.Rarity,
			Points:      entry.Points,
			Criteria: models.Criteria{
				Type:       models.CriteriaType(entry.Criteria.Type),
				Threshold:  entry.Criteria.Threshold,
				CutoffDate: entry.Criteria.CutoffDate,
			},
		})
	}
	return defs, nil
}
