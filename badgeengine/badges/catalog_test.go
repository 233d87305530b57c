package badges

import (
	"strings"
	"testing"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
)

func TestParseCatalog(t *testing.T) {
	doc := `[
		{
			"id": "collector_100",
			"name": "Serious Collector",
			"description": "Own 100 cards",
			"category": "collecting",
			"rarity": "uncommon",
			"points": 25,
			"criteria": { "type": "total_cards", "threshold": 100 }
		},
		{
			"id": "early_adopter",
			"name": "Early Adopter",
			"description": "Joined during the first year",
			"category": "special",
			"rarity": "epic",
			"points": 100,
			"criteria": { "type": "early_adopter", "cutoffDate": "2024-12-31T23:59:59Z" }
		}
	]`

	defs, err := ParseCatalog(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2", len(defs))
	}

	if defs[0].BadgeID != "collector_100" {
		t.Errorf("BadgeID = %q, want collector_100", defs[0].BadgeID)
	}
	if defs[0].Criteria.Type != models.CriteriaTotalCards {
		t.Errorf("Criteria.Type = %q, want total_cards", defs[0].Criteria.Type)
	}
	if defs[0].Criteria.Threshold != 100 {
		t.Errorf("Criteria.Threshold = %d, want 100", defs[0].Criteria.Threshold)
	}

	if defs[1].Criteria.CutoffDate == nil {
		t.Fatal("Criteria.CutoffDate = nil, want parsed timestamp")
	}
	if got := defs[1].Criteria.CutoffDate.Year(); got != 2024 {
		t.Errorf("CutoffDate year = %d, want 2024", got)
	}
}

func TestParseCatalogRejectsMissingID(t *testing.T) {
	doc := `[{ "name": "Nameless", "criteria": { "type": "total_cards" } }]`

	if _, err := ParseCatalog(strings.NewReader(doc)); err == nil {
		t.Fatal("ParseCatalog() expected error for entry without id")
	}
}
