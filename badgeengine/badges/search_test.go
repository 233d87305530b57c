package badges

import (
	"context"
	"testing"
	"time"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
)

func searchFixture() *Service {
	repo := newFakeBadgeRepo(
		&models.BadgeDefinition{BadgeID: "collector_100", Name: "Serious Collector"},
		&models.BadgeDefinition{BadgeID: "trader_50", Name: "Seasoned Trader"},
		&models.BadgeDefinition{BadgeID: "champion", Name: "Champion"},
	)
	cache := NewDefinitionCache(repo, time.Hour, nil)
	return NewService(cache, repo, newFakeActivityRepo())
}

func TestSearchDefinitionsEmptyQueryReturnsCatalog(t *testing.T) {
	svc := searchFixture()

	defs, err := svc.SearchDefinitions(context.Background(), "")
	if err != nil {
		t.Fatalf("SearchDefinitions() error = %v", err)
	}
	if len(defs) != 3 {
		t.Fatalf("got %d definitions, want 3", len(defs))
	}
	if defs[0].BadgeID != "champion" {
		t.Errorf("first id = %q, want champion (id order)", defs[0].BadgeID)
	}
}

func TestSearchDefinitionsFuzzyMatch(t *testing.T) {
	svc := searchFixture()

	defs, err := svc.SearchDefinitions(context.Background(), "collector")
	if err != nil {
		t.Fatalf("SearchDefinitions() error = %v", err)
	}
	if len(defs) == 0 {
		t.Fatal("got no matches, want at least one")
	}
	if defs[0].BadgeID != "collector_100" {
		t.Errorf("top match = %q, want collector_100", defs[0].BadgeID)
	}
}
