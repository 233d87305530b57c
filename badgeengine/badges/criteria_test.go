package badges

import (
	"testing"
	"time"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
)

func TestEvaluate(t *testing.T) {
	cutoff := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	before := cutoff.Add(-24 * time.Hour)
	after := cutoff.Add(24 * time.Hour)

	tests := []struct {
		name     string
		criteria models.Criteria
		counts   models.ActivityCounts
		want     bool
	}{
		{
			name:     "account created is always satisfied",
			criteria: models.Criteria{Type: models.CriteriaAccountCreated},
			counts:   models.ActivityCounts{},
			want:     true,
		},
		{
			name:     "counter below threshold",
			criteria: models.Criteria{Type: models.CriteriaTotalCards, Threshold: 100},
			counts:   models.ActivityCounts{TotalCards: 99},
			want:     false,
		},
		{
			name:     "counter exactly at threshold qualifies",
			criteria: models.Criteria{Type: models.CriteriaTotalCards, Threshold: 100},
			counts:   models.ActivityCounts{TotalCards: 100},
			want:     true,
		},
		{
			name:     "cards added shares the collection counter",
			criteria: models.Criteria{Type: models.CriteriaCardsAdded, Threshold: 1},
			counts:   models.ActivityCounts{TotalCards: 1},
			want:     true,
		},
		{
			name:     "reviews and ratings are summed",
			criteria: models.Criteria{Type: models.CriteriaPositiveReviews, Threshold: 10},
			counts:   models.ActivityCounts{PositiveReviews: 4, PositiveRatings: 6},
			want:     true,
		},
		{
			name:     "trades or sales uses the combined transaction counter",
			criteria: models.Criteria{Type: models.CriteriaTradesOrSales, Threshold: 10},
			counts:   models.ActivityCounts{TotalTransactions: 10},
			want:     true,
		},
		{
			name:     "ultra rare counter is independent of rare threshold",
			criteria: models.Criteria{Type: models.CriteriaUltraRareCards, Threshold: 5},
			counts:   models.ActivityCounts{RareCards: 20, UltraRareCards: 4},
			want:     false,
		},
		{
			name:     "complete sets is never satisfied",
			criteria: models.Criteria{Type: models.CriteriaCompleteSets, Threshold: 1},
			counts:   models.ActivityCounts{TotalCards: 10000},
			want:     false,
		},
		{
			name:     "profile completed needs picture and bio",
			criteria: models.Criteria{Type: models.CriteriaProfileCompleted},
			counts:   models.ActivityCounts{HasProfilePicture: true, HasBio: false},
			want:     false,
		},
		{
			name:     "profile completed with both",
			criteria: models.Criteria{Type: models.CriteriaProfileCompleted},
			counts:   models.ActivityCounts{HasProfilePicture: true, HasBio: true},
			want:     true,
		},
		{
			name:     "premium subscription flag",
			criteria: models.Criteria{Type: models.CriteriaPremiumSubscription},
			counts:   models.ActivityCounts{HasPremium: true},
			want:     true,
		},
		{
			name:     "early adopter before cutoff",
			criteria: models.Criteria{Type: models.CriteriaEarlyAdopter, CutoffDate: &cutoff},
			counts:   models.ActivityCounts{AccountCreatedAt: &before},
			want:     true,
		},
		{
			name:     "early adopter exactly at cutoff",
			criteria: models.Criteria{Type: models.CriteriaEarlyAdopter, CutoffDate: &cutoff},
			counts:   models.ActivityCounts{AccountCreatedAt: &cutoff},
			want:     true,
		},
		{
			name:     "early adopter after cutoff",
			criteria: models.Criteria{Type: models.CriteriaEarlyAdopter, CutoffDate: &cutoff},
			counts:   models.ActivityCounts{AccountCreatedAt: &after},
			want:     false,
		},
		{
			name:     "early adopter without account timestamp",
			criteria: models.Criteria{Type: models.CriteriaEarlyAdopter, CutoffDate: &cutoff},
			counts:   models.ActivityCounts{},
			want:     false,
		},
		{
			name:     "beta user without cutoff configured",
			criteria: models.Criteria{Type: models.CriteriaBetaUser},
			counts:   models.ActivityCounts{AccountCreatedAt: &before},
			want:     false,
		},
		{
			name:     "posts or comments are summed",
			criteria: models.Criteria{Type: models.CriteriaPostsOrComments, Threshold: 200},
			counts:   models.ActivityCounts{PostCount: 120, CommentsPosted: 80},
			want:     true,
		},
		{
			name:     "unknown criteria type is never satisfied",
			criteria: models.Criteria{Type: "seasonal_login_streak", Threshold: 1},
			counts:   models.ActivityCounts{TotalCards: 500},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.criteria, &tt.counts); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}
