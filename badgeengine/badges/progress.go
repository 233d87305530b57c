package badges

import (
	"math"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
)

// BadgeProgress is one row of the achievement UI's progress report.
type BadgeProgress struct {
	BadgeID     string `json:"badgeId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Rarity      string `json:"rarity"`
	Points      int64  `json:"points"`
	Earned      bool   `json:"earned"`
	Progress    int64  `json:"progress"`
	MaxProgress int64  `json:"maxProgress"`
	Percentage  int    `json:"percentage"`
}

// progressCounter maps a criteria kind to the counter shown in the progress
// UI. Deliberately a subset of the evaluable kinds: anything without a
// natural single counter reports zero progress until earned.
func progressCounter(criteriaType models.CriteriaType, counts *models.ActivityCounts) int64 {
	switch criteriaType {
	case models.CriteriaTotalCards:
		return counts.TotalCards
	case models.CriteriaTradesCompleted:
		return counts.TradesCompleted
	case models.CriteriaCardsSold:
		return counts.CardsSold
	case models.CriteriaDecksCreated:
		return counts.TotalDecks
	case models.CriteriaFriendsCount:
		return counts.FriendsCount
	case models.CriteriaCommentsPosted:
		return counts.CommentsPosted
	case models.CriteriaLikesReceived:
		return counts.LikesReceived
	case models.CriteriaEventsParticipated:
		return counts.EventsParticipated
	default:
		return 0
	}
}

// buildProgress computes one report row from a definition, the ownership
// flag, and the activity snapshot. Owned badges report complete without
// recomputation.
func buildProgress(def *models.BadgeDefinition, earned bool, counts *models.ActivityCounts) BadgeProgress {
	maxProgress := def.Criteria.Threshold
	if maxProgress <= 0 {
		maxProgress = 1
	}

	var progress int64
	var percentage int
	if earned {
		progress = maxProgress
		percentage = 100
	} else {
		progress = progressCounter(def.Criteria.Type, counts)
		percentage = int(math.Round(float64(progress) / float64(maxProgress) * 100))
		if percentage > 100 {
			percentage = 100
		}
	}

	return BadgeProgress{
		BadgeID:     def.BadgeID,
		Name:        def.Name,
		Description: def.Description,
		Category:    def.Category,
		Icon:        def.Icon,
		Rarity:      def.Rarity,
		Points:      def.Points,
		Earned:      earned,
		Progress:    progress,
		MaxProgress: maxProgress,
		Percentage:  percentage,
	}
}
