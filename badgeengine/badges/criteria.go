package badges

import (
	"log/slog"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
)

// Evaluate reports whether an activity snapshot satisfies a badge's
// criteria. It is a total, side-effect-free function: a counter exactly
// equal to the threshold qualifies, and unknown criteria kinds evaluate
// false so future catalog entries never crash a pass.
func Evaluate(criteria models.Criteria, counts *models.ActivityCounts) bool {
	switch criteria.Type {
	case models.CriteriaAccountCreated:
		return true

	case models.CriteriaCardsAdded, models.CriteriaTotalCards:
		return counts.TotalCards >= criteria.Threshold

	case models.CriteriaTradesCompleted:
		return counts.TradesCompleted >= criteria.Threshold

	case models.CriteriaCardsSold:
		return counts.CardsSold >= criteria.Threshold

	case models.CriteriaPositiveReviews, models.CriteriaPositiveRatings:
		return counts.PositiveReviews+counts.PositiveRatings >= criteria.Threshold

	case models.CriteriaTotalTransactions, models.CriteriaTradesOrSales:
		return counts.TotalTransactions >= criteria.Threshold

	case models.CriteriaMarketplacePurchases:
		return counts.MarketplacePurchases >= criteria.Threshold

	case models.CriteriaCardsListed:
		return counts.CardsListed >= criteria.Threshold

	case models.CriteriaRareCards:
		return counts.RareCards >= criteria.Threshold

	case models.CriteriaUltraRareCards:
		return counts.UltraRareCards >= criteria.Threshold

	case models.CriteriaCompleteSets:
		// Set completion detection is not implemented yet.
		return false

	case models.CriteriaDecksCreated:
		return counts.TotalDecks >= criteria.Threshold

	case models.CriteriaPublicDecks:
		return counts.TotalPublicDecks >= criteria.Threshold

	case models.CriteriaFriendsCount:
		return counts.FriendsCount >= criteria.Threshold

	case models.CriteriaCommentsPosted:
		return counts.CommentsPosted >= criteria.Threshold

	case models.CriteriaLikesReceived:
		return counts.LikesReceived >= criteria.Threshold

	case models.CriteriaGroupsCreated:
		return counts.GroupsCreated >= criteria.Threshold

	case models.CriteriaProfileCompleted:
		return counts.HasProfilePicture && counts.HasBio

	case models.CriteriaArticlesPublished:
		return counts.ArticlesPublished >= criteria.Threshold

	case models.CriteriaEventsParticipated:
		return counts.EventsParticipated >= criteria.Threshold

	case models.CriteriaGamesPlayed:
		return counts.GamesPlayed >= criteria.Threshold

	case models.CriteriaTournamentsEntered:
		return counts.TournamentsEntered >= criteria.Threshold

	case models.CriteriaTournamentsWon:
		return counts.TournamentsWon >= criteria.Threshold

	case models.CriteriaPurchasesMade:
		return counts.PurchasesMade >= criteria.Threshold

	case models.CriteriaTotalSpent:
		return counts.TotalSpent >= criteria.Threshold

	case models.CriteriaPremiumSubscription:
		return counts.HasPremium

	case models.CriteriaEarlyAdopter, models.CriteriaBetaUser:
		if counts.AccountCreatedAt == nil || criteria.CutoffDate == nil {
			return false
		}
		return !counts.AccountCreatedAt.After(*criteria.CutoffDate)

	case models.CriteriaPostsOrComments:
		return counts.PostCount+counts.CommentsPosted >= criteria.Threshold

	default:
		slog.Warn("Unknown badge criteria type",
			slog.String("criteria_type", string(criteria.Type)))
		return false
	}
}
