package models

import "time"

// ActivityCounts is the flat snapshot of a user's lifetime activity built
// fresh for every evaluation pass. It is never persisted.
type ActivityCounts struct {
	TotalCards         int64
	RareCards          int64
	UltraRareCards     int64
	TotalDecks         int64
	TotalPublicDecks   int64
	FriendsCount       int64
	ArticlesPublished  int64
	GroupsCreated      int64
	EventsParticipated int64

	TradesCompleted      int64
	CardsSold            int64
	PositiveReviews      int64
	PositiveRatings      int64
	TotalTransactions    int64
	MarketplacePurchases int64
	CardsListed          int64
	CommentsPosted       int64
	LikesReceived        int64
	PostCount            int64
	GamesPlayed          int64
	TournamentsEntered   int64
	TournamentsWon       int64
	PurchasesMade        int64
	TotalSpent           int64

	HasPremium        bool
	HasProfilePicture bool
	HasBio            bool
	AccountCreatedAt  *time.Time
}
