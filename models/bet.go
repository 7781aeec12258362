package models

// BetResult represents the outcome of a coin-flip bet
type BetResult struct {
	Won        bool
	BetAmount  int64
	NewBalance int64
}

// DailyResult represents a claimed daily reward
type DailyResult struct {
	Reward     int64
	NewBalance int64
}
