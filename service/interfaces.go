package service

import (
	"context"

	"banker/events"
	"banker/models"
)

// LedgerRepository defines the interface for balance data access. Implementations
// own the durability of the ledger; callers own any floor or ceiling policy.
type LedgerRepository interface {
	// GetBalance returns the stored balance for a user, or 0 if the user has
	// never been touched. It never fails on an absent user.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// UpdateBalance adds delta to the user's balance (creating the entry at 0
	// if absent), persists the change, and returns the new balance. The
	// read-modify-write sequence is atomic per implementation. No bounds
	// checking is applied.
	UpdateBalance(ctx context.Context, userID string, delta int64) (int64, error)

	// Load returns a snapshot of the entire ledger.
	Load(ctx context.Context) (map[string]int64, error)
}

// EconomyService defines the interface for the currency business rules
type EconomyService interface {
	// Balance returns the current balance for a user
	Balance(ctx context.Context, userID string) (int64, error)

	// ClaimDaily grants the daily reward to the user
	ClaimDaily(ctx context.Context, userID string) (*models.DailyResult, error)

	// PlaceBet wagers amount on a coin flip with a fixed win chance. The
	// amount must not exceed the user's current balance.
	PlaceBet(ctx context.Context, userID string, amount int64) (*models.BetResult, error)

	// Mint adds amount to the target's balance. The actor must hold the
	// mint capability.
	Mint(ctx context.Context, actorID, targetID string, amount int64) (int64, error)

	// Confiscate removes amount from the target's balance. No floor is
	// enforced; the result may be negative. The actor must hold the
	// confiscate capability.
	Confiscate(ctx context.Context, actorID, targetID string, amount int64) (int64, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}
