package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"banker/events"
	"banker/models"
)

const (
	// DailyReward is the amount granted by a daily claim
	DailyReward int64 = 1

	// DailyCooldown is the minimum time between daily claims per user
	DailyCooldown = 24 * time.Hour

	// BetWinChance is the probability that a bet wins
	BetWinChance = 0.40

	// MinBetAmount and MaxBetAmount bound a single bet
	MinBetAmount int64 = 1
	MaxBetAmount int64 = 5
)

var (
	// ErrInsufficientBalance is returned when a bet exceeds the user's balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrNotAuthorized is returned when the actor lacks the required capability
	ErrNotAuthorized = errors.New("not authorized")
)

// economyService implements the EconomyService interface
type economyService struct {
	ledger     LedgerRepository
	authorizer Authorizer
	publisher  EventPublisher
	draw       func() float64
}

// NewEconomyService creates a new economy service
func NewEconomyService(ledger LedgerRepository, authorizer Authorizer, publisher EventPublisher) EconomyService {
	return NewEconomyServiceWithDraw(ledger, authorizer, publisher, rand.Float64)
}

// NewEconomyServiceWithDraw creates an economy service with a caller-supplied
// random draw in [0, 1), so bet outcomes can be fixed in tests
func NewEconomyServiceWithDraw(ledger LedgerRepository, authorizer Authorizer, publisher EventPublisher, draw func() float64) EconomyService {
	return &economyService{
		ledger:     ledger,
		authorizer: authorizer,
		publisher:  publisher,
		draw:       draw,
	}
}

func (s *economyService) Balance(ctx context.Context, userID string) (int64, error) {
	balance, err := s.ledger.GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

func (s *economyService) ClaimDaily(ctx context.Context, userID string) (*models.DailyResult, error) {
	newBalance, err := s.applyChange(ctx, userID, DailyReward, models.ChangeReasonDaily)
	if err != nil {
		return nil, fmt.Errorf("failed to grant daily reward: %w", err)
	}

	return &models.DailyResult{
		Reward:     DailyReward,
		NewBalance: newBalance,
	}, nil
}

func (s *economyService) PlaceBet(ctx context.Context, userID string, amount int64) (*models.BetResult, error) {
	if amount < MinBetAmount || amount > MaxBetAmount {
		return nil, fmt.Errorf("bet amount must be between %d and %d", MinBetAmount, MaxBetAmount)
	}

	balance, err := s.ledger.GetBalance(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	if amount > balance {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, balance, amount)
	}

	won := s.draw() < BetWinChance

	delta := amount
	reason := models.ChangeReasonBetWin
	if !won {
		delta = -amount
		reason = models.ChangeReasonBetLoss
	}

	newBalance, err := s.applyChange(ctx, userID, delta, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to settle bet: %w", err)
	}

	return &models.BetResult{
		Won:        won,
		BetAmount:  amount,
		NewBalance: newBalance,
	}, nil
}

func (s *economyService) Mint(ctx context.Context, actorID, targetID string, amount int64) (int64, error) {
	if !s.authorizer.Authorize(actorID, CapabilityMintFunds) {
		return 0, ErrNotAuthorized
	}
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	newBalance, err := s.applyChange(ctx, targetID, amount, models.ChangeReasonAdminAdd)
	if err != nil {
		return 0, fmt.Errorf("failed to add balance: %w", err)
	}
	return newBalance, nil
}

func (s *economyService) Confiscate(ctx context.Context, actorID, targetID string, amount int64) (int64, error) {
	if !s.authorizer.Authorize(actorID, CapabilityConfiscateFunds) {
		return 0, ErrNotAuthorized
	}
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	// No floor check: a deduction may drive the balance negative. This
	// mirrors the product's asymmetry with bets, which do require funds.
	newBalance, err := s.applyChange(ctx, targetID, -amount, models.ChangeReasonAdminDeduct)
	if err != nil {
		return 0, fmt.Errorf("failed to deduct balance: %w", err)
	}
	return newBalance, nil
}

// applyChange is the single entry point for every balance mutation. It writes
// through the ledger and publishes the audit event.
func (s *economyService) applyChange(ctx context.Context, userID string, delta int64, reason models.ChangeReason) (int64, error) {
	newBalance, err := s.ledger.UpdateBalance(ctx, userID, delta)
	if err != nil {
		return 0, err
	}

	s.publisher.Publish(events.BalanceChangeEvent{
		UserID:       userID,
		OldBalance:   newBalance - delta,
		NewBalance:   newBalance,
		ChangeAmount: delta,
		Reason:       reason,
	})

	return newBalance, nil
}
