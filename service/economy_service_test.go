package service

import (
	"context"
	"errors"
	"testing"

	"banker/events"
	"banker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const ownerID = "1150785744135278602"

func newTestService(ledger *MockLedgerRepository, publisher *MockEventPublisher, draw float64) EconomyService {
	return NewEconomyServiceWithDraw(ledger, NewOwnerAuthorizer(ownerID), publisher, func() float64 { return draw })
}

func TestEconomyService_PlaceBet_Win(t *testing.T) {
	ctx := context.Background()

	mockLedger := new(MockLedgerRepository)
	mockPublisher := new(MockEventPublisher)

	// A draw just under the win chance is a win.
	svc := newTestService(mockLedger, mockPublisher, 0.39999)

	mockLedger.On("GetBalance", ctx, "user-1").Return(int64(5), nil)
	mockLedger.On("UpdateBalance", ctx, "user-1", int64(3)).Return(int64(8), nil)
	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		ev, ok := e.(events.BalanceChangeEvent)
		return ok &&
			ev.UserID == "user-1" &&
			ev.OldBalance == 5 &&
			ev.NewBalance == 8 &&
			ev.ChangeAmount == 3 &&
			ev.Reason == models.ChangeReasonBetWin
	})).Return()

	result, err := svc.PlaceBet(ctx, "user-1", 3)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.True(t, result.Won)
	assert.Equal(t, int64(3), result.BetAmount)
	assert.Equal(t, int64(8), result.NewBalance)

	mockLedger.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestEconomyService_PlaceBet_Loss(t *testing.T) {
	ctx := context.Background()

	mockLedger := new(MockLedgerRepository)
	mockPublisher := new(MockEventPublisher)

	// A draw exactly at the win chance is a loss.
	svc := newTestService(mockLedger, mockPublisher, 0.40000)

	mockLedger.On("GetBalance", ctx, "user-1").Return(int64(5), nil)
	mockLedger.On("UpdateBalance", ctx, "user-1", int64(-3)).Return(int64(2), nil)
	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		ev, ok := e.(events.BalanceChangeEvent)
		return ok &&
			ev.OldBalance == 5 &&
			ev.NewBalance == 2 &&
			ev.ChangeAmount == -3 &&
			ev.Reason == models.ChangeReasonBetLoss
	})).Return()

	result, err := svc.PlaceBet(ctx, "user-1", 3)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.False(t, result.Won)
	assert.Equal(t, int64(2), result.NewBalance)

	mockLedger.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestEconomyService_PlaceBet_InsufficientBalance(t *testing.T) {
	ctx := context.Background()

	mockLedger := new(MockLedgerRepository)
	mockPublisher := new(MockEventPublisher)

	svc := newTestService(mockLedger, mockPublisher, 0.0)

	mockLedger.On("GetBalance", ctx, "user-1").Return(int64(2), nil)

	result, err := svc.PlaceBet(ctx, "user-1", 5)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// The ledger must not be touched on a rejected bet.
	mockLedger.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
	mockPublisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestEconomyService_PlaceBet_AmountOutOfBounds(t *testing.T) {
	ctx := context.Background()

	mockLedger := new(MockLedgerRepository)
	mockPublisher := new(MockEventPublisher)

	svc := newTestService(mockLedger, mockPublisher, 0.0)

	for _, amount := range []int64{0, -1, 6, 100} {
		result, err := svc.PlaceBet(ctx, "user-1", amount)
		assert.Nil(t, result)
		assert.Error(t, err)
	}

	mockLedger.AssertNotCalled(t, "GetBalance", mock.Anything, mock.Anything)
}

func TestEconomyService_ClaimDaily(t *testing.T) {
	ctx := context.Background()

	mockLedger := new(MockLedgerRepository)
	mockPublisher := new(MockEventPublisher)

	svc := newTestService(mockLedger, mockPublisher, 0.0)

	mockLedger.On("UpdateBalance", ctx, "user-1", DailyReward).Return(int64(1), nil)
	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		ev, ok := e.(events.BalanceChangeEvent)
		return ok &&
			ev.OldBalance == 0 &&
			ev.NewBalance == 1 &&
			ev.Reason == models.ChangeReasonDaily
	})).Return()

	result, err := svc.ClaimDaily(ctx, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, DailyReward, result.Reward)
	assert.Equal(t, int64(1), result.NewBalance)

	mockLedger.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestEconomyService_Mint_AsOwner(t *testing.T) {
	ctx := context.Background()

	mockLedger := new(MockLedgerRepository)
	mockPublisher := new(MockEventPublisher)

	svc := newTestService(mockLedger, mockPublisher, 0.0)

	mockLedger.On("UpdateBalance", ctx, "target-1", int64(50)).Return(int64(50), nil)
	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		ev, ok := e.(events.BalanceChangeEvent)
		return ok && ev.Reason == models.ChangeReasonAdminAdd && ev.ChangeAmount == 50
	})).Return()

	newBalance, err := svc.Mint(ctx, ownerID, "target-1", 50)

	assert.NoError(t, err)
	assert.Equal(t, int64(50), newBalance)
	mockLedger.AssertExpectations(t)
}

func TestEconomyService_Mint_RejectsNonOwner(t *testing.T) {
	ctx := context.Background()

	mockLedger := new(MockLedgerRepository)
	mockPublisher := new(MockEventPublisher)

	svc := newTestService(mockLedger, mockPublisher, 0.0)

	newBalance, err := svc.Mint(ctx, "someone-else", "target-1", 50)

	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Zero(t, newBalance)

	// The target's balance must be left untouched.
	mockLedger.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestEconomyService_Confiscate_AllowsNegativeBalance(t *testing.T) {
	ctx := context.Background()

	mockLedger := new(MockLedgerRepository)
	mockPublisher := new(MockEventPublisher)

	svc := newTestService(mockLedger, mockPublisher, 0.0)

	// Deducting 10 from a balance of 3 lands at -7; no floor applies.
	mockLedger.On("UpdateBalance", ctx, "target-1", int64(-10)).Return(int64(-7), nil)
	mockPublisher.On("Publish", mock.MatchedBy(func(e events.Event) bool {
		ev, ok := e.(events.BalanceChangeEvent)
		return ok && ev.Reason == models.ChangeReasonAdminDeduct && ev.NewBalance == -7
	})).Return()

	newBalance, err := svc.Confiscate(ctx, ownerID, "target-1", 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(-7), newBalance)
	mockLedger.AssertExpectations(t)
}

func TestEconomyService_Confiscate_RejectsNonOwner(t *testing.T) {
	ctx := context.Background()

	mockLedger := new(MockLedgerRepository)
	mockPublisher := new(MockEventPublisher)

	svc := newTestService(mockLedger, mockPublisher, 0.0)

	_, err := svc.Confiscate(ctx, "someone-else", "target-1", 10)

	assert.ErrorIs(t, err, ErrNotAuthorized)
	mockLedger.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
}

func TestEconomyService_BalancePropagatesRepositoryError(t *testing.T) {
	ctx := context.Background()

	mockLedger := new(MockLedgerRepository)
	mockPublisher := new(MockEventPublisher)

	svc := newTestService(mockLedger, mockPublisher, 0.0)

	repoErr := errors.New("disk on fire")
	mockLedger.On("GetBalance", ctx, "user-1").Return(int64(0), repoErr)

	_, err := svc.Balance(ctx, "user-1")

	assert.ErrorIs(t, err, repoErr)
}

func TestOwnerAuthorizer(t *testing.T) {
	auth := NewOwnerAuthorizer(ownerID)

	assert.True(t, auth.Authorize(ownerID, CapabilityMintFunds))
	assert.True(t, auth.Authorize(ownerID, CapabilityConfiscateFunds))
	assert.False(t, auth.Authorize("imposter", CapabilityMintFunds))
	assert.False(t, auth.Authorize("", CapabilityMintFunds))

	// An unconfigured owner grants nothing, not everything.
	empty := NewOwnerAuthorizer("")
	assert.False(t, empty.Authorize("", CapabilityMintFunds))
}
