package bill

import (
	"errors"

	"livin/internal/model"

	"github.com/samber/lo"
)

var (
	ErrNoParticipants   = errors.New("bill has no participants")
	ErrMissingSplit     = errors.New("custom split missing a participant")
	ErrSplitSumMismatch = errors.New("custom splits do not sum to the bill amount")
	ErrUnknownSplitType = errors.New("unknown split type")
)

// Shares computes what each participant owes, in cents. An equal split
// hands out the cent remainder one by one in splitBetween order, so the
// shares always sum to the exact amount. A custom split must name every
// participant and add up to the amount.
func Shares(b *model.Bill) (map[string]int64, error) {
	if len(b.SplitBetween) == 0 {
		return nil, ErrNoParticipants
	}

	switch b.SplitType {
	case model.SplitTypeEqual:
		return equalShares(b.Amount, b.SplitBetween), nil
	case model.SplitTypeCustom:
		return customShares(b)
	default:
		return nil, ErrUnknownSplitType
	}
}

func equalShares(amount int64, participants []string) map[string]int64 {
	n := int64(len(participants))
	base := amount / n
	remainder := amount % n

	shares := make(map[string]int64, n)
	for i, userID := range participants {
		share := base
		if int64(i) < remainder {
			share++
		}
		shares[userID] = share
	}
	return shares
}

func customShares(b *model.Bill) (map[string]int64, error) {
	shares := make(map[string]int64, len(b.SplitBetween))
	for _, userID := range b.SplitBetween {
		share, ok := b.CustomSplits[userID]
		if !ok {
			return nil, ErrMissingSplit
		}
		shares[userID] = share
	}

	total := lo.Sum(lo.Values(shares))
	if total != b.Amount {
		return nil, ErrSplitSumMismatch
	}
	return shares, nil
}

// Owed returns how much userID owes the payer on this bill. The payer's own
// share is already covered, so it owes nothing.
func Owed(b *model.Bill, userID string) (int64, error) {
	shares, err := Shares(b)
	if err != nil {
		return 0, err
	}

	if userID == b.PaidBy {
		return 0, nil
	}
	return shares[userID], nil
}
