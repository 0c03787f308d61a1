package bill

import (
	"testing"

	"livin/internal/model"

	"github.com/stretchr/testify/require"
)

func TestShares_EqualSplit(t *testing.T) {
	req := require.New(t)

	b := &model.Bill{
		Amount:       9000,
		SplitType:    model.SplitTypeEqual,
		SplitBetween: []string{"a", "b", "c"},
	}

	shares, err := Shares(b)
	req.NoError(err)
	req.Equal(map[string]int64{"a": 3000, "b": 3000, "c": 3000}, shares)
}

func TestShares_EqualSplitRemainder(t *testing.T) {
	req := require.New(t)

	// 100.00 over three people: the first cent of remainder goes to "a".
	b := &model.Bill{
		Amount:       10000,
		SplitType:    model.SplitTypeEqual,
		SplitBetween: []string{"a", "b", "c"},
	}

	shares, err := Shares(b)
	req.NoError(err)
	req.Equal(int64(3334), shares["a"])
	req.Equal(int64(3333), shares["b"])
	req.Equal(int64(3333), shares["c"])

	var total int64
	for _, s := range shares {
		total += s
	}
	req.Equal(b.Amount, total)
}

func TestShares_CustomSplit(t *testing.T) {
	req := require.New(t)

	b := &model.Bill{
		Amount:       5000,
		SplitType:    model.SplitTypeCustom,
		SplitBetween: []string{"a", "b"},
		CustomSplits: map[string]int64{"a": 2000, "b": 3000},
	}

	shares, err := Shares(b)
	req.NoError(err)
	req.Equal(int64(2000), shares["a"])
	req.Equal(int64(3000), shares["b"])
}

func TestShares_CustomSplitErrors(t *testing.T) {
	req := require.New(t)

	missing := &model.Bill{
		Amount:       5000,
		SplitType:    model.SplitTypeCustom,
		SplitBetween: []string{"a", "b"},
		CustomSplits: map[string]int64{"a": 5000},
	}
	_, err := Shares(missing)
	req.ErrorIs(err, ErrMissingSplit)

	mismatch := &model.Bill{
		Amount:       5000,
		SplitType:    model.SplitTypeCustom,
		SplitBetween: []string{"a", "b"},
		CustomSplits: map[string]int64{"a": 2000, "b": 2000},
	}
	_, err = Shares(mismatch)
	req.ErrorIs(err, ErrSplitSumMismatch)
}

func TestShares_NoParticipants(t *testing.T) {
	_, err := Shares(&model.Bill{Amount: 100, SplitType: model.SplitTypeEqual})
	require.ErrorIs(t, err, ErrNoParticipants)
}

func TestOwed(t *testing.T) {
	req := require.New(t)

	b := &model.Bill{
		Amount:       6000,
		PaidBy:       "a",
		SplitType:    model.SplitTypeEqual,
		SplitBetween: []string{"a", "b", "c"},
	}

	owed, err := Owed(b, "b")
	req.NoError(err)
	req.Equal(int64(2000), owed)

	owed, err = Owed(b, "a")
	req.NoError(err)
	req.Zero(owed)
}
