package domain_test

import (
	"testing"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestVestingCeiling(t *testing.T) {
	const (
		epoch  = int64(1551096000)
		period = int64(400 * 24 * 60 * 60)
		cap    = int64(2_000_000_000_000)
	)

	flat := domain.NewFlatVestingPolicy("peosmarketing", 500)
	linear := domain.NewLinearVestingPolicy("peosteamfund", cap, epoch, period)
	fast := domain.NewLinearVestingPolicy("peosteamfund", domain.MaxAmount, 0, 1)

	testCases := []struct {
		name     string
		policy   domain.VestingPolicy
		now      int64
		expected int64
	}{
		{"flat before epoch", flat, 0, 500},
		{"flat any time", flat, epoch + period*2, 500},
		{"linear before epoch", linear, epoch - 10, 0},
		{"linear at epoch", linear, epoch, 0},
		{"linear half period", linear, epoch + period/2, cap / 2},
		{"linear quarter period", linear, epoch + period/4, cap / 4},
		{"linear at period", linear, epoch + period, cap},
		{"linear after period", linear, epoch + period + 1, cap + cap/period},
		{"linear two periods", linear, epoch + period*2, cap * 2},
		{"linear saturated", fast, 4, domain.MaxAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.policy.Ceiling(tc.now))
		})
	}
}

func TestVestingPolicyValidate(t *testing.T) {
	require.NoError(t, domain.NewFlatVestingPolicy("peosmarketing", 10).Validate())
	require.NoError(t, domain.NewLinearVestingPolicy("peosteamfund", 10, 0, 100).Validate())

	invalid := []domain.VestingPolicy{
		domain.NewFlatVestingPolicy("", 10),
		domain.NewFlatVestingPolicy("peosmarketing", -1),
		domain.NewLinearVestingPolicy("peosteamfund", 10, 0, 0),
		{Account: "peoscontract", Type: "stepped", Cap: 10},
	}
	for _, p := range invalid {
		require.Error(t, p.Validate())
	}
}
