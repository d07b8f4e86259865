package domain_test

import (
	"testing"

	"github.com/arkade-os/tokend/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestDividendFraction(t *testing.T) {
	t.Run("initial", func(t *testing.T) {
		require.Equal(t, "1.000000000000000000", domain.InitialDividendFraction.String())
		require.Equal(t, "1000000000000000000", domain.InitialDividendFraction.Raw())
	})

	t.Run("add", func(t *testing.T) {
		fraction, err := domain.InitialDividendFraction.Add(1, 2)
		require.NoError(t, err)
		require.Equal(t, "1.500000000000000000", fraction.String())

		fraction, err = domain.InitialDividendFraction.Add(10, 3)
		require.NoError(t, err)
		require.Equal(t, "4.333333333333333333", fraction.String())

		_, err = domain.InitialDividendFraction.Add(10, 0)
		require.Error(t, err)
	})

	t.Run("owed", func(t *testing.T) {
		fraction, err := domain.InitialDividendFraction.Add(10, 3)
		require.NoError(t, err)

		owed, err := fraction.Owed(domain.InitialDividendFraction, 1)
		require.NoError(t, err)
		require.Equal(t, int64(3), owed)

		owed, err = fraction.Owed(domain.InitialDividendFraction, 2)
		require.NoError(t, err)
		require.Equal(t, int64(6), owed)

		owed, err = fraction.Owed(fraction, 2)
		require.NoError(t, err)
		require.Zero(t, owed)

		_, err = domain.InitialDividendFraction.Owed(fraction, 1)
		require.Error(t, err)
	})

	t.Run("raw", func(t *testing.T) {
		fraction, err := domain.InitialDividendFraction.Add(7, 9)
		require.NoError(t, err)

		parsed, err := domain.ParseDividendFraction(fraction.Raw())
		require.NoError(t, err)
		require.True(t, parsed.Equal(fraction))

		_, err = domain.ParseDividendFraction("1.5")
		require.Error(t, err)
	})
}

func TestRefundRequest(t *testing.T) {
	req := domain.RefundRequest{Owner: "alice", RequestTime: 100}
	require.Equal(t, int64(100+259200), req.AvailableAt(259200))
}
