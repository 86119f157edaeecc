package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBloodUnitExpireIfStale(t *testing.T) {
	now, _ := time.Parse("2006-01-02", "2026-06-15")
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 7)

	t.Run("available past expiry flips to expired once", func(t *testing.T) {
		unit := &BloodUnit{Status: BloodUnitStatusAvailable, ExpiryDate: past}

		require.True(t, unit.ExpireIfStale(now))
		require.Equal(t, BloodUnitStatusExpired, unit.Status)

		// Second call is a no-op.
		require.False(t, unit.ExpireIfStale(now))
		require.Equal(t, BloodUnitStatusExpired, unit.Status)
	})

	t.Run("available before expiry untouched", func(t *testing.T) {
		unit := &BloodUnit{Status: BloodUnitStatusAvailable, ExpiryDate: future}

		require.False(t, unit.ExpireIfStale(now))
		require.Equal(t, BloodUnitStatusAvailable, unit.Status)
	})

	t.Run("reserved and used never flip", func(t *testing.T) {
		for _, status := range []BloodUnitStatus{BloodUnitStatusReserved, BloodUnitStatusUsed} {
			unit := &BloodUnit{Status: status, ExpiryDate: past}

			require.False(t, unit.ExpireIfStale(now))
			require.Equal(t, status, unit.Status)
		}
	})

	t.Run("expired never transitions back to available", func(t *testing.T) {
		unit := &BloodUnit{Status: BloodUnitStatusExpired, ExpiryDate: future}

		require.False(t, unit.ExpireIfStale(now))
		require.Equal(t, BloodUnitStatusExpired, unit.Status)
	})
}

func TestBloodUnitIsAvailable(t *testing.T) {
	now, _ := time.Parse("2006-01-02", "2026-06-15")
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 7)

	tests := []struct {
		name   string
		status BloodUnitStatus
		expiry time.Time
		want   bool
	}{
		{"available and fresh", BloodUnitStatusAvailable, future, true},
		{"available but expired", BloodUnitStatusAvailable, past, false},
		{"reserved and fresh", BloodUnitStatusReserved, future, false},
		{"used and fresh", BloodUnitStatusUsed, future, false},
		{"expired status", BloodUnitStatusExpired, future, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := &BloodUnit{Status: tt.status, ExpiryDate: tt.expiry}
			require.Equal(t, tt.want, unit.IsAvailable(now))
		})
	}
}

func TestBloodUnitIsExpired(t *testing.T) {
	now, _ := time.Parse("2006-01-02", "2026-06-15")

	unit := &BloodUnit{ExpiryDate: now}
	// Expiry exactly at now is not yet expired.
	require.False(t, unit.IsExpired(now))
	require.True(t, unit.IsExpired(now.Add(time.Second)))
}
