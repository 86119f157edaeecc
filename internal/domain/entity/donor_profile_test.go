package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCheckEligibility(t *testing.T) {
	now, _ := time.Parse("2006-01-02", "2026-06-15")

	tests := []struct {
		name         string
		age          int
		weightKg     float64
		lastDonation *time.Time
		wantEligible bool
		wantReason   string
	}{
		{
			name:         "eligible first-time donor",
			age:          30,
			weightKg:     70,
			wantEligible: true,
			wantReason:   ReasonEligible,
		},
		{
			name:         "too young",
			age:          17,
			weightKg:     70,
			wantEligible: false,
			wantReason:   ReasonAgeOutOfRange,
		},
		{
			name:         "exactly 18 passes",
			age:          18,
			weightKg:     70,
			wantEligible: true,
			wantReason:   ReasonEligible,
		},
		{
			name:         "exactly 65 passes",
			age:          65,
			weightKg:     70,
			wantEligible: true,
			wantReason:   ReasonEligible,
		},
		{
			name:         "too old",
			age:          66,
			weightKg:     70,
			wantEligible: false,
			wantReason:   ReasonAgeOutOfRange,
		},
		{
			name:         "underweight",
			age:          30,
			weightKg:     49.5,
			wantEligible: false,
			wantReason:   ReasonUnderweight,
		},
		{
			name:         "exactly 50 kg passes",
			age:          30,
			weightKg:     50,
			wantEligible: true,
			wantReason:   ReasonEligible,
		},
		{
			name:         "donated too recently",
			age:          30,
			weightKg:     70,
			lastDonation: date("2026-05-01"),
			wantEligible: false,
			wantReason:   ReasonRecentlyGave,
		},
		{
			name:         "exactly three calendar months ago passes",
			age:          30,
			weightKg:     70,
			lastDonation: date("2026-03-15"),
			wantEligible: true,
			wantReason:   ReasonEligible,
		},
		{
			name:         "one day short of three months fails",
			age:          30,
			weightKg:     70,
			lastDonation: date("2026-03-16"),
			wantEligible: false,
			wantReason:   ReasonRecentlyGave,
		},
		{
			// Age is checked before weight: the first failing rule wins.
			name:         "age failure reported before weight failure",
			age:          16,
			weightKg:     40,
			wantEligible: false,
			wantReason:   ReasonAgeOutOfRange,
		},
		{
			name:         "weight failure reported before donation gap",
			age:          30,
			weightKg:     45,
			lastDonation: date("2026-06-01"),
			wantEligible: false,
			wantReason:   ReasonUnderweight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &DonorProfile{
				Age:              tt.age,
				WeightKg:         tt.weightKg,
				LastDonationDate: tt.lastDonation,
			}

			eligible, reason := profile.CheckEligibility(now)
			require.Equal(t, tt.wantEligible, eligible)
			require.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestCheckEligibilityCalendarMonths(t *testing.T) {
	// AddDate uses calendar months, not a fixed 90-day window. A donation on
	// Nov 30 plus 3 months lands on Mar 2 (Feb 30 normalizes forward), so
	// Mar 1 is still inside the gap.
	now, _ := time.Parse("2006-01-02", "2027-03-01")

	profile := &DonorProfile{
		Age:              30,
		WeightKg:         70,
		LastDonationDate: date("2026-11-30"),
	}

	eligible, reason := profile.CheckEligibility(now)
	require.False(t, eligible)
	require.Equal(t, ReasonRecentlyGave, reason)

	later, _ := time.Parse("2006-01-02", "2027-03-02")
	eligible, reason = profile.CheckEligibility(later)
	require.True(t, eligible)
	require.Equal(t, ReasonEligible, reason)
}

func TestRefreshEligibility(t *testing.T) {
	now, _ := time.Parse("2006-01-02", "2026-06-15")

	profile := &DonorProfile{Age: 17, WeightKg: 70}
	eligible, reason := profile.RefreshEligibility(now)

	require.False(t, eligible)
	require.Equal(t, ReasonAgeOutOfRange, reason)
	require.False(t, profile.EligibilityStatus)
	require.Equal(t, ReasonAgeOutOfRange, profile.EligibilityNotes)
}
