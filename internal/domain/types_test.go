package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallerRequire(t *testing.T) {
	tests := []struct {
		name      string
		caller    Caller
		roles     []Role
		expectErr error
	}{
		{
			name:   "matching role",
			caller: Caller{ID: "buyer-1", Role: RoleBuyer},
			roles:  []Role{RoleBuyer},
		},
		{
			name:   "any role when none required",
			caller: Caller{ID: "farmer-1", Role: RoleFarmer},
		},
		{
			name:      "missing identity",
			caller:    Caller{Role: RoleBuyer},
			roles:     []Role{RoleBuyer},
			expectErr: ErrValidation,
		},
		{
			name:      "blank identity",
			caller:    Caller{ID: "   ", Role: RoleBuyer},
			expectErr: ErrValidation,
		},
		{
			name:      "identity with NUL byte",
			caller:    Caller{ID: "buyer\x001", Role: RoleBuyer},
			expectErr: ErrValidation,
		},
		{
			name:      "wrong role",
			caller:    Caller{ID: "farmer-1", Role: RoleFarmer},
			roles:     []Role{RoleBuyer, RoleAdmin},
			expectErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.caller.Require(tt.roles...)
			if tt.expectErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectErr)
		})
	}
}

func TestChannelScopeKey(t *testing.T) {
	assert.Equal(t, "batch:h-1", ChannelScopeBatch.ScopeKey("h-1"))
	assert.Equal(t, "global", ChannelScopeGlobal.ScopeKey("h-1"))
	assert.Equal(t, "batch:h-1", ChannelScope("").ScopeKey("h-1"))
}

func TestGeoPointValid(t *testing.T) {
	assert.True(t, GeoPoint{Lat: -1.2921, Long: 36.8219}.Valid())
	assert.True(t, GeoPoint{Lat: 90, Long: -180}.Valid())
	assert.False(t, GeoPoint{Lat: 91, Long: 0}.Valid())
	assert.False(t, GeoPoint{Lat: 0, Long: 180.5}.Valid())
}

func TestRouteDistanceKm(t *testing.T) {
	t.Run("empty and single point routes have no distance", func(t *testing.T) {
		assert.Zero(t, RouteDistanceKm(nil))
		assert.Zero(t, RouteDistanceKm([]GeoPoint{{Lat: 1, Long: 1}}))
	})

	t.Run("one degree of latitude is about 111 km", func(t *testing.T) {
		d := RouteDistanceKm([]GeoPoint{{Lat: 0, Long: 0}, {Lat: 1, Long: 0}})
		assert.InDelta(t, 111.19, d, 0.05)
	})

	t.Run("legs are summed", func(t *testing.T) {
		route := []GeoPoint{{Lat: 0, Long: 0}, {Lat: 1, Long: 0}, {Lat: 2, Long: 0}}
		assert.InDelta(t, 2*DistanceKm(route[0], route[1]), RouteDistanceKm(route), 1e-9)
	})
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("quantity", "must be positive")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "validation failed: quantity must be positive", err.Error())

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "quantity", vErr.Field)
}

func TestMismatchError(t *testing.T) {
	err := &MismatchError{ReconciliationID: "rec-1", TransactionID: "tx-1", Cause: ErrStoreUnavailable}
	assert.ErrorIs(t, err, ErrLedgerLocalMismatch)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "tx-1")
}

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		reason string
	}{
		{name: "whole", value: "12"},
		{name: "four places", value: "0.0001"},
		{name: "largest", value: "9999999999999999.9999"},
		{name: "zero", value: "0", reason: "must be greater than 0"},
		{name: "negative", value: "-3", reason: "must be greater than 0"},
		{name: "five places", value: "0.00001", reason: "must have at most 4 decimal places"},
		{name: "trailing fifth place", value: "5.00001", reason: "must have at most 4 decimal places"},
		{name: "seventeen integer digits", value: "10000000000000000", reason: "must have at most 16 integer digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAmount("amount", decimal.RequireFromString(tt.value))
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestValidateStruct_Text(t *testing.T) {
	type input struct {
		Name  string   `json:"name" validate:"required,text"`
		Note  *string  `json:"note" validate:"omitempty,text"`
		Links []string `json:"links" validate:"dive,text"`
	}

	nul := "a\x00b"
	tests := []struct {
		name  string
		input input
		field string
	}{
		{name: "plain", input: input{Name: "maize", Links: []string{"https://example.com"}}},
		{name: "unicode", input: input{Name: "café ☕"}},
		{name: "nul byte", input: input{Name: nul}, field: "name"},
		{name: "invalid utf-8", input: input{Name: "\xff\xfe"}, field: "name"},
		{name: "nul in pointer", input: input{Name: "maize", Note: &nul}, field: "note"},
		{name: "nul in slice", input: input{Name: "maize", Links: []string{nul}}, field: "links[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, "must be valid UTF-8 without NUL bytes", vErr.Reason)
		})
	}
}

func TestWeightVariancePercent(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     string
	}{
		{name: "exact", expected: "100", actual: "100", want: "0"},
		{name: "short", expected: "100", actual: "97.5", want: "-2.5"},
		{name: "over", expected: "120", actual: "125", want: "4.17"},
		{name: "rounds to two places", expected: "3", actual: "4", want: "33.33"},
		{name: "zero expected", expected: "0", actual: "4", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightVariancePercent(decimal.RequireFromString(tt.expected), decimal.RequireFromString(tt.actual))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestReportPeriodStart(t *testing.T) {
	now := time.Date(2026, 4, 15, 17, 30, 0, 0, time.FixedZone("EAT", 3*3600))

	tests := []struct {
		period ReportPeriod
		want   time.Time
	}{
		{period: ReportPeriod7Days, want: time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC)},
		{period: ReportPeriod30Days, want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)},
		{period: "", want: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)},
		{period: ReportPeriod90Days, want: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
		{period: ReportPeriodYearToDate, want: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got, err := tt.period.Start(now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ReportPeriod("1y").Start(now)
	assert.ErrorIs(t, err, ErrValidation)
}
