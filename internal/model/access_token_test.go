package model_test

import (
	"testing"
	"time"

	"github.com/pastevault/backend/internal/model"
	"github.com/stretchr/testify/require"
)

func TestExpiresInTime(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	testcases := []struct {
		bucket   model.ExpiresIn
		expected time.Time
	}{
		{model.ExpiresOneHour, now.Add(time.Hour)},
		{model.ExpiresOneDay, now.AddDate(0, 0, 1)},
		{model.ExpiresOneWeek, now.AddDate(0, 0, 7)},
		{model.ExpiresOneMonth, now.AddDate(0, 1, 0)},
		{model.ExpiresOneYear, now.AddDate(1, 0, 0)},
		{model.ExpiresNever, now.AddDate(100, 0, 0)},
	}

	for _, tc := range testcases {
		got, err := tc.bucket.Time(now)
		require.NoError(t, err)
		require.Equal(t, tc.expected, got, string(tc.bucket))
	}
}

func TestExpiresInInvalid(t *testing.T) {
	for _, bucket := range []model.ExpiresIn{"", "2h", "forever"} {
		_, err := model.ExpiresIn(bucket).Time(time.Now())
		require.Error(t, err, string(bucket))
	}
}
