package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/daily-planner-api/internal/utils"
)

func mustParseDay(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := utils.ParseDay(s)
	require.NoError(t, err)
	return day
}
