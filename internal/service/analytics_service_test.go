package service

import (
	"testing"
	"time"

	"learnspace_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(day string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04", day)
	return t
}

func fixtureEvents() []model.ResourceUsageEvent {
	return []model.ResourceUsageEvent{
		{ResourceID: "r1", UserID: 1, ActionType: model.ActionView, ActionTimestamp: ts("2024-01-01 09:00")},
		{ResourceID: "r1", UserID: 2, ActionType: model.ActionView, ActionTimestamp: ts("2024-01-01 17:30")},
		{ResourceID: "r2", UserID: 1, ActionType: model.ActionView, ActionTimestamp: ts("2024-01-02 08:15")},
		{ResourceID: "r2", UserID: 1, ActionType: model.ActionDownload, ActionTimestamp: ts("2024-01-02 08:16")},
		{ResourceID: "r1", UserID: 3, ActionType: model.ActionPlay, ActionTimestamp: ts("2024-01-03 12:00"), SessionDuration: 120},
		{ResourceID: "r1", UserID: 3, ActionType: model.ActionPlay, ActionTimestamp: ts("2024-01-03 13:00"), SessionDuration: 60},
	}
}

func TestAggregateDailyViews(t *testing.T) {
	daily := AggregateDaily(fixtureEvents(), model.ActionView)

	require.Len(t, daily, 2)
	assert.Equal(t, DailyCount{Date: "2024-01-01", Count: 2}, daily[0])
	assert.Equal(t, DailyCount{Date: "2024-01-02", Count: 1}, daily[1])
}

func TestAggregateDailyDownloads(t *testing.T) {
	daily := AggregateDaily(fixtureEvents(), model.ActionDownload)

	require.Len(t, daily, 1)
	assert.Equal(t, DailyCount{Date: "2024-01-02", Count: 1}, daily[0])
}

func TestAggregateDailySortsAscending(t *testing.T) {
	events := []model.ResourceUsageEvent{
		{ActionType: model.ActionView, ActionTimestamp: ts("2024-03-05 10:00")},
		{ActionType: model.ActionView, ActionTimestamp: ts("2024-01-20 10:00")},
		{ActionType: model.ActionView, ActionTimestamp: ts("2024-02-11 10:00")},
	}
	daily := AggregateDaily(events, model.ActionView)

	require.Len(t, daily, 3)
	assert.Equal(t, "2024-01-20", daily[0].Date)
	assert.Equal(t, "2024-02-11", daily[1].Date)
	assert.Equal(t, "2024-03-05", daily[2].Date)
}

func TestAggregateEngagementSortsByActivity(t *testing.T) {
	engagement := AggregateEngagement(fixtureEvents())

	require.Len(t, engagement, 3)
	assert.Equal(t, UserEngagement{UserID: 1, Events: 3}, engagement[0])
	assert.Equal(t, UserEngagement{UserID: 3, Events: 2}, engagement[1])
	assert.Equal(t, UserEngagement{UserID: 2, Events: 1}, engagement[2])
}

// The two rankings use different orderings and must be allowed to
// disagree: A leads on raw views, B leads once downloads count too.
func TestTopAndPopularDiverge(t *testing.T) {
	var events []model.ResourceUsageEvent
	for i := 0; i < 10; i++ {
		events = append(events, model.ResourceUsageEvent{ResourceID: "A", ActionType: model.ActionView, ActionTimestamp: ts("2024-01-01 10:00")})
	}
	for i := 0; i < 5; i++ {
		events = append(events, model.ResourceUsageEvent{ResourceID: "B", ActionType: model.ActionView, ActionTimestamp: ts("2024-01-01 10:00")})
	}
	for i := 0; i < 6; i++ {
		events = append(events, model.ResourceUsageEvent{ResourceID: "B", ActionType: model.ActionDownload, ActionTimestamp: ts("2024-01-01 10:00")})
	}

	top := TopResources(events, 10)
	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].ResourceID, "views rank first")

	popular := PopularResources(events, 5)
	require.Len(t, popular, 2)
	assert.Equal(t, "B", popular[0].ResourceID, "views plus downloads rank first")
}

func TestTopResourcesTieBreaksOnDownloads(t *testing.T) {
	events := []model.ResourceUsageEvent{
		{ResourceID: "x", ActionType: model.ActionView},
		{ResourceID: "y", ActionType: model.ActionView},
		{ResourceID: "y", ActionType: model.ActionDownload},
	}

	top := TopResources(events, 10)
	require.Len(t, top, 2)
	assert.Equal(t, "y", top[0].ResourceID)
}

func TestRankingLimits(t *testing.T) {
	var events []model.ResourceUsageEvent
	for i := 0; i < 12; i++ {
		id := string(rune('a' + i))
		for j := 0; j <= i; j++ {
			events = append(events, model.ResourceUsageEvent{ResourceID: id, ActionType: model.ActionView})
		}
	}

	assert.Len(t, TopResources(events, 10), 10)
	assert.Len(t, PopularResources(events, 5), 5)
}

func TestSummarize(t *testing.T) {
	summary := Summarize(fixtureEvents())

	assert.Equal(t, 3, summary.TotalViews)
	assert.Equal(t, 1, summary.TotalDownloads)
	assert.Equal(t, 2, summary.TotalPlays)
	assert.Equal(t, 3, summary.UniqueUsers)
	assert.InDelta(t, 90.0, summary.AvgSessionSeconds, 0.001)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	assert.Equal(t, UsageSummary{}, summary)
}

func TestPeriodDays(t *testing.T) {
	assert.Equal(t, 7, periodDays("7d"))
	assert.Equal(t, 90, periodDays("90d"))
	assert.Equal(t, 30, periodDays("30d"))
	assert.Equal(t, 30, periodDays("whatever"))
}
