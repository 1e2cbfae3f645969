package service

import (
	"sort"
	"time"

	"learnspace_backend/internal/model"
	"learnspace_backend/internal/repository"
	"learnspace_backend/internal/util"

	"go.uber.org/zap"
)

// Analytics views are always derived from the raw usage-event log, never
// from the cached counters on the resource rows. The aggregation
// functions are pure so the grouping and ranking rules can be tested
// without a database.

type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

type UserEngagement struct {
	UserID uint `json:"userId"`
	Events int  `json:"events"`
}

type ResourceRank struct {
	ResourceID string `json:"resourceId"`
	Title      string `json:"title"`
	Views      int    `json:"views"`
	Downloads  int    `json:"downloads"`
}

type UsageSummary struct {
	TotalViews        int     `json:"totalViews"`
	TotalDownloads    int     `json:"totalDownloads"`
	TotalPlays        int     `json:"totalPlays"`
	UniqueUsers       int     `json:"uniqueUsers"`
	AvgSessionSeconds float64 `json:"avgSessionSeconds"`
}

type UsageReport struct {
	Period           string           `json:"period"`
	Summary          UsageSummary     `json:"summary"`
	DailyViews       []DailyCount     `json:"dailyViews"`
	DailyDownloads   []DailyCount     `json:"dailyDownloads"`
	UserEngagement   []UserEngagement `json:"userEngagement"`
	TopResources     []ResourceRank   `json:"topResources"`
	PopularResources []ResourceRank   `json:"popularResources"`
}

type AnalyticsService struct {
	usageRepo    *repository.UsageRepository
	resourceRepo *repository.ResourceRepository
	logger       *zap.Logger
}

func NewAnalyticsService(usageRepo *repository.UsageRepository, resourceRepo *repository.ResourceRepository, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{usageRepo: usageRepo, resourceRepo: resourceRepo, logger: logger}
}

// GetReport builds the full analytics view for a period ("7d", "30d",
// "90d"; anything else falls back to 30d), optionally scoped to one
// lesson's resources.
func (s *AnalyticsService) GetReport(period, lessonID string) (*UsageReport, error) {
	days := periodDays(period)
	since := time.Now().AddDate(0, 0, -days)

	events, err := s.usageRepo.FindSince(since, lessonID)
	if err != nil {
		return nil, err
	}

	report := &UsageReport{
		Period:           period,
		Summary:          Summarize(events),
		DailyViews:       AggregateDaily(events, model.ActionView),
		DailyDownloads:   AggregateDaily(events, model.ActionDownload),
		UserEngagement:   AggregateEngagement(events),
		TopResources:     TopResources(events, 10),
		PopularResources: PopularResources(events, 5),
	}

	s.resolveTitles(report.TopResources)
	s.resolveTitles(report.PopularResources)
	return report, nil
}

func (s *AnalyticsService) resolveTitles(ranks []ResourceRank) {
	for i := range ranks {
		resource, err := s.resourceRepo.FindByID(ranks[i].ResourceID)
		if err != nil {
			// Deleted resources keep their events; show them unnamed.
			continue
		}
		ranks[i].Title = resource.Title
	}
}

func periodDays(period string) int {
	switch period {
	case "7d":
		return 7
	case "90d":
		return 90
	default:
		return 30
	}
}

// AggregateDaily groups events of one action by calendar day, oldest
// day first. Days with no events are absent, not zero.
func AggregateDaily(events []model.ResourceUsageEvent, action model.UsageAction) []DailyCount {
	byDay := make(map[string]int)
	for _, e := range events {
		if e.ActionType != action {
			continue
		}
		byDay[e.ActionTimestamp.Format(util.DateFormat)]++
	}

	out := make([]DailyCount, 0, len(byDay))
	for day, count := range byDay {
		out = append(out, DailyCount{Date: day, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// AggregateEngagement counts events per user, most active first. Ties
// break on user id so the order is stable.
func AggregateEngagement(events []model.ResourceUsageEvent) []UserEngagement {
	byUser := make(map[uint]int)
	for _, e := range events {
		byUser[e.UserID]++
	}

	out := make([]UserEngagement, 0, len(byUser))
	for userID, count := range byUser {
		out = append(out, UserEngagement{UserID: userID, Events: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Events != out[j].Events {
			return out[i].Events > out[j].Events
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// TopResources ranks by view count, breaking ties on download count.
// PopularResources ranks by combined views plus downloads. The two
// orderings genuinely differ: a download-heavy resource can be popular
// without ever topping the view ranking.

func TopResources(events []model.ResourceUsageEvent, limit int) []ResourceRank {
	ranks := countPerResource(events)
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Views != ranks[j].Views {
			return ranks[i].Views > ranks[j].Views
		}
		if ranks[i].Downloads != ranks[j].Downloads {
			return ranks[i].Downloads > ranks[j].Downloads
		}
		return ranks[i].ResourceID < ranks[j].ResourceID
	})
	return truncate(ranks, limit)
}

func PopularResources(events []model.ResourceUsageEvent, limit int) []ResourceRank {
	ranks := countPerResource(events)
	sort.Slice(ranks, func(i, j int) bool {
		si, sj := ranks[i].Views+ranks[i].Downloads, ranks[j].Views+ranks[j].Downloads
		if si != sj {
			return si > sj
		}
		return ranks[i].ResourceID < ranks[j].ResourceID
	})
	return truncate(ranks, limit)
}

// Summarize folds the whole event slice into the headline numbers. The
// average session duration only considers play events since views and
// downloads carry no duration.
func Summarize(events []model.ResourceUsageEvent) UsageSummary {
	summary := UsageSummary{}
	users := make(map[uint]struct{})
	var playSeconds, plays int

	for _, e := range events {
		users[e.UserID] = struct{}{}
		switch e.ActionType {
		case model.ActionView:
			summary.TotalViews++
		case model.ActionDownload:
			summary.TotalDownloads++
		case model.ActionPlay:
			summary.TotalPlays++
			playSeconds += e.SessionDuration
			plays++
		}
	}

	summary.UniqueUsers = len(users)
	if plays > 0 {
		summary.AvgSessionSeconds = float64(playSeconds) / float64(plays)
	}
	return summary
}

func countPerResource(events []model.ResourceUsageEvent) []ResourceRank {
	byResource := make(map[string]*ResourceRank)
	for _, e := range events {
		rank, ok := byResource[e.ResourceID]
		if !ok {
			rank = &ResourceRank{ResourceID: e.ResourceID}
			byResource[e.ResourceID] = rank
		}
		switch e.ActionType {
		case model.ActionView:
			rank.Views++
		case model.ActionDownload:
			rank.Downloads++
		}
	}

	out := make([]ResourceRank, 0, len(byResource))
	for _, rank := range byResource {
		out = append(out, *rank)
	}
	return out
}

func truncate(ranks []ResourceRank, limit int) []ResourceRank {
	if len(ranks) > limit {
		return ranks[:limit]
	}
	return ranks
}
