package api

import (
	"time"

	"github.com/custodia-labs/drawwatch/internal/core/domain"
	"github.com/custodia-labs/drawwatch/internal/core/ports/driving"
)

type resultsResponse struct {
	AsOfDate           domain.Date               `json:"asOfDate"`
	Results            map[string]domain.Payload `json:"results"`
	Schedule           map[string]string         `json:"schedule"`
	SourcesConsidered  []string                  `json:"sourcesConsidered"`
	SourcesWithResults []string                  `json:"sourcesWithResults"`
	CachedAt           *time.Time                `json:"cachedAt,omitempty"`
	Stale              bool                      `json:"stale"`
}

type noDataResponse struct {
	Error              string                    `json:"error"`
	Results            map[string]domain.Payload `json:"results"`
	SourcesConsidered  []string                  `json:"sourcesConsidered"`
	SourcesWithResults []string                  `json:"sourcesWithResults"`
}

type statusResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name,omitempty"`
	DrawTime    string     `json:"drawTime"`
	DrawAt      *time.Time `json:"drawAt,omitempty"`
	Valid       bool       `json:"valid"`
	Defect      string     `json:"defect,omitempty"`
	InWindow    bool       `json:"inWindow"`
	Settled     bool       `json:"settled"`
	State       string     `json:"state"`
	Attempts    int        `json:"attempts"`
	LastAttempt *time.Time `json:"lastAttempt,omitempty"`
}

type historyResponse struct {
	Date  domain.Date    `json:"date"`
	Draws []historyDraw `json:"draws"`
}

type historyDraw struct {
	SourceID    string     `json:"sourceId"`
	Subgame     string     `json:"subgame"`
	Numbers     string     `json:"numbers"`
	DrawnAt     *time.Time `json:"drawnAt,omitempty"`
	CollectedAt time.Time  `json:"collectedAt"`
	RunID       string     `json:"runId,omitempty"`
}

type pollResponse struct {
	RunID        string              `json:"runId"`
	StartedAt    time.Time           `json:"startedAt"`
	EndedAt      time.Time           `json:"endedAt"`
	Eligible     []string            `json:"eligible"`
	Outcomes     map[string]outcome  `json:"outcomes"`
	NewlySettled []string            `json:"newlySettled"`
	Defects      []domain.DateDefect `json:"defects,omitempty"`
	Shared       bool                `json:"shared"`
}

type outcome struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason,omitempty"`
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toResults(v *driving.SnapshotView, schedule map[string]string) resultsResponse {
	results := v.Results
	if results == nil {
		results = map[string]domain.Payload{}
	}
	return resultsResponse{
		AsOfDate:           v.AsOfDate,
		Results:            results,
		Schedule:           schedule,
		SourcesConsidered:  nonNil(v.SourcesConsidered),
		SourcesWithResults: nonNil(v.SourcesWithResults),
		CachedAt:           timePtr(v.CachedAt),
		Stale:              v.Stale,
	}
}

func toStatus(s driving.SourceStatus) statusResponse {
	out := statusResponse{
		ID:       s.Source.ID,
		Name:     s.Source.Name,
		DrawTime: s.Source.RawDrawTime,
		DrawAt:   timePtr(s.DrawAt),
		Valid:    s.Source.Valid,
		Defect:   s.Source.Defect,
		InWindow: s.InWindow,
		Settled:  s.Settled,
		State:    string(domain.SearchNotStarted),
	}
	if s.Search != nil {
		out.State = string(s.Search.State)
		out.Attempts = s.Search.Attempts
		out.LastAttempt = timePtr(s.Search.LastAttempt)
	}
	return out
}

func toHistory(date domain.Date, draws []domain.ArchivedDraw) historyResponse {
	out := historyResponse{Date: date, Draws: make([]historyDraw, 0, len(draws))}
	for _, d := range draws {
		out.Draws = append(out.Draws, historyDraw{
			SourceID:    d.SourceID,
			Subgame:     d.Subgame,
			Numbers:     d.Numbers,
			DrawnAt:     timePtr(d.DrawnAt),
			CollectedAt: d.CollectedAt,
			RunID:       d.RunID,
		})
	}
	return out
}

func toPoll(r *driving.PollReport) pollResponse {
	out := pollResponse{
		RunID:        r.RunID,
		StartedAt:    r.StartedAt,
		EndedAt:      r.EndedAt,
		Eligible:     nonNil(r.Eligible),
		Outcomes:     make(map[string]outcome, len(r.Outcomes)),
		NewlySettled: nonNil(r.NewlySettled),
		Defects:      r.Defects,
		Shared:       r.Shared,
	}
	for id, o := range r.Outcomes {
		out.Outcomes[id] = outcome{Kind: o.Kind.String(), Reason: o.Reason}
	}
	return out
}
