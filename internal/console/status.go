package console

import (
	"time"

	"github.com/deckworks/agentdeck/internal/core/notify"
)

// Status is a point-in-time report of the console's health.
type Status struct {
	Version             string     `json:"version"`
	StartedAt           time.Time  `json:"started_at"`
	Uptime              string     `json:"uptime"`
	ActiveNotifications int        `json:"active_notifications"`
	Cache               CacheStats `json:"cache"`
}

// StatusService assembles status reports from the console's components.
type StatusService struct {
	version   string
	startedAt time.Time
	center    *notify.Center
	executor  *Executor

	now func() time.Time
}

// NewStatusService creates a status service. The executor may be nil in
// serve-only deployments without code execution.
func NewStatusService(version string, center *notify.Center, executor *Executor) *StatusService {
	return &StatusService{
		version:   version,
		startedAt: time.Now(),
		center:    center,
		executor:  executor,
		now:       time.Now,
	}
}

// Report returns the current status snapshot.
func (s *StatusService) Report() Status {
	st := Status{
		Version:             s.version,
		StartedAt:           s.startedAt,
		Uptime:              s.now().Sub(s.startedAt).Round(time.Second).String(),
		ActiveNotifications: s.center.Len(),
	}
	if s.executor != nil {
		st.Cache = s.executor.CacheStats()
	}
	return st
}
