package health

import "time"

// Service reports process liveness.
type Service struct {
	startedAt time.Time
}

// NewService constructs a health service anchored at the current time.
func NewService() *Service {
	return &Service{startedAt: time.Now().UTC()}
}

// Status returns the payload served on the health endpoint.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"ok":     true,
		"uptime": time.Since(s.startedAt).Round(time.Second).String(),
	}
}
