package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

const (
	StatusUp   = "up"
	StatusDown = "down"
)

// Check asks every checker and reports each one's status by name. healthy is
// false when any checker is down.
func Check(ctx context.Context, checkers map[string]HealthChecker) (healthy bool, statuses map[string]string) {
	healthy = true
	statuses = make(map[string]string, len(checkers))
	for name, hc := range checkers {
		if hc.Healthy(ctx) {
			statuses[name] = StatusUp
			continue
		}
		statuses[name] = StatusDown
		healthy = false
	}
	return healthy, statuses
}
