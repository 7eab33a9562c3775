package store

import "github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"

// Telemetry serves fixed agent, system and department snapshots.
// Nothing here is computed; the data is injected at startup.
type Telemetry struct {
	agents      []model.AgentStatus
	system      model.SystemMetrics
	departments []model.DepartmentAnalytics
}

func NewTelemetry(agents []model.AgentStatus, system model.SystemMetrics, departments []model.DepartmentAnalytics) *Telemetry {
	return &Telemetry{
		agents:      append([]model.AgentStatus(nil), agents...),
		system:      system,
		departments: append([]model.DepartmentAnalytics(nil), departments...),
	}
}

// AgentStatuses returns the current agent snapshot.
func (t *Telemetry) AgentStatuses() []model.AgentStatus {
	return append([]model.AgentStatus{}, t.agents...)
}

// SystemMetrics returns the system-wide metrics snapshot.
func (t *Telemetry) SystemMetrics() model.SystemMetrics {
	return t.system
}

// DepartmentAnalytics returns the per-department snapshot.
func (t *Telemetry) DepartmentAnalytics() []model.DepartmentAnalytics {
	out := make([]model.DepartmentAnalytics, len(t.departments))
	for i, d := range t.departments {
		d.TopSkillGaps = append([]string(nil), d.TopSkillGaps...)
		d.RecommendedTraining = append([]string(nil), d.RecommendedTraining...)
		out[i] = d
	}
	return out
}
