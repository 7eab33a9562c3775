// Package dashboard builds read-only learner and admin projections.
package dashboard

import (
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/assessment"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/store"
)

// UserDirectory is the read side of the user store.
type UserDirectory interface {
	GetUserByID(id string) (model.User, bool)
	ListUsers() []model.User
}

// AssessmentLister lists a user's assessments.
type AssessmentLister interface {
	ListForUser(userID string) []model.Assessment
}

// Telemetry supplies the static system snapshots.
type Telemetry interface {
	AgentStatuses() []model.AgentStatus
	SystemMetrics() model.SystemMetrics
	DepartmentAnalytics() []model.DepartmentAnalytics
}

// Service joins the directory, assessments and telemetry into views.
type Service struct {
	users       UserDirectory
	assessments AssessmentLister
	telemetry   Telemetry
}

func New(users UserDirectory, assessments AssessmentLister, telemetry Telemetry) *Service {
	return &Service{users: users, assessments: assessments, telemetry: telemetry}
}

// Learner returns the dashboard for userID. Only an unknown user is an error;
// missing profile, path or assessments produce empty values.
func (s *Service) Learner(userID string) (*model.LearnerView, error) {
	user, ok := s.users.GetUserByID(userID)
	if !ok {
		return nil, store.ErrNotFound
	}

	view := &model.LearnerView{
		User: model.LearnerSummary{
			ID:             user.ID,
			Name:           user.Name,
			Email:          user.Email,
			Department:     user.Department,
			WorkflowStatus: user.WorkflowStatus,
		},
		SkillVectors:       []model.SkillPoint{},
		PerformanceRatings: []model.PerformanceRating{},
		LearningPath:       user.LearningPath,
	}

	if sp := user.SkillProfile; sp != nil {
		for _, sv := range sp.Skills {
			view.SkillVectors = append(view.SkillVectors, model.SkillPoint{
				Skill:       sv.Skill,
				Proficiency: sv.Proficiency,
				Confidence:  sv.Confidence,
			})
		}
		view.PerformanceRatings = append(view.PerformanceRatings, sp.PerformanceRatings...)
	}

	if lp := user.LearningPath; lp != nil {
		view.ProgressMetrics = model.ProgressMetrics{
			CompletedModules:     lp.CompletedModules(),
			TotalModules:         len(lp.Modules),
			CompletionPercentage: lp.CompletionPercentage,
		}
	}

	if last, ok := assessment.LastCompleted(s.assessments.ListForUser(userID)); ok {
		view.LastAssessment = &model.AssessmentSummary{
			ID:          last.ID,
			Score:       last.Score,
			CompletedAt: last.CompletedAt,
		}
	}
	return view, nil
}

// Admin returns the organisation-wide dashboard.
func (s *Service) Admin() model.AdminView {
	var totals model.Totals
	departments := make(map[string]struct{})
	for _, u := range s.users.ListUsers() {
		switch u.Role {
		case model.RoleLearner:
			totals.Learners++
		case model.RoleAdmin:
			totals.Admins++
		}
		departments[u.Department] = struct{}{}
	}
	totals.Departments = len(departments)

	return model.AdminView{
		SystemMetrics:       s.telemetry.SystemMetrics(),
		DepartmentAnalytics: s.telemetry.DepartmentAnalytics(),
		AgentStatuses:       s.telemetry.AgentStatuses(),
		Totals:              totals,
	}
}

// Analytics returns system and department analytics together.
func (s *Service) Analytics() model.Analytics {
	return model.Analytics{
		System:      s.telemetry.SystemMetrics(),
		Departments: s.telemetry.DepartmentAnalytics(),
	}
}

// Agents returns the agent snapshot.
func (s *Service) Agents() []model.AgentStatus {
	return s.telemetry.AgentStatuses()
}
