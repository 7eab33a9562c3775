package model

import "time"

// cloneSlice copies s, keeping nil as nil and empty as empty so JSON
// encodes [] rather than null.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

// Clone returns a deep copy of u.
func (u User) Clone() User {
	c := u
	if u.SkillProfile != nil {
		sp := *u.SkillProfile
		sp.Skills = cloneSlice(sp.Skills)
		sp.CompletedCourses = cloneSlice(sp.CompletedCourses)
		sp.PerformanceRatings = cloneSlice(sp.PerformanceRatings)
		c.SkillProfile = &sp
	}
	if u.LearningPath != nil {
		lp := u.LearningPath.Clone()
		c.LearningPath = &lp
	}
	return c
}

// Clone returns a deep copy of p.
func (p LearningPath) Clone() LearningPath {
	c := p
	c.Modules = make([]LearningModule, len(p.Modules))
	for i, m := range p.Modules {
		m.Skills = cloneSlice(m.Skills)
		m.Prerequisites = cloneSlice(m.Prerequisites)
		m.Content = cloneSlice(m.Content)
		c.Modules[i] = m
	}
	return c
}

// CompletedModules counts modules with status completed.
func (p LearningPath) CompletedModules() int {
	n := 0
	for _, m := range p.Modules {
		if m.Status == ModuleCompleted {
			n++
		}
	}
	return n
}

// LearnerSummary is the subset of a user shown on the learner dashboard.
type LearnerSummary struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Department     string         `json:"department"`
	WorkflowStatus WorkflowStatus `json:"workflowStatus"`
}

// SkillPoint is a skill vector without its assessment date.
type SkillPoint struct {
	Skill       string `json:"skill"`
	Proficiency int    `json:"proficiency"`
	Confidence  int    `json:"confidence"`
}

// ProgressMetrics summarises learning-path progress.
type ProgressMetrics struct {
	CompletedModules     int `json:"completedModules"`
	TotalModules         int `json:"totalModules"`
	CompletionPercentage int `json:"completionPercentage"`
}

// AssessmentSummary is the last completed assessment shown on a dashboard.
type AssessmentSummary struct {
	ID          string     `json:"id"`
	Score       float64    `json:"score"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// LearnerView is the learner dashboard projection.
type LearnerView struct {
	User               LearnerSummary      `json:"user"`
	SkillVectors       []SkillPoint        `json:"skillVectors"`
	LearningPath       *LearningPath       `json:"learningPath,omitempty"`
	ProgressMetrics    ProgressMetrics     `json:"progressMetrics"`
	LastAssessment     *AssessmentSummary  `json:"lastAssessment,omitempty"`
	PerformanceRatings []PerformanceRating `json:"performanceRatings"`
}

// Totals are directory-derived counts on the admin dashboard.
type Totals struct {
	Learners    int `json:"learners"`
	Admins      int `json:"admins"`
	Departments int `json:"departments"`
}

// AdminView is the admin dashboard projection.
type AdminView struct {
	SystemMetrics       SystemMetrics         `json:"systemMetrics"`
	DepartmentAnalytics []DepartmentAnalytics `json:"departmentAnalytics"`
	AgentStatuses       []AgentStatus         `json:"agentStatuses"`
	Totals              Totals                `json:"totals"`
}

// Analytics is the combined system and department analytics snapshot.
type Analytics struct {
	System      SystemMetrics         `json:"system"`
	Departments []DepartmentAnalytics `json:"departments"`
}
