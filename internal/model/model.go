package model

import (
	"context"
	"time"
)

// Role represents a user's access level.
type Role string

const (
	// RoleLearner is an employee taking assessments and following a learning path.
	RoleLearner Role = "learner"
	// RoleAdmin manages users and reads organisation-wide analytics.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleLearner || r == RoleAdmin
}

// User represents a platform account.
type User struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	PasswordHash   string         `json:"-"`
	Department     string         `json:"department"`
	Role           Role           `json:"role"`
	SkillProfile   *SkillProfile  `json:"skillProfile,omitempty"`
	LearningPath   *LearningPath  `json:"learningPath,omitempty"`
	WorkflowStatus WorkflowStatus `json:"workflowStatus"`
}

// SkillProfile is a snapshot of a user's skills and review history.
type SkillProfile struct {
	UserID             string              `json:"userId"`
	Skills             []SkillVector       `json:"skills"`
	LastUpdated        time.Time           `json:"lastUpdated"`
	CompletedCourses   []string            `json:"completedCourses"`
	PerformanceRatings []PerformanceRating `json:"performanceRatings"`
}

// SkillVector holds proficiency and confidence for one skill, both 0-100.
type SkillVector struct {
	Skill        string    `json:"skill"`
	Proficiency  int       `json:"proficiency"`
	Confidence   int       `json:"confidence"`
	LastAssessed time.Time `json:"lastAssessed"`
}

// PerformanceRating is a reviewer's 1-5 score for an area.
type PerformanceRating struct {
	Area     string    `json:"area"`
	Score    float64   `json:"score"`
	Date     time.Time `json:"date"`
	Reviewer string    `json:"reviewer"`
}

// ModuleStatus represents progress through a learning module.
type ModuleStatus string

const (
	ModuleNotStarted ModuleStatus = "not_started"
	ModuleInProgress ModuleStatus = "in_progress"
	ModuleCompleted  ModuleStatus = "completed"
)

// ContentType is the kind of a module content item.
type ContentType string

const (
	ContentVideo    ContentType = "video"
	ContentArticle  ContentType = "article"
	ContentExercise ContentType = "exercise"
	ContentQuiz     ContentType = "quiz"
)

// LearningPath is an ordered list of modules recommended to a user.
type LearningPath struct {
	ID                   string           `json:"id"`
	UserID               string           `json:"userId"`
	Modules              []LearningModule `json:"modules"`
	EstimatedTime        int              `json:"estimatedTime"`        // minutes
	CompletionPercentage int              `json:"completionPercentage"` // 0-100
	GeneratedAt          time.Time        `json:"generatedAt"`
	Reasoning            string           `json:"reasoning"`
}

// LearningModule is one step of a learning path.
type LearningModule struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	EstimatedTime int             `json:"estimatedTime"` // minutes
	Status        ModuleStatus    `json:"status"`
	Skills        []string        `json:"skills"`
	Prerequisites []string        `json:"prerequisites"`
	Content       []ModuleContent `json:"content"`
}

// ModuleContent is a single video, article, exercise or quiz in a module.
type ModuleContent struct {
	Type      ContentType `json:"type"`
	Title     string      `json:"title"`
	URL       string      `json:"url,omitempty"`
	Duration  int         `json:"duration"` // minutes
	Completed bool        `json:"completed"`
}

// WorkflowStatus tracks onboarding progress for display only.
type WorkflowStatus struct {
	ProfileLoaded            bool      `json:"profileLoaded"`
	AssessmentPending        bool      `json:"assessmentPending"`
	AssessmentCompleted      bool      `json:"assessmentCompleted"`
	RecommendationsGenerated bool      `json:"recommendationsGenerated"`
	LearningInProgress       bool      `json:"learningInProgress"`
	CurrentStep              int       `json:"currentStep"`
	LastUpdated              time.Time `json:"lastUpdated"`
}

// NewWorkflowStatus returns the status given to freshly created accounts.
func NewWorkflowStatus(now time.Time) WorkflowStatus {
	return WorkflowStatus{
		AssessmentPending: true,
		CurrentStep:       1,
		LastUpdated:       now,
	}
}

// Identity is the authenticated caller carried by a session token.
type Identity struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

type identityCtxKey struct{}

// ContextWithIdentity stores the authenticated identity in the request context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// IdentityFromContext retrieves the authenticated identity from context, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityCtxKey{}).(*Identity)
	return id
}

// AgentStatusState is the reported state of a background agent.
type AgentStatusState string

const (
	AgentActive     AgentStatusState = "active"
	AgentProcessing AgentStatusState = "processing"
	AgentIdle       AgentStatusState = "idle"
	AgentError      AgentStatusState = "error"
)

// AgentStatus is a static telemetry record for one agent.
type AgentStatus struct {
	Name           string           `json:"name"`
	Status         AgentStatusState `json:"status"`
	QueueSize      int              `json:"queueSize"`
	AverageLatency int              `json:"averageLatency"` // ms
	ErrorRate      float64          `json:"errorRate"`      // 0-1
	LastActivity   time.Time        `json:"lastActivity"`
}

// SystemMetrics are organisation-wide counters.
type SystemMetrics struct {
	TotalUsers            int     `json:"totalUsers"`
	ActiveUsers           int     `json:"activeUsers"`
	CompletedAssessments  int     `json:"completedAssessments"`
	GeneratedPaths        int     `json:"generatedPaths"`
	AverageCompletionRate float64 `json:"averageCompletionRate"` // 0-1
}

// DepartmentAnalytics summarises one department.
type DepartmentAnalytics struct {
	Department          string   `json:"department"`
	UserCount           int      `json:"userCount"`
	AverageSkillLevel   int      `json:"averageSkillLevel"` // 0-100
	CompletionRate      float64  `json:"completionRate"`    // 0-1
	TopSkillGaps        []string `json:"topSkillGaps"`
	RecommendedTraining []string `json:"recommendedTraining"`
}

// AssessmentConfig holds runtime assessment parameters set via CLI flags.
type AssessmentConfig struct {
	MaxQuestions int  // questions per assessment
	Shuffle      bool // randomize eligible questions before selection
}
