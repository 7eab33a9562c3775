// Package seed provides the demo directory, question bank and telemetry
// fixtures loaded at startup.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/store"
)

//go:embed questions.json
var defaultQuestions []byte

// Questions parses the embedded default question bank.
func Questions() ([]model.Question, error) {
	return ParseQuestions(defaultQuestions)
}

// ParseQuestions decodes a JSON array of questions.
func ParseQuestions(data []byte) ([]model.Question, error) {
	var questions []model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	return questions, nil
}

// LoadUsers hashes password with the given bcrypt cost and inserts the demo
// users into an empty directory. A non-empty directory is left alone.
func LoadUsers(users *store.UserStore, password string, cost int) (int, error) {
	if users.UserCount() > 0 {
		return 0, nil
	}
	if password == "" {
		return 0, fmt.Errorf("seed password is required: set --seed-password flag or UPSKILL_SEED_PASSWORD env var")
	}

	now := time.Now()
	demo := Users(now)
	for _, u := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return 0, fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		u.PasswordHash = string(hash)
		users.CreateUser(u)
	}
	return len(demo), nil
}

// Telemetry returns the static agent, system and department snapshots.
func Telemetry(now time.Time, totalUsers int) *store.Telemetry {
	agents := []model.AgentStatus{
		{Name: "Profile Agent", Status: model.AgentActive, QueueSize: 3, AverageLatency: 250, ErrorRate: 0.02, LastActivity: now},
		{Name: "Assessment Agent", Status: model.AgentProcessing, QueueSize: 7, AverageLatency: 450, ErrorRate: 0.01, LastActivity: now},
		{Name: "Recommender Agent", Status: model.AgentActive, QueueSize: 2, AverageLatency: 180, ErrorRate: 0.03, LastActivity: now},
		{Name: "Tracker Agent", Status: model.AgentIdle, QueueSize: 0, AverageLatency: 120, ErrorRate: 0, LastActivity: now},
		{Name: "Content Agent", Status: model.AgentActive, QueueSize: 1, AverageLatency: 90, ErrorRate: 0.01, LastActivity: now},
	}

	system := model.SystemMetrics{
		TotalUsers:            totalUsers,
		ActiveUsers:           112,
		CompletedAssessments:  518,
		GeneratedPaths:        372,
		AverageCompletionRate: 0.71,
	}

	departments := []model.DepartmentAnalytics{
		{
			Department: "Engineering", UserCount: 48, AverageSkillLevel: 74, CompletionRate: 0.79,
			TopSkillGaps:        []string{"Machine Learning", "Cloud Architecture", "DevOps"},
			RecommendedTraining: []string{"AWS Certification", "Docker & Kubernetes", "ML Fundamentals"},
		},
		{
			Department: "Marketing", UserCount: 28, AverageSkillLevel: 66, CompletionRate: 0.68,
			TopSkillGaps:        []string{"Data Analytics", "SEO", "Content Strategy"},
			RecommendedTraining: []string{"Google Analytics", "SEO Mastery", "Content Marketing"},
		},
		{
			Department: "Sales", UserCount: 35, AverageSkillLevel: 70, CompletionRate: 0.73,
			TopSkillGaps:        []string{"CRM Systems", "Negotiation", "Product Knowledge"},
			RecommendedTraining: []string{"Salesforce Training", "Advanced Negotiation", "Product Deep Dive"},
		},
		{
			Department: "Data Science", UserCount: 18, AverageSkillLevel: 69, CompletionRate: 0.65,
			TopSkillGaps:        []string{"Spark", "MLOps", "Data Governance"},
			RecommendedTraining: []string{"Apache Spark Basics", "MLOps on AWS", "Data Governance 101"},
		},
		{
			Department: "Finance", UserCount: 12, AverageSkillLevel: 63, CompletionRate: 0.61,
			TopSkillGaps:        []string{"Power BI", "Forecast Modelling", "SQL"},
			RecommendedTraining: []string{"Power BI Dashboards", "Financial Forecasting", "SQL for Analysts"},
		},
	}

	return store.NewTelemetry(agents, system, departments)
}
