package seed

import (
	"time"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
)

func workflow(now time.Time, profile, pending, completed, recs, learning bool, step int) model.WorkflowStatus {
	return model.WorkflowStatus{
		ProfileLoaded:            profile,
		AssessmentPending:        pending,
		AssessmentCompleted:      completed,
		RecommendationsGenerated: recs,
		LearningInProgress:       learning,
		CurrentStep:              step,
		LastUpdated:              now,
	}
}

// Users returns the demo directory without password hashes.
func Users(now time.Time) []model.User {
	return []model.User{
		{
			ID:             "1",
			Name:           "Sarah Chen",
			Email:          "sarah.chen@company.com",
			Department:     "Engineering",
			Role:           model.RoleLearner,
			WorkflowStatus: workflow(now, true, false, true, true, true, 4),
			SkillProfile: &model.SkillProfile{
				UserID: "1",
				Skills: []model.SkillVector{
					{Skill: "JavaScript", Proficiency: 85, Confidence: 90, LastAssessed: now},
					{Skill: "React", Proficiency: 78, Confidence: 82, LastAssessed: now},
					{Skill: "Node.js", Proficiency: 65, Confidence: 70, LastAssessed: now},
					{Skill: "Python", Proficiency: 45, Confidence: 50, LastAssessed: now},
				},
				LastUpdated:      now,
				CompletedCourses: []string{"JS-101", "REACT-BASICS", "API-DESIGN"},
				PerformanceRatings: []model.PerformanceRating{
					{Area: "Code Quality", Score: 4.2, Date: now, Reviewer: "John Smith"},
					{Area: "Problem Solving", Score: 4.5, Date: now, Reviewer: "Jane Doe"},
				},
			},
			LearningPath: &model.LearningPath{
				ID:                   "lp-1",
				UserID:               "1",
				EstimatedTime:        120,
				CompletionPercentage: 35,
				GeneratedAt:          now,
				Reasoning:            "Strong JS & React; path focuses on advanced React patterns plus Python to become full-stack.",
				Modules: []model.LearningModule{
					{
						ID:            "m1",
						Title:         "Advanced React Patterns",
						Description:   "Master hooks, context & performance optimisation",
						EstimatedTime: 40,
						Status:        model.ModuleCompleted,
						Skills:        []string{"React", "JavaScript"},
						Prerequisites: []string{"REACT-BASICS"},
						Content: []model.ModuleContent{
							{Type: model.ContentVideo, Title: "Custom Hooks Deep Dive", Duration: 25, Completed: true},
							{Type: model.ContentExercise, Title: "Build a Custom Hook", Duration: 15, Completed: true},
						},
					},
					{
						ID:            "m2",
						Title:         "Python Fundamentals",
						Description:   "Syntax, data structures & OOP",
						EstimatedTime: 50,
						Status:        model.ModuleInProgress,
						Skills:        []string{"Python"},
						Prerequisites: []string{},
						Content: []model.ModuleContent{
							{Type: model.ContentArticle, Title: "Python Syntax Guide", Duration: 20, Completed: true},
							{Type: model.ContentExercise, Title: "Data Structures Practice", Duration: 30},
						},
					},
					{
						ID:            "m3",
						Title:         "API Development with FastAPI",
						Description:   "Build REST APIs in Python",
						EstimatedTime: 30,
						Status:        model.ModuleNotStarted,
						Skills:        []string{"Python", "API Design"},
						Prerequisites: []string{"m2"},
						Content: []model.ModuleContent{
							{Type: model.ContentVideo, Title: "FastAPI Introduction", Duration: 15},
							{Type: model.ContentExercise, Title: "Build Your First API", Duration: 15},
						},
					},
				},
			},
		},
		{
			ID:             "2",
			Name:           "Aisha Singh",
			Email:          "aisha.singh@company.com",
			Department:     "Data Science",
			Role:           model.RoleLearner,
			WorkflowStatus: workflow(now, true, false, false, false, false, 2),
			SkillProfile: &model.SkillProfile{
				UserID: "2",
				Skills: []model.SkillVector{
					{Skill: "Python", Proficiency: 80, Confidence: 75, LastAssessed: now},
					{Skill: "SQL", Proficiency: 88, Confidence: 85, LastAssessed: now},
					{Skill: "Spark", Proficiency: 60, Confidence: 55, LastAssessed: now},
					{Skill: "AWS Glue", Proficiency: 40, Confidence: 45, LastAssessed: now},
				},
				LastUpdated:      now,
				CompletedCourses: []string{"PY-ADV", "SQL-PERF"},
				PerformanceRatings: []model.PerformanceRating{
					{Area: "Data Modelling", Score: 4.1, Date: now, Reviewer: "Emily Johnson"},
				},
			},
		},
		{
			ID: "3", Name: "Michael Rodriguez", Email: "michael.rodriguez@company.com",
			Department: "Marketing", Role: model.RoleLearner,
			WorkflowStatus: workflow(now, true, true, false, false, false, 2),
		},
		{
			ID: "4", Name: "Emily Johnson", Email: "emily.johnson@company.com",
			Department: "HR", Role: model.RoleAdmin,
			WorkflowStatus: workflow(now, true, false, false, false, false, 1),
		},
		{
			ID: "5", Name: "David Kim", Email: "david.kim@company.com",
			Department: "Engineering", Role: model.RoleLearner,
			WorkflowStatus: workflow(now, true, false, true, true, false, 3),
		},
		{
			ID: "6", Name: "Olivia Garcia", Email: "olivia.garcia@company.com",
			Department: "Finance", Role: model.RoleLearner,
			WorkflowStatus: workflow(now, true, false, false, false, false, 1),
		},
		{
			ID: "7", Name: "Raj Patel", Email: "raj.patel@company.com",
			Department: "Sales", Role: model.RoleLearner,
			WorkflowStatus: workflow(now, true, true, false, false, false, 2),
		},
		{
			ID: "8", Name: "Laura Adams", Email: "laura.adams@company.com",
			Department: "Engineering", Role: model.RoleLearner,
			WorkflowStatus: workflow(now, false, true, false, false, false, 1),
		},
		{
			ID: "9", Name: "Chen Wei", Email: "chen.wei@company.com",
			Department: "Data Science", Role: model.RoleLearner,
			WorkflowStatus: workflow(now, true, true, false, false, false, 2),
		},
		{
			ID: "10", Name: "Grace Lee", Email: "grace.lee@company.com",
			Department: "Marketing", Role: model.RoleAdmin,
			WorkflowStatus: workflow(now, true, false, false, false, false, 1),
		},
	}
}
