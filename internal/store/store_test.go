package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
)

func testAssessment(id, userID string, started time.Time) model.Assessment {
	return model.Assessment{
		ID:     id,
		UserID: userID,
		Questions: []model.Question{
			{ID: "q1", Text: "Q1", Options: []string{"a", "b"}, CorrectAnswer: 0, Difficulty: 1},
			{ID: "q2", Text: "Q2", Options: []string{"a", "b"}, CorrectAnswer: 1, Difficulty: 1},
		},
		Responses:  []model.Response{},
		StartedAt:  started,
		Difficulty: model.DifficultyBeginner,
	}
}

func TestAssessmentCRUD(t *testing.T) {
	s := NewAssessmentStore()

	if _, ok := s.Get("missing"); ok {
		t.Fatal("expected missing assessment")
	}

	created := s.Create(testAssessment("a1", "1", time.Now()))
	if created.ID != "a1" {
		t.Fatalf("expected id a1, got %q", created.ID)
	}
	if s.Count() != 1 {
		t.Fatalf("expected count 1, got %d", s.Count())
	}

	got, ok := s.Get("a1")
	if !ok {
		t.Fatal("Get: not found")
	}
	if len(got.Questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(got.Questions))
	}

	// Mutating a returned copy must not reach the store.
	got.Responses = append(got.Responses, model.Response{QuestionID: "q1"})
	again, _ := s.Get("a1")
	if len(again.Responses) != 0 {
		t.Errorf("store aliased returned slice: %d responses", len(again.Responses))
	}
}

func TestAssessmentUpdate(t *testing.T) {
	s := NewAssessmentStore()
	s.Create(testAssessment("a1", "1", time.Now()))

	updated, err := s.Update("a1", func(a *model.Assessment) error {
		a.Responses = append(a.Responses, model.Response{QuestionID: "q1", IsCorrect: true})
		a.ID = "renamed"
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != "a1" {
		t.Errorf("update changed id to %q", updated.ID)
	}
	if len(updated.Responses) != 1 {
		t.Errorf("expected 1 response, got %d", len(updated.Responses))
	}

	_, err = s.Update("missing", func(a *model.Assessment) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAssessmentUpdateErrorLeavesStateUntouched(t *testing.T) {
	s := NewAssessmentStore()
	s.Create(testAssessment("a1", "1", time.Now()))

	boom := errors.New("boom")
	_, err := s.Update("a1", func(a *model.Assessment) error {
		a.Responses = append(a.Responses, model.Response{QuestionID: "q1"})
		a.Score = 1
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, _ := s.Get("a1")
	if len(got.Responses) != 0 || got.Score != 0 {
		t.Errorf("failed update leaked: %+v", got)
	}
}

func TestAssessmentUpdateSerializesPerID(t *testing.T) {
	s := NewAssessmentStore()
	s.Create(testAssessment("a1", "1", time.Now()))

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Update("a1", func(a *model.Assessment) error {
				a.Responses = append(a.Responses, model.Response{QuestionID: fmt.Sprintf("q%d", i)})
				return nil
			})
			if err != nil {
				t.Errorf("Update: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := s.Get("a1")
	if len(got.Responses) != writers {
		t.Errorf("expected %d responses, got %d (lost update)", writers, len(got.Responses))
	}
}

func TestListByUser(t *testing.T) {
	s := NewAssessmentStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Create(testAssessment("late", "1", base.Add(time.Hour)))
	s.Create(testAssessment("early", "1", base))
	s.Create(testAssessment("other", "2", base))

	list := s.ListByUser("1")
	if len(list) != 2 {
		t.Fatalf("expected 2 assessments, got %d", len(list))
	}
	if list[0].ID != "early" || list[1].ID != "late" {
		t.Errorf("expected oldest first, got %s, %s", list[0].ID, list[1].ID)
	}
	if got := s.ListByUser("nobody"); len(got) != 0 {
		t.Errorf("expected no assessments, got %d", len(got))
	}
}

func TestUserCRUD(t *testing.T) {
	s := NewUserStore()
	if s.UserCount() != 0 {
		t.Fatalf("expected empty directory")
	}

	s.CreateUser(model.User{ID: "1", Name: "Sarah Chen", Email: "sarah.chen@company.com", Role: model.RoleLearner, Department: "Engineering"})
	s.CreateUser(model.User{ID: "2", Name: "Emily Johnson", Email: "emily.johnson@company.com", Role: model.RoleAdmin, Department: "HR"})

	u, ok := s.GetUserByID("1")
	if !ok || u.Name != "Sarah Chen" {
		t.Fatalf("GetUserByID: %+v, %v", u, ok)
	}
	if _, ok := s.GetUserByID("99"); ok {
		t.Error("expected unknown id to be missing")
	}

	u, ok = s.GetUserByEmail("  Emily.Johnson@Company.com ")
	if !ok || u.ID != "2" {
		t.Errorf("GetUserByEmail case-insensitive: %+v, %v", u, ok)
	}

	users := s.ListUsers()
	if len(users) != 2 || users[0].ID != "1" || users[1].ID != "2" {
		t.Errorf("ListUsers not in insertion order: %+v", users)
	}

	updated, err := s.UpdateUser("1", func(u *model.User) error {
		u.Department = "Platform"
		u.ID = "hijack"
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.ID != "1" || updated.Department != "Platform" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	if _, err := s.UpdateUser("99", func(*model.User) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if err := s.DeleteUser("2"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := s.DeleteUser("2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if s.UserCount() != 1 {
		t.Errorf("expected 1 user, got %d", s.UserCount())
	}
}

func TestGetUserByEmailPrefersEarliest(t *testing.T) {
	s := NewUserStore()
	for i := 1; i <= 8; i++ {
		email := "dup@x.com"
		if i%2 == 0 {
			email = "DUP@X.com"
		}
		s.CreateUser(model.User{ID: fmt.Sprintf("u%d", i), Email: email, Role: model.RoleLearner})
	}

	for i := 0; i < 200; i++ {
		u, ok := s.GetUserByEmail("dup@x.com")
		if !ok || u.ID != "u1" {
			t.Fatalf("lookup %d: got %q, %v, want u1", i, u.ID, ok)
		}
	}

	if err := s.DeleteUser("u1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if u, _ := s.GetUserByEmail("dup@x.com"); u.ID != "u2" {
		t.Errorf("after delete got %q, want u2", u.ID)
	}
	if _, ok := s.GetUserByEmail("nobody@x.com"); ok {
		t.Error("expected unknown email to be missing")
	}
}

func TestQuestionBank(t *testing.T) {
	qs := []model.Question{
		{ID: "q1", Options: []string{"a", "b"}, CorrectAnswer: 0, Difficulty: 1},
		{ID: "q2", Options: []string{"a", "b"}, CorrectAnswer: 1, Difficulty: 2},
		{ID: "q3", Options: []string{"a", "b"}, CorrectAnswer: 1, Difficulty: 3},
		{ID: "q4", Options: []string{"a", "b"}, CorrectAnswer: 0, Difficulty: 1},
	}
	bank, err := NewQuestionBank(qs)
	if err != nil {
		t.Fatalf("NewQuestionBank: %v", err)
	}
	if bank.QuestionCount() != 4 {
		t.Errorf("expected 4 questions, got %d", bank.QuestionCount())
	}

	tests := []struct {
		tier    int
		wantIDs []string
	}{
		{1, []string{"q1", "q4"}},
		{2, []string{"q1", "q2", "q4"}},
		{3, []string{"q1", "q2", "q3", "q4"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("tier %d", tt.tier), func(t *testing.T) {
			got := bank.ListQuestionsUpToTier(tt.tier)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d questions, got %d", len(tt.wantIDs), len(got))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestQuestionBankValidation(t *testing.T) {
	tests := []struct {
		name string
		q    model.Question
	}{
		{"missing id", model.Question{Options: []string{"a", "b"}, Difficulty: 1}},
		{"tier too high", model.Question{ID: "x", Options: []string{"a", "b"}, Difficulty: 4}},
		{"tier zero", model.Question{ID: "x", Options: []string{"a", "b"}, Difficulty: 0}},
		{"one option", model.Question{ID: "x", Options: []string{"a"}, Difficulty: 1}},
		{"answer out of range", model.Question{ID: "x", Options: []string{"a", "b"}, CorrectAnswer: 2, Difficulty: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuestionBank([]model.Question{tt.q}); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	dup := model.Question{ID: "q1", Options: []string{"a", "b"}, Difficulty: 1}
	if _, err := NewQuestionBank([]model.Question{dup, dup}); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestTelemetryReturnsCopies(t *testing.T) {
	tel := NewTelemetry(
		[]model.AgentStatus{{Name: "Profile Agent", Status: model.AgentActive}},
		model.SystemMetrics{TotalUsers: 10},
		[]model.DepartmentAnalytics{{Department: "Engineering", TopSkillGaps: []string{"DevOps"}}},
	)

	agents := tel.AgentStatuses()
	agents[0].Name = "changed"
	if tel.AgentStatuses()[0].Name != "Profile Agent" {
		t.Error("agent snapshot aliased")
	}

	depts := tel.DepartmentAnalytics()
	depts[0].TopSkillGaps[0] = "changed"
	if tel.DepartmentAnalytics()[0].TopSkillGaps[0] != "DevOps" {
		t.Error("department snapshot aliased")
	}

	if tel.SystemMetrics().TotalUsers != 10 {
		t.Errorf("expected 10 total users, got %d", tel.SystemMetrics().TotalUsers)
	}
}
