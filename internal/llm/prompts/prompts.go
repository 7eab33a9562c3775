package prompts

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
	"sync"
	"text/template"
	"unicode/utf8"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
)

//go:embed templates/*.txt
var templateFS embed.FS

var profileTagRegex = regexp.MustCompile(`(?i)</?\s*learner-profile\b[^>]*>`)

const maxFieldRunes = 200

// PathVariant selects how a generated learning path is weighted.
type PathVariant string

const (
	// PathFocused targets only the weakest skills.
	PathFocused PathVariant = "focused"
	// PathBalanced mixes gap closing with deepening strengths. Default.
	PathBalanced PathVariant = "balanced"
	// PathStretch builds on strengths toward adjacent skills.
	PathStretch PathVariant = "stretch"
)

var validVariants = map[PathVariant]bool{
	PathFocused:  true,
	PathBalanced: true,
	PathStretch:  true,
}

var (
	loadOnce      sync.Once
	loadErr       error
	pathTemplates map[PathVariant]*template.Template
)

// IsValidVariant checks if a path variant name is valid.
func IsValidVariant(v string) bool {
	return validVariants[PathVariant(v)]
}

// SkillResult is per-skill performance in the latest assessment.
type SkillResult struct {
	Skill   string
	Correct int
	Total   int
}

// PathData holds template data for path prompts.
type PathData struct {
	Name                 string
	Department           string
	Skills               []model.SkillVector
	CompletedCourses     []string
	Ratings              []model.PerformanceRating
	HasAssessment        bool
	AssessmentDifficulty model.Difficulty
	AssessmentScore      float64
	SkillResults         []SkillResult
	MinModules           int
	MaxModules           int
}

var funcs = template.FuncMap{
	"join":    strings.Join,
	"percent": func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
}

// Load parses the path templates from fsys. It runs once per process.
func Load(fsys fs.FS) error {
	loadOnce.Do(func() {
		pathTemplates = make(map[PathVariant]*template.Template)
		for _, v := range []PathVariant{PathFocused, PathBalanced, PathStretch} {
			file := "templates/path_" + string(v) + ".txt"
			content, err := fs.ReadFile(fsys, file)
			if err != nil {
				loadErr = fmt.Errorf("read prompt file %s: %w", file, err)
				return
			}
			tmpl, err := template.New("path").Funcs(funcs).Parse(string(content))
			if err != nil {
				loadErr = fmt.Errorf("parse prompt template %s: %w", file, err)
				return
			}
			pathTemplates[v] = tmpl
		}
	})
	return loadErr
}

// BuildPathPrompt renders the system prompt for generating a learning path.
// last may be nil when the learner has not completed an assessment.
func BuildPathPrompt(variant PathVariant, user model.User, last *model.Assessment) (string, error) {
	if err := Load(templateFS); err != nil {
		return "", fmt.Errorf("templates load failed: %w", err)
	}
	tmpl, ok := pathTemplates[variant]
	if !ok {
		return "", errors.New("invalid path variant: " + string(variant))
	}

	data := PathData{
		Name:       sanitize(user.Name),
		Department: sanitize(user.Department),
		MinModules: 2,
		MaxModules: 5,
	}
	if sp := user.SkillProfile; sp != nil {
		for _, s := range sp.Skills {
			s.Skill = sanitize(s.Skill)
			data.Skills = append(data.Skills, s)
		}
		for _, c := range sp.CompletedCourses {
			data.CompletedCourses = append(data.CompletedCourses, sanitize(c))
		}
		for _, r := range sp.PerformanceRatings {
			r.Area = sanitize(r.Area)
			data.Ratings = append(data.Ratings, r)
		}
	}
	if last != nil && last.Completed() {
		data.HasAssessment = true
		data.AssessmentDifficulty = last.Difficulty
		data.AssessmentScore = last.Score
		data.SkillResults = SkillResults(*last)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SkillResults tallies correct answers per question skill, sorted by skill.
func SkillResults(a model.Assessment) []SkillResult {
	bySkill := make(map[string]*SkillResult)
	for _, q := range a.Questions {
		r, ok := bySkill[q.Skill]
		if !ok {
			r = &SkillResult{Skill: q.Skill}
			bySkill[q.Skill] = r
		}
		r.Total++
	}
	for _, resp := range a.Responses {
		if !resp.IsCorrect {
			continue
		}
		if q, ok := a.Question(resp.QuestionID); ok {
			bySkill[q.Skill].Correct++
		}
	}

	out := make([]SkillResult, 0, len(bySkill))
	for _, r := range bySkill {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Skill < out[j].Skill })
	return out
}

func sanitize(s string) string {
	s = profileTagRegex.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) > maxFieldRunes {
		s = string([]rune(s)[:maxFieldRunes]) + "..."
	}
	return s
}
