// Package catalog loads the static question, reference-solution and
// HR-question data files once at startup and serves them as immutable
// in-memory catalogs. A Catalog is safe for concurrent use.
package catalog

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/hiresift/hiresift-backend/internal/model"
)

// Catalog holds all static assessment data for the process lifetime.
type Catalog struct {
	questions []model.Question
	byID      map[int]model.Question
	fragments map[int][]string
	hr        []model.HRQuestion
}

// Load reads the three catalog files. The reference and HR paths are
// optional: an empty path or a missing file yields an empty catalog
// for that concern, which downstream components treat as "no data
// available" rather than an error.
func Load(questionsPath, referencePath, hrPath string) (*Catalog, error) {
	c := &Catalog{
		byID:      make(map[int]model.Question),
		fragments: make(map[int][]string),
	}

	if err := readJSON(questionsPath, &c.questions); err != nil {
		return nil, fmt.Errorf("load question catalog: %w", err)
	}
	for _, q := range c.questions {
		c.byID[q.ID] = q
	}

	if referencePath != "" {
		var refs []model.ReferenceSolution
		if err := readJSONOptional(referencePath, &refs); err != nil {
			return nil, fmt.Errorf("load reference catalog: %w", err)
		}
		for _, r := range refs {
			c.fragments[r.QuestionID] = r.Fragments
		}
	}

	if hrPath != "" {
		if err := readJSONOptional(hrPath, &c.hr); err != nil {
			return nil, fmt.Errorf("load hr catalog: %w", err)
		}
	}

	return c, nil
}

func readJSON(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func readJSONOptional(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// Questions returns all coding questions in catalog order.
func (c *Catalog) Questions() []model.Question {
	return c.questions
}

// Question looks up a coding question by id.
func (c *Catalog) Question(id int) (model.Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Fragments returns the reference-solution fragments for a question,
// or nil when no reference is available.
func (c *Catalog) Fragments(questionID int) []string {
	return c.fragments[questionID]
}

// DifficultyFor maps a resume score to the question difficulty band.
func DifficultyFor(resumeScore int) model.Difficulty {
	switch {
	case resumeScore >= 70:
		return model.DifficultyHard
	case resumeScore >= 40:
		return model.DifficultyMedium
	default:
		return model.DifficultyEasy
	}
}

// SelectQuestions picks up to n questions matching the difficulty band
// for the given resume score. When the band has no questions the whole
// catalog is the pool. The returned slice is a shuffled copy.
func (c *Catalog) SelectQuestions(resumeScore, n int) []model.Question {
	if len(c.questions) == 0 || n <= 0 {
		return nil
	}

	level := DifficultyFor(resumeScore)
	pool := make([]model.Question, 0, len(c.questions))
	for _, q := range c.questions {
		if q.Difficulty == level {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, c.questions...)
	}

	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}

// SelectHRQuestions picks up to n HR questions at random.
func (c *Catalog) SelectHRQuestions(n int) []model.HRQuestion {
	if len(c.hr) == 0 || n <= 0 {
		return nil
	}
	pool := append([]model.HRQuestion(nil), c.hr...)
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
