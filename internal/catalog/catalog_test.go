package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiresift/hiresift-backend/internal/model"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(
		filepath.Join("testdata", "questions.json"),
		filepath.Join("testdata", "reference_solutions.json"),
		filepath.Join("testdata", "hr_questions.json"),
	)
	require.NoError(t, err)
	return c
}

func TestLoad(t *testing.T) {
	c := loadTestCatalog(t)

	assert.Len(t, c.Questions(), 4)

	q, ok := c.Question(1)
	require.True(t, ok)
	assert.Equal(t, "Two Sum", q.Title)
	assert.Equal(t, model.DifficultyEasy, q.Difficulty)
	require.Len(t, q.TestCases, 2)
	assert.Equal(t, map[string]any{"nums": []any{float64(2), float64(7), float64(11), float64(15)}, "target": float64(9)}, q.TestCases[0].Input)

	_, ok = c.Question(99)
	assert.False(t, ok)
}

func TestLoadMissingOptionalCatalogs(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "questions.json"), "testdata/absent.json", "")
	require.NoError(t, err)

	assert.Nil(t, c.Fragments(1))
	assert.Empty(t, c.SelectHRQuestions(4))
}

func TestFragments(t *testing.T) {
	c := loadTestCatalog(t)

	assert.NotEmpty(t, c.Fragments(1))
	assert.Nil(t, c.Fragments(42))
}

func TestDifficultyFor(t *testing.T) {
	assert.Equal(t, model.DifficultyHard, DifficultyFor(70))
	assert.Equal(t, model.DifficultyMedium, DifficultyFor(69))
	assert.Equal(t, model.DifficultyMedium, DifficultyFor(40))
	assert.Equal(t, model.DifficultyEasy, DifficultyFor(39))
}

func TestSelectQuestionsByBand(t *testing.T) {
	c := loadTestCatalog(t)

	for i := 0; i < 10; i++ {
		picked := c.SelectQuestions(20, 2)
		require.Len(t, picked, 2)
		for _, q := range picked {
			assert.Equal(t, model.DifficultyEasy, q.Difficulty)
		}
	}
}

func TestSelectQuestionsFallsBackToWholePool(t *testing.T) {
	c := loadTestCatalog(t)

	// The test catalog has no hard questions; a high resume score
	// must still produce a selection.
	picked := c.SelectQuestions(90, 2)
	assert.Len(t, picked, 2)
}

func TestSelectQuestionsBounds(t *testing.T) {
	c := loadTestCatalog(t)

	assert.Nil(t, c.SelectQuestions(50, 0))
	assert.Len(t, c.SelectQuestions(20, 100), 2, "capped at pool size")
}

func TestSelectHRQuestions(t *testing.T) {
	c := loadTestCatalog(t)

	picked := c.SelectHRQuestions(2)
	assert.Len(t, picked, 2)

	all := c.SelectHRQuestions(100)
	assert.Len(t, all, 3)
}
