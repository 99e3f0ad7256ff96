package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreGridPadsOddCountToThreeRows(t *testing.T) {
	result := &TestResult{
		TestType: "CAREER",
		CategoryScores: []CategoryScore{
			{Key: "Realistic", Value: "3"},
			{Key: "Investigative", Value: "1"},
			{Key: "Artistic", Value: "4"},
			{Key: "Social", Value: "0"},
			{Key: "Enterprising", Value: "2"},
		},
	}

	rows := ScoreGrid(result)
	require.Len(t, rows, 3)

	var keys []string
	for _, row := range rows {
		for _, cell := range row {
			if !cell.Empty {
				keys = append(keys, cell.Key)
			}
		}
	}
	assert.Equal(t, []string{"Realistic", "Investigative", "Artistic", "Social", "Enterprising"}, keys)
	assert.True(t, rows[2][1].Empty)
}

func TestScoreGridMapsPersonalityLabels(t *testing.T) {
	result := &TestResult{
		TestType: "PERSONALITY",
		CategoryScores: []CategoryScore{
			{Key: "e", Value: "2"},
			{Key: "I", Value: "1"},
		},
	}

	rows := ScoreGrid(result)
	require.Len(t, rows, 3)
	assert.Equal(t, "Extraversion", rows[0][0].Label)
	assert.Equal(t, "Introversion", rows[0][1].Label)
	assert.Equal(t, "2", rows[0][0].Value)
}

func TestScoreGridKeepsCareerKeysAsLabels(t *testing.T) {
	result := &TestResult{
		TestType:       "CAREER",
		CategoryScores: []CategoryScore{{Key: "Artistic", Value: "5"}},
	}

	rows := ScoreGrid(result)
	assert.Equal(t, "Artistic", rows[0][0].Label)
}

func TestScoreGridGrowsBeyondSixInPairs(t *testing.T) {
	scores := make([]CategoryScore, 7)
	for i := range scores {
		scores[i] = CategoryScore{Key: "k", Value: "0"}
	}

	rows := ScoreGrid(&TestResult{TestType: "CAREER", CategoryScores: scores})
	require.Len(t, rows, 4)
	assert.False(t, rows[3][0].Empty)
	assert.True(t, rows[3][1].Empty)
}

func TestScoreGridNilResult(t *testing.T) {
	assert.Nil(t, ScoreGrid(nil))
}
