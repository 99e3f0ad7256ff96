package session

import "strings"

// minGridCells keeps the score grid at three rows of two even when fewer
// categories were returned; missing slots render as empty cells.
const minGridCells = 6

var mbtiLabels = map[string]string{
	"e": "Extraversion", "i": "Introversion",
	"s": "Sensing", "n": "Intuition",
	"t": "Thinking", "f": "Feeling",
	"j": "Judging", "p": "Perceiving",
}

// ScoreCell is one slot of the result grid. Empty cells are padding.
type ScoreCell struct {
	Key   string
	Label string
	Value string
	Empty bool
}

type ScoreRow [2]ScoreCell

// ScoreGrid groups a result's category scores into rows of two for display,
// padded with empty cells up to three rows, preserving the order the scores
// arrived in. It is a pure function of the result.
func ScoreGrid(result *TestResult) []ScoreRow {
	if result == nil {
		return nil
	}

	cells := make([]ScoreCell, 0, len(result.CategoryScores))
	for _, score := range result.CategoryScores {
		cells = append(cells, ScoreCell{
			Key:   score.Key,
			Label: categoryLabel(score.Key, result.TestType),
			Value: score.Value,
		})
	}
	for len(cells) < minGridCells || len(cells)%2 != 0 {
		cells = append(cells, ScoreCell{Empty: true})
	}

	rows := make([]ScoreRow, 0, len(cells)/2)
	for i := 0; i < len(cells); i += 2 {
		rows = append(rows, ScoreRow{cells[i], cells[i+1]})
	}
	return rows
}

// categoryLabel maps a score key to its display label: MBTI letters get the
// axis name for personality results, RIASEC keys already read as labels.
func categoryLabel(key, testType string) string {
	if testType == "PERSONALITY" {
		if label, ok := mbtiLabels[strings.ToLower(key)]; ok {
			return label
		}
	}
	return key
}
