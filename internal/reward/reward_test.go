package reward

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	cases := []struct {
		priority  int
		estimated int
		want      int
	}{
		{1, 5, 20},
		{1, 30, 23},
		{3, 30, 63},
		{3, 45, 64}, // integer floor division on the time bonus
		{5, 480, 148},
		{5, 5, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Score(tc.priority, tc.estimated),
			"Score(%d, %d)", tc.priority, tc.estimated)
	}
}

func TestScore_FormulaHoldsAcrossRange(t *testing.T) {
	for priority := 1; priority <= 5; priority++ {
		for estimated := 5; estimated <= 480; estimated += 5 {
			want := priority*20 + estimated/10
			assert.Equal(t, want, Score(priority, estimated),
				"Score(%d, %d)", priority, estimated)
		}
	}
}

func TestLevel(t *testing.T) {
	assert.Equal(t, 1, Level(0))
	assert.Equal(t, 1, Level(99))
	assert.Equal(t, 2, Level(100))
	assert.Equal(t, 4, Level(350))
}

func TestLevelProgress(t *testing.T) {
	current, needed := LevelProgress(350)
	assert.Equal(t, 50, current)
	assert.Equal(t, 100, needed)
}
