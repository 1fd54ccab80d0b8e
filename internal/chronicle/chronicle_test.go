package chronicle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		xpLost    int
		events    int
		prev      Rating
		want      Rating
	}{
		{"recovery beats strong after absent day", 4, 0, 2, RatingAbsent, RatingRecovery},
		{"recovery after light day", 1, 0, 0, RatingLight, RatingRecovery},
		{"no recovery without a completion", 0, 0, 3, RatingAbsent, RatingLight},
		{"strong needs three and no losses", 3, 0, 0, RatingSteady, RatingStrong},
		{"losses demote strong to steady", 3, 10, 0, RatingSteady, RatingSteady},
		{"two completions is steady", 2, 0, 0, RatingNeutral, RatingSteady},
		{"events only is light", 0, 5, 2, RatingSteady, RatingLight},
		{"nothing at all is neutral", 0, 0, 0, RatingSteady, RatingNeutral},
		{"quiet day after recovery is neutral", 0, 0, 0, RatingRecovery, RatingNeutral},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Classify(c.completed, c.xpLost, c.events, c.prev))
		})
	}
}

func TestClassifyNeverReturnsAbsent(t *testing.T) {
	for completed := 0; completed <= 4; completed++ {
		for events := 0; events <= 2; events++ {
			got := Classify(completed, 0, events, RatingAbsent)
			assert.NotEqual(t, RatingAbsent, got)
		}
	}
}
