package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pp-platform/exercise-engine/internal/models"
)

func TestGradeTrueFalse(t *testing.T) {
	tests := []struct {
		name             string
		item             *models.Item
		choice           bool
		expectedCorrect  bool
		expectedFeedback string
	}{
		{
			name: "correct true choice uses default",
			item: &models.Item{
				ID:        "i1",
				Type:      models.TrueFalse,
				TrueFalse: &models.TrueFalseContent{Answer: true},
			},
			choice:           true,
			expectedCorrect:  true,
			expectedFeedback: DefaultCorrectFeedback,
		},
		{
			name: "incorrect choice uses retry default",
			item: &models.Item{
				ID:        "i1",
				Type:      models.TrueFalse,
				TrueFalse: &models.TrueFalseContent{Answer: true},
			},
			choice:           false,
			expectedCorrect:  false,
			expectedFeedback: DefaultRetryFeedback,
		},
		{
			name: "per-choice override wins over item feedback",
			item: &models.Item{
				ID:                "i1",
				Type:              models.TrueFalse,
				FeedbackIncorrect: models.StringPtr("casi"),
				TrueFalse: &models.TrueFalseContent{
					Answer:                true,
					FeedbackFalseIncorrect: models.StringPtr("el agua sí hierve"),
				},
			},
			choice:           false,
			expectedCorrect:  false,
			expectedFeedback: "el agua sí hierve",
		},
		{
			name: "item feedback used when no per-choice override",
			item: &models.Item{
				ID:              "i1",
				Type:            models.TrueFalse,
				FeedbackCorrect: models.StringPtr("muy bien"),
				TrueFalse:       &models.TrueFalseContent{Answer: false},
			},
			choice:           false,
			expectedCorrect:  true,
			expectedFeedback: "muy bien",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GradeTrueFalse(tt.item, tt.choice)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCorrect, result.Correct)
			assert.Equal(t, tt.expectedFeedback, result.Feedback)
			assert.True(t, result.Checked)
			require.NotNil(t, result.Choice)
			assert.Equal(t, tt.choice, *result.Choice)
		})
	}
}
