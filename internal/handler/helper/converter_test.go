package helper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
)

func TestConvertOptionsToObjects_StripsCorrectness(t *testing.T) {
	options := []entity.Option{
		{ID: 1, QuestionID: 9, Text: "A", IsCorrect: true},
		{ID: 2, QuestionID: 9, Text: "B"},
	}

	converted := ConvertOptionsToObjects(options)

	require.Len(t, converted, 2)
	assert.Equal(t, QuestionOption{ID: 1, Text: "A"}, converted[0])
	raw, err := json.Marshal(converted)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "is_correct")
}

func TestConvertOptionsToObjects_Empty(t *testing.T) {
	assert.Empty(t, ConvertOptionsToObjects(nil))
}
