package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConflictRefinementsWrapConflict(t *testing.T) {
	for _, err := range []error{ErrAlreadyActive, ErrAlreadyAnswered, ErrNoActiveSession} {
		assert.True(t, errors.Is(err, ErrConflict), "%v должна оборачивать ErrConflict", err)
	}
	assert.False(t, errors.Is(ErrAlreadyActive, ErrAlreadyAnswered))
}

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrNotFound, KindNotFound},
		{fmt.Errorf("quiz 7: %w", ErrNotFound), KindNotFound},
		{ErrNotPublished, KindNotPublished},
		{ErrForbidden, KindPermissionDenied},
		{ErrUnauthorized, KindUnauthorized},
		{fmt.Errorf("start: %w", ErrAlreadyActive), KindAlreadyActive},
		{ErrAlreadyAnswered, KindAlreadyAnswered},
		{ErrNoActiveSession, KindNoActiveSession},
		{ErrConflict, KindConflict},
		{ErrInvalidOption, KindInvalidOption},
		{&PublishValidationError{Rule: RuleNoQuestions}, KindValidation},
		{errors.New("boom"), KindInternal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Kind(tc.err), "Kind(%v)", tc.err)
	}
}

func TestPublishValidationErrorMessage(t *testing.T) {
	err := &PublishValidationError{Rule: RuleNoCorrectOption, QuestionID: 3, QuestionText: "2+2?"}

	assert.Contains(t, err.Error(), "2+2?")
	assert.Contains(t, err.Error(), "correct")
	assert.ErrorIs(t, err, ErrValidation)

	var pve *PublishValidationError
	assert.True(t, errors.As(fmt.Errorf("publish: %w", err), &pve))
	assert.Equal(t, uint(3), pve.QuestionID)
}
