package route_test

import (
	"testing"

	"relay/internal/core/domain/model/route"
	"relay/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepStatus_TransitionTo(t *testing.T) {
	allowed := map[route.StepStatus][]route.StepStatus{
		route.Suggested:       {route.Accepted, route.Rejected},
		route.Accepted:        {route.Ongoing, route.Cancelled},
		route.Ongoing:         {route.Completed, route.Cancelled, route.ProblemReported},
		route.ProblemReported: {route.Ongoing, route.Completed, route.Cancelled},
	}
	all := []route.StepStatus{
		route.Suggested, route.Accepted, route.Rejected, route.Ongoing,
		route.Completed, route.Cancelled, route.ProblemReported,
	}

	for _, from := range all {
		for _, to := range all {
			expected := false
			for _, a := range allowed[from] {
				expected = expected || a == to
			}

			next, err := from.TransitionTo(to)

			if expected {
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, next)
			} else {
				require.ErrorIs(t, err, errs.ErrInvalidStateTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestStepStatus_Final(t *testing.T) {
	assert.True(t, route.Completed.IsFinal())
	assert.True(t, route.Rejected.IsFinal())
	assert.True(t, route.Cancelled.IsFinal())
	assert.False(t, route.ProblemReported.IsFinal())

	for _, final := range []route.StepStatus{route.Completed, route.Rejected, route.Cancelled} {
		for _, to := range []route.StepStatus{route.Suggested, route.Accepted, route.Ongoing, route.Cancelled} {
			assert.False(t, final.CanTransitionTo(to), "%s -> %s", final, to)
		}
	}
}

func TestParseStepStatus(t *testing.T) {
	s, err := route.ParseStepStatus("PROBLEM_REPORTED")
	require.NoError(t, err)
	assert.Equal(t, route.ProblemReported, s)

	_, err = route.ParseStepStatus("LOST")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
