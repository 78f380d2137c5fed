package postgres

import (
	"testing"

	"goperiod/domain/period"
	"goperiod/ports"

	"github.com/stretchr/testify/assert"
)

// Compile-time interface check; live-DB behavior is covered by migrations
// in deployment, not unit tests.
var _ ports.ResultStore = (*DecisionRepositoryImpl)(nil)

func TestPeriodValueNullableMapping(t *testing.T) {
	periodic := period.Result{Outcome: period.OutcomePeriodic, Period: 5}
	v := periodValue(periodic)
	assert.True(t, v.Valid)
	assert.Equal(t, 5.0, v.Float64)

	for _, outcome := range []period.Outcome{
		period.OutcomeNoSignal,
		period.OutcomeConstant,
		period.OutcomeFundamentalLost,
		period.OutcomeNotSignificant,
		period.OutcomePoorFit,
	} {
		v := periodValue(period.Result{Outcome: outcome, Period: 5})
		assert.False(t, v.Valid, "outcome %s must store NULL", outcome)
	}
}
