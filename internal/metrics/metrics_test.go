package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := NewNop()

	m.NotificationCreated("FOLLOW")
	m.NotificationCreated("FOLLOW")
	m.NotificationSuppressed("COMMENT")
	m.Toggle("reaction", OutcomeRace)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.notificationsCreated.WithLabelValues("FOLLOW")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notificationsSkipped.WithLabelValues("COMMENT")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.notificationsFailed.WithLabelValues("LIKE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.toggles.WithLabelValues("reaction", OutcomeRace)))
}
