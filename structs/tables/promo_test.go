package tables

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromoCampaign_ActiveAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	pc := &PromoCampaign{StartDate: start, EndDate: end}

	assert.False(t, pc.ActiveAt(start.Add(-time.Second)))
	assert.True(t, pc.ActiveAt(start)) // start is inclusive
	assert.True(t, pc.ActiveAt(start.AddDate(0, 0, 15)))
	assert.False(t, pc.ActiveAt(end)) // end is exclusive
	assert.False(t, pc.ActiveAt(end.Add(time.Hour)))
}
