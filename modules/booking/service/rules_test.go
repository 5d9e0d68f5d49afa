package service

import (
	"testing"
	"time"

	"space-booking-api/modules/booking/entity"
	spaceEntity "space-booking-api/modules/space/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpace(tz string) *spaceEntity.Space {
	s := &spaceEntity.Space{
		OrgID:    uuid.New(),
		Name:     "Court 1",
		Slug:     "court-1",
		Timezone: tz,
		IsActive: true,
	}
	s.ID = uuid.New()
	return s
}

func testRules(spaceID uuid.UUID) *spaceEntity.BookingRules {
	return &spaceEntity.BookingRules{
		SpaceID:             spaceID,
		SlotDurationMinutes: 60,
		OpenTime:            "08:00",
		CloseTime:           "22:00",
		MaxAdvanceDays:      30,
		MaxDurationMinutes:  180,
		BufferMinutes:       0,
	}
}

func requestAt(space *spaceEntity.Space, start, end time.Time) *entity.BookingRequest {
	return &entity.BookingRequest{
		SpaceID:   space.ID,
		UserID:    uuid.New(),
		UserName:  "Dana",
		StartTime: start,
		EndTime:   end,
		OrgID:     space.OrgID,
	}
}

func TestEvaluateRules(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	space := testSpace("UTC")
	rules := testRules(space.ID)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start, end time.Time
		wantReason entity.ReasonCode
	}{
		{
			name:  "one hour inside the window",
			start: day.Add(9 * time.Hour),
			end:   day.Add(10 * time.Hour),
		},
		{
			name:       "zero-length interval",
			start:      day.Add(9 * time.Hour),
			end:        day.Add(9 * time.Hour),
			wantReason: entity.ReasonInvalidInterval,
		},
		{
			name:       "inverted interval",
			start:      day.Add(10 * time.Hour),
			end:        day.Add(9 * time.Hour),
			wantReason: entity.ReasonInvalidInterval,
		},
		{
			name:       "duration not a slot multiple",
			start:      day.Add(9 * time.Hour),
			end:        day.Add(9*time.Hour + 90*time.Minute),
			wantReason: entity.ReasonNotSlotAligned,
		},
		{
			name:  "duration exactly at the maximum",
			start: day.Add(9 * time.Hour),
			end:   day.Add(12 * time.Hour),
		},
		{
			name:       "duration one slot over the maximum",
			start:      day.Add(9 * time.Hour),
			end:        day.Add(13 * time.Hour),
			wantReason: entity.ReasonDurationExceeded,
		},
		{
			name:       "start in the past",
			start:      now.Add(-24 * time.Hour).Add(9 * time.Hour),
			end:        now.Add(-24 * time.Hour).Add(10 * time.Hour),
			wantReason: entity.ReasonInPast,
		},
		{
			name:       "start beyond the advance horizon",
			start:      now.Add(31 * 24 * time.Hour).Add(9 * time.Hour),
			end:        now.Add(31 * 24 * time.Hour).Add(10 * time.Hour),
			wantReason: entity.ReasonTooFarInAdvance,
		},
		{
			name:  "exactly the open boundary",
			start: day.Add(8 * time.Hour),
			end:   day.Add(9 * time.Hour),
		},
		{
			name:  "exactly the close boundary",
			start: day.Add(21 * time.Hour),
			end:   day.Add(22 * time.Hour),
		},
		{
			name:       "one hour before open",
			start:      day.Add(7 * time.Hour),
			end:        day.Add(8 * time.Hour),
			wantReason: entity.ReasonOutsideOpenHours,
		},
		{
			name:       "ends past close",
			start:      day.Add(21*time.Hour + 30*time.Minute),
			end:        day.Add(22*time.Hour + 30*time.Minute),
			wantReason: entity.ReasonOutsideOpenHours,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, violation := EvaluateRules(requestAt(space, tt.start, tt.end), space, rules, now)
			if tt.wantReason == "" {
				require.Nil(t, violation)
				require.NotNil(t, normalized)
				assert.Equal(t, time.UTC, normalized.StartTime.Location())
			} else {
				require.NotNil(t, violation)
				assert.Equal(t, tt.wantReason, violation.Reason)
			}
		})
	}
}

func TestEvaluateRulesMinuteOutsideWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	space := testSpace("UTC")
	rules := testRules(space.ID)
	rules.SlotDurationMinutes = 1
	rules.MaxDurationMinutes = 840
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	// The full open window is accepted.
	_, violation := EvaluateRules(requestAt(space, day.Add(8*time.Hour), day.Add(22*time.Hour)), space, rules, now)
	require.Nil(t, violation)

	// One minute before open is rejected.
	_, violation = EvaluateRules(requestAt(space, day.Add(8*time.Hour-time.Minute), day.Add(9*time.Hour)), space, rules, now)
	require.NotNil(t, violation)
	assert.Equal(t, entity.ReasonOutsideOpenHours, violation.Reason)

	// One minute past close is rejected.
	_, violation = EvaluateRules(requestAt(space, day.Add(21*time.Hour), day.Add(22*time.Hour+time.Minute)), space, rules, now)
	require.NotNil(t, violation)
	assert.Equal(t, entity.ReasonOutsideOpenHours, violation.Reason)
}

func TestEvaluateRulesAdminOverride(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	space := testSpace("UTC")
	rules := testRules(space.ID)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	// Outside open hours, over the duration cap, and beyond the horizon:
	// an override passes all of it.
	req := requestAt(space, day.Add(100*24*time.Hour), day.Add(100*24*time.Hour+13*time.Hour))
	req.IsAdmin = true
	normalized, violation := EvaluateRules(req, space, rules, now)
	require.Nil(t, violation)
	require.NotNil(t, normalized)

	// A degenerate interval is still refused.
	req = requestAt(space, day.Add(9*time.Hour), day.Add(9*time.Hour))
	req.IsAdmin = true
	_, violation = EvaluateRules(req, space, rules, now)
	require.NotNil(t, violation)
	assert.Equal(t, entity.ReasonInvalidInterval, violation.Reason)
}

func TestEvaluateRulesFixedSlot(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	space := testSpace("UTC")
	rules := testRules(space.ID)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	// Slot 2 of a 60-minute grid opening at 08:00 is 10:00-11:00.
	slot := 2
	req := requestAt(space, day.Add(10*time.Hour), day.Add(11*time.Hour))
	req.SlotIndex = &slot
	_, violation := EvaluateRules(req, space, rules, now)
	require.Nil(t, violation)

	// The same slot index with a shifted interval is not aligned.
	req = requestAt(space, day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute))
	req.SlotIndex = &slot
	_, violation = EvaluateRules(req, space, rules, now)
	require.NotNil(t, violation)
	assert.Equal(t, entity.ReasonNotSlotAligned, violation.Reason)
}

func TestEvaluateRulesSpaceTimezone(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	space := testSpace("America/New_York")
	rules := testRules(space.ID)

	// 13:00 UTC on Sep 2 is 09:00 in New York: inside the window.
	start := time.Date(2026, 9, 2, 13, 0, 0, 0, time.UTC)
	_, violation := EvaluateRules(requestAt(space, start, start.Add(time.Hour)), space, rules, now)
	require.Nil(t, violation)

	// 09:00 UTC is 05:00 in New York: before open.
	start = time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	_, violation = EvaluateRules(requestAt(space, start, start.Add(time.Hour)), space, rules, now)
	require.NotNil(t, violation)
	assert.Equal(t, entity.ReasonOutsideOpenHours, violation.Reason)
}
