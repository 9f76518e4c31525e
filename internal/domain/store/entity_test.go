// internal/domain/store/entity_test.go
package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 8, 31, hour, min, 0, 0, time.UTC)
}

func TestIsOpenAt(t *testing.T) {
	tests := []struct {
		name    string
		opening string
		closing string
		when    time.Time
		open    bool
	}{
		{"before opening", "09:00", "18:00", at(8, 59), false},
		{"at opening", "09:00", "18:00", at(9, 0), true},
		{"inside window", "09:00", "18:00", at(12, 30), true},
		{"at closing", "09:00", "18:00", at(18, 0), false},
		{"overnight open late", "18:00", "02:00", at(23, 15), true},
		{"overnight open after midnight", "18:00", "02:00", at(1, 30), true},
		{"overnight closed midday", "18:00", "02:00", at(12, 0), false},
		{"zero-length window never open", "10:00", "10:00", at(10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Store{Opening: tt.opening, Closing: tt.closing}
			got, err := s.IsOpenAt(tt.when)
			require.NoError(t, err)
			assert.Equal(t, tt.open, got)
		})
	}
}

func TestIsOpenAtRejectsBadClock(t *testing.T) {
	s := Store{Opening: "9am", Closing: "18:00"}
	_, err := s.IsOpenAt(at(12, 0))
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestNewValidates(t *testing.T) {
	now := at(10, 0)

	_, err := New("s1", "v1", "NOMs Bowl", "", CategoryHawker, "09:00", "18:00", true, now)
	require.NoError(t, err)

	_, err = New("s1", "", "NOMs Bowl", "", CategoryHawker, "09:00", "18:00", true, now)
	assert.ErrorIs(t, err, ErrInvalidVendorID)

	_, err = New("s1", "v1", "  ", "", CategoryHawker, "09:00", "18:00", true, now)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = New("s1", "v1", "NOMs Bowl", "", CategoryHawker, "25:00", "18:00", true, now)
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestApplyPatch(t *testing.T) {
	now := at(10, 0)
	s, err := New("s1", "v1", "NOMs Bowl", "", CategoryHawker, "09:00", "18:00", false, now)
	require.NoError(t, err)

	name := "NOMs Bowl SG"
	green := true
	later := at(11, 0)
	require.NoError(t, s.Apply(Patch{Name: &name, IsGreenParticipant: &green}, later))

	assert.Equal(t, "NOMs Bowl SG", s.Name)
	assert.True(t, s.IsGreenParticipant)
	assert.Equal(t, later.UTC(), s.UpdatedAt)
	// untouched fields survive
	assert.Equal(t, "09:00", s.Opening)
}
