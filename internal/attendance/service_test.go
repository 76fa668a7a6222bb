package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func fixedNowService() *Service {
	return &Service{now: func() time.Time {
		return time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC)
	}}
}

// present 以外はシフト・残業・打刻を持たない
func TestBuildRecordNonPresentClearsFields(t *testing.T) {
	s := fixedNowService()

	for _, status := range []string{StatusAbsent, StatusLeave} {
		in := UpsertAttendanceRequest{
			EmployeeID:    "e1",
			Status:        status,
			Shift:         strPtr("A"),
			OvertimeHours: floatPtr(2.5),
			CheckInTime:   strPtr("08:00"),
		}
		rec, err := s.buildRecord(context.Background(), in, "2024-06-10", strPtr("Line 1"))
		require.NoError(t, err)
		assert.Equal(t, status, rec.Status)
		assert.Nil(t, rec.Shift)
		assert.Nil(t, rec.OvertimeHours)
		assert.Nil(t, rec.CheckInTime)
		assert.Equal(t, "Line 1", *rec.Department)
	}
}

// present はシフト未指定なら Gen、残業未指定なら 0
func TestBuildRecordPresentDefaults(t *testing.T) {
	s := fixedNowService()

	in := UpsertAttendanceRequest{
		EmployeeID:  "e1",
		Status:      StatusPresent,
		CheckInTime: strPtr("08:05"),
	}
	rec, err := s.buildRecord(context.Background(), in, "2024-06-10", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultShift, *rec.Shift)
	assert.Equal(t, 0.0, *rec.OvertimeHours)
	assert.Equal(t, "08:05", *rec.CheckInTime)
	assert.Nil(t, rec.CheckOutTime)
}

func TestBuildRecordPresentExplicitValues(t *testing.T) {
	s := fixedNowService()

	in := UpsertAttendanceRequest{
		EmployeeID:    "e1",
		Status:        StatusPresent,
		Shift:         strPtr("Evening"),
		OvertimeHours: floatPtr(1.5),
		CheckInTime:   strPtr("14:00"),
		CheckOutTime:  strPtr("23:30"),
	}
	rec, err := s.buildRecord(context.Background(), in, "2024-06-10", nil)
	require.NoError(t, err)
	assert.Equal(t, "Evening", *rec.Shift)
	assert.Equal(t, 1.5, *rec.OvertimeHours)
	assert.Equal(t, "14:00", *rec.CheckInTime)
	assert.Equal(t, "23:30", *rec.CheckOutTime)
}

func TestBuildRecordRejectsBadInput(t *testing.T) {
	s := fixedNowService()

	_, err := s.buildRecord(context.Background(), UpsertAttendanceRequest{
		EmployeeID: "e1",
		Status:     StatusPresent,
		Shift:      strPtr("Night"),
	}, "2024-06-10", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shift")

	_, err = s.buildRecord(context.Background(), UpsertAttendanceRequest{
		EmployeeID:    "e1",
		Status:        StatusPresent,
		OvertimeHours: floatPtr(-1),
	}, "2024-06-10", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overtime_hours")
}

func TestNormalizeDateString(t *testing.T) {
	todayStr := time.Now().UTC().Format(DateLayout)

	assert.Equal(t, todayStr, normalizeDateString("today"))
	assert.Equal(t, todayStr, normalizeDateString(" Today "))
	assert.Equal(t, "2024-06-10", normalizeDateString("2024-06-10"))
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, 400, toHTTPStatus(ErrInvalid("x")))
	assert.Equal(t, 404, toHTTPStatus(ErrNotFound("x")))
	assert.Equal(t, 500, toHTTPStatus(ErrInternal("x")))
	assert.Equal(t, 500, toHTTPStatus(assert.AnError))
}
