package attendance

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// ===== Error model (helpers/contractors と同型) =====
type Code string

const (
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrInvalid(msg string) *APIError  { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return 400
		case CodeNotFound:
			return 404
		case CodeConflict:
			return 409
		default:
			return 500
		}
	}
	return 500
}

// ===== Service =====

type Service struct {
	db    *sql.DB
	store *Store
	now   func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, store: NewStore(db), now: func() time.Time { return time.Now().UTC() }}
}

// POST /attendance
// (employee_id, date) をキーに登録または置き換え。1日1行の不変条件はDBのUNIQUEキーが守る。
func (s *Service) Upsert(ctx context.Context, in UpsertAttendanceRequest) (AttendanceResponse, bool, error) {
	if in.EmployeeID == "" {
		return AttendanceResponse{}, false, ErrInvalid("employee_id is required")
	}
	if !validStatuses[in.Status] {
		return AttendanceResponse{}, false, ErrInvalid("status must be present, absent or leave")
	}

	date := s.now().Format(DateLayout)
	if in.Date != nil && *in.Date != "" {
		n := normalizeDateString(*in.Date)
		if _, err := time.ParseInLocation(DateLayout, n, time.UTC); err != nil {
			return AttendanceResponse{}, false, ErrInvalid("date must be YYYY-MM-DD or 'today'")
		}
		date = n
	}

	// 部門はマーキング時点のヘルパーの値を引き写す
	department, _, err := s.store.GetHelperInfo(ctx, in.EmployeeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return AttendanceResponse{}, false, ErrNotFound("helper not found")
		}
		return AttendanceResponse{}, false, ErrInternal("failed to save attendance")
	}

	rec, err := s.buildRecord(ctx, in, date, department)
	if err != nil {
		return AttendanceResponse{}, false, err
	}

	id, err := newULID()
	if err != nil {
		return AttendanceResponse{}, false, ErrInternal("failed to generate id")
	}

	row, created, err := s.store.Upsert(ctx, id, rec)
	if err != nil {
		return AttendanceResponse{}, false, ErrInternal("failed to save attendance")
	}
	return row.toDTO(), created, nil
}

// buildRecord: ステータスに応じてシフト・残業・打刻を正規化する。
// present 以外では全て落とす（出勤日のみ意味を持つ値のため）。
func (s *Service) buildRecord(ctx context.Context, in UpsertAttendanceRequest, date string, department *string) (Attendance, error) {
	rec := Attendance{
		EmployeeID: in.EmployeeID,
		Date:       date,
		Status:     in.Status,
		Department: department,
	}
	if in.Status != StatusPresent {
		return rec, nil
	}

	shift := DefaultShift
	if in.Shift != nil && *in.Shift != "" {
		if !validShifts[*in.Shift] {
			return Attendance{}, ErrInvalid("shift must be one of A, B, C, Gen, Evening")
		}
		shift = *in.Shift
	}
	rec.Shift = &shift

	ot := 0.0
	if in.OvertimeHours != nil {
		if *in.OvertimeHours < 0 {
			return Attendance{}, ErrInvalid("overtime_hours must be >= 0")
		}
		ot = *in.OvertimeHours
	}
	rec.OvertimeHours = &ot

	rec.CheckInTime = in.CheckInTime
	rec.CheckOutTime = in.CheckOutTime
	if rec.CheckInTime == nil {
		// 既存行に打刻があれば温存、なければ今回の時刻を打つ
		if prev, err := s.store.GetByKey(ctx, in.EmployeeID, date); err == nil && prev.CheckInTime != nil {
			rec.CheckInTime = prev.CheckInTime
		} else {
			clock := s.now().Format(ClockLayout)
			rec.CheckInTime = &clock
		}
	}
	return rec, nil
}

// GET /attendance
func (s *Service) List(ctx context.Context, q ListQuery) ([]AttendanceResponse, int64, error) {
	if q.Sort == "" {
		q.Sort = DefaultSort
	}
	rows, total, err := s.store.List(ctx, q)
	if err != nil {
		return nil, 0, ErrInternal("failed to fetch attendance")
	}
	out := make([]AttendanceResponse, 0, len(rows))
	for i := 0; i < len(rows); i++ {
		out = append(out, rows[i].toDTO())
	}
	return out, total, nil
}

// GET /attendance/summary/today
func (s *Service) TodaySummary(ctx context.Context, on string) (TodaySummaryResponse, error) {
	date := s.now().Format(DateLayout)
	if on != "" {
		n := normalizeDateString(on)
		if _, err := time.ParseInLocation(DateLayout, n, time.UTC); err != nil {
			return TodaySummaryResponse{}, ErrInvalid("on must be YYYY-MM-DD or 'today'")
		}
		date = n
	}

	counts, err := s.store.CountByStatus(ctx, date)
	if err != nil {
		return TodaySummaryResponse{}, ErrInternal("failed to fetch attendance")
	}
	active, err := s.store.CountActiveHelpers(ctx)
	if err != nil {
		return TodaySummaryResponse{}, ErrInternal("failed to fetch helpers")
	}

	present := counts[StatusPresent]
	leave := counts[StatusLeave]
	absent := active - present - leave
	if absent < 0 {
		absent = 0
	}
	return TodaySummaryResponse{
		Date:        date,
		Present:     present,
		Absent:      absent,
		Leave:       leave,
		TotalActive: active,
	}, nil
}

// GET /attendance/summary/weekly
// 直近7日（当日含む）の出勤数をゼロ埋めして古い順に返す。
func (s *Service) WeeklySeries(ctx context.Context) ([]WeeklyPoint, error) {
	today := s.now()
	from := today.AddDate(0, 0, -6).Format(DateLayout)
	to := today.Format(DateLayout)

	series, err := s.store.PresentSeries(ctx, from, to)
	if err != nil {
		return nil, ErrInternal("failed to fetch attendance")
	}

	out := make([]WeeklyPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i).Format(DateLayout)
		out = append(out, WeeklyPoint{Date: d, Present: series[d]})
	}
	return out, nil
}

func newULID() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
