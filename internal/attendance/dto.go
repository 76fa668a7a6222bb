package attendance

import "time"

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLeave   = "leave"

	DefaultShift = "Gen"

	SortDateDesc     = "date_desc"
	SortDateAsc      = "date_asc"
	SortUpdatedDesc  = "updated_at_desc"
	DefaultPageLimit = 50
	MaxPageLimit     = 500
	DefaultSort      = SortDateDesc
	DateLayout       = "2006-01-02"
	ClockLayout      = "15:04"
)

// シフト区分。present のときだけ意味を持つ。
var validShifts = map[string]bool{
	"A": true, "B": true, "C": true, "Gen": true, "Evening": true,
}

var validStatuses = map[string]bool{
	StatusPresent: true, StatusAbsent: true, StatusLeave: true,
}

type UpsertAttendanceRequest struct {
	EmployeeID    string   `json:"employee_id" binding:"required"`
	Date          *string  `json:"date,omitempty"` // "YYYY-MM-DD" or "today"
	Status        string   `json:"status" binding:"required"`
	Shift         *string  `json:"shift,omitempty"`
	OvertimeHours *float64 `json:"overtime_hours,omitempty"`
	CheckInTime   *string  `json:"check_in_time,omitempty"`  // HH:MM
	CheckOutTime  *string  `json:"check_out_time,omitempty"` // HH:MM
}

type AttendanceResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Status        string    `json:"status"`
	Shift         *string   `json:"shift,omitempty"`
	OvertimeHours *float64  `json:"overtime_hours,omitempty"`
	CheckInTime   *string   `json:"check_in_time,omitempty"`
	CheckOutTime  *string   `json:"check_out_time,omitempty"`
	Department    *string   `json:"department,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListQuery struct {
	EmployeeID *string
	On         *string
	From       *string
	To         *string
	Limit      int
	Offset     int
	Sort       string
}

// ダッシュボード用（当日の内訳）
type TodaySummaryResponse struct {
	Date        string `json:"date"`
	Present     int    `json:"present"`
	Absent      int    `json:"absent"` // active − present − leave（0未満は0）
	Leave       int    `json:"leave"`
	TotalActive int    `json:"total_active"`
}

// ダッシュボード用（直近7日の出勤数、古い順）
type WeeklyPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
}
