package attendance

import "time"

// DB行に対応（スキャン用）
type attendanceRow struct {
	ID            string
	EmployeeID    string
	Date          string // DATE → "YYYY-MM-DD"
	Status        string
	Shift         *string
	OvertimeHours *float64
	CheckInTime   *string
	CheckOutTime  *string
	Department    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Service ↔ Store で使うモデル
type Attendance struct {
	ID            string
	EmployeeID    string // employees.id への参照
	Date          string
	Status        string
	Shift         *string
	OvertimeHours *float64
	CheckInTime   *string
	CheckOutTime  *string
	Department    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r attendanceRow) toModel() Attendance {
	return Attendance{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		Date:          r.Date,
		Status:        r.Status,
		Shift:         r.Shift,
		OvertimeHours: r.OvertimeHours,
		CheckInTime:   r.CheckInTime,
		CheckOutTime:  r.CheckOutTime,
		Department:    r.Department,
		CreatedAt:     r.CreatedAt.UTC(),
		UpdatedAt:     r.UpdatedAt.UTC(),
	}
}

func (a Attendance) toDTO() AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		Date:          a.Date,
		Status:        a.Status,
		Shift:         a.Shift,
		OvertimeHours: a.OvertimeHours,
		CheckInTime:   a.CheckInTime,
		CheckOutTime:  a.CheckOutTime,
		Department:    a.Department,
		UpdatedAt:     a.UpdatedAt,
	}
}
