package reports

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"KINTAI-backend/internal/attendance"
	"KINTAI-backend/internal/contractors"
	"KINTAI-backend/internal/helpers"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func testHelper(id, code, name, companyID, status string) helpers.Helper {
	return helpers.Helper{
		ID:          id,
		EmployeeID:  code,
		Name:        name,
		CompanyID:   companyID,
		Designation: "Fitter",
		JoinDate:    "2023-04-01",
		Status:      status,
	}
}

func testRecord(employeeID, date, status string, shift *string, ot *float64) attendance.Attendance {
	return attendance.Attendance{
		ID:            "rec-" + employeeID + "-" + date,
		EmployeeID:    employeeID,
		Date:          date,
		Status:        status,
		Shift:         shift,
		OvertimeHours: ot,
	}
}

var testCompanies = []contractors.Contractor{
	{ID: "c1", Name: "Sharma Contractors"},
	{ID: "c2", Name: "Verma & Sons"},
}

// うるう年2月のシナリオ: 1〜28日出勤(残業1.5h、シフトA)、29日は記録なし
func TestBuildMonthlyReportLeapFebruary(t *testing.T) {
	hs := []helpers.Helper{testHelper("e1", "EMP-1001", "Ramesh Kumar", "c1", helpers.StatusActive)}

	var records []attendance.Attendance
	for day := 1; day <= 28; day++ {
		records = append(records, testRecord(
			"e1", fmt.Sprintf("2024-02-%02d", day), attendance.StatusPresent, strPtr("A"), floatPtr(1.5)))
	}

	today := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	rep := BuildMonthlyReport(hs, testCompanies, records, "2024-02", FilterAll, today)

	require.Equal(t, 29, rep.DaysInMonth)
	require.Len(t, rep.Rows, 1)

	row := rep.Rows[0]
	assert.Equal(t, 28, row.PresentCount)
	assert.Equal(t, 1, row.AbsentCount)
	assert.Equal(t, 0, row.LeaveCount)
	assert.InDelta(t, 42.0, row.TotalOvertime, 1e-9)
	assert.Equal(t, "P-A", row.DayCells[0])
	assert.Equal(t, "A", row.DayCells[28]) // 29日: 過去日の記録なし → 欠勤扱い
	assert.Equal(t, "Sharma Contractors", row.Contractor)
}

// 記録なしの日の扱い: 過去日は在籍者のみ欠勤、未来日と退職者は "-"
func TestBuildMonthlyReportInferredAbsence(t *testing.T) {
	hs := []helpers.Helper{
		testHelper("e1", "EMP-1", "Active Helper", "c1", helpers.StatusActive),
		testHelper("e2", "EMP-2", "Inactive Helper", "c1", helpers.StatusInactive),
	}

	today := time.Date(2024, 6, 10, 8, 30, 0, 0, time.UTC)
	rep := BuildMonthlyReport(hs, testCompanies, nil, "2024-06", FilterAll, today)

	require.Equal(t, 30, rep.DaysInMonth)
	require.Len(t, rep.Rows, 2)

	active := rep.Rows[0]
	assert.Equal(t, 10, active.AbsentCount) // 1〜10日
	assert.Equal(t, 0, active.PresentCount)
	for day := 0; day < 10; day++ {
		assert.Equal(t, "A", active.DayCells[day])
	}
	for day := 10; day < 30; day++ {
		assert.Equal(t, CellPlaceholder, active.DayCells[day])
	}

	inactive := rep.Rows[1]
	assert.Equal(t, 0, inactive.AbsentCount)
	assert.Equal(t, 0, inactive.PresentCount)
	assert.Equal(t, 0, inactive.LeaveCount)
	for _, cell := range inactive.DayCells {
		assert.Equal(t, CellPlaceholder, cell)
	}
}

// ステータスごとのセルラベルと集計
func TestBuildMonthlyReportStatusCells(t *testing.T) {
	hs := []helpers.Helper{testHelper("e1", "EMP-1", "Helper", "c1", helpers.StatusActive)}
	records := []attendance.Attendance{
		testRecord("e1", "2024-06-01", attendance.StatusPresent, nil, nil),
		testRecord("e1", "2024-06-02", attendance.StatusPresent, strPtr("Evening"), floatPtr(2.0)),
		testRecord("e1", "2024-06-03", attendance.StatusAbsent, nil, nil),
		testRecord("e1", "2024-06-04", attendance.StatusLeave, nil, nil),
	}

	today := time.Date(2024, 6, 4, 23, 0, 0, 0, time.UTC)
	rep := BuildMonthlyReport(hs, testCompanies, records, "2024-06", FilterAll, today)

	row := rep.Rows[0]
	assert.Equal(t, "P", row.DayCells[0])
	assert.Equal(t, "P-Evening", row.DayCells[1])
	assert.Equal(t, "A", row.DayCells[2])
	assert.Equal(t, "L", row.DayCells[3])
	assert.Equal(t, 2, row.PresentCount)
	assert.Equal(t, 1, row.AbsentCount)
	assert.Equal(t, 1, row.LeaveCount)
	assert.InDelta(t, 2.0, row.TotalOvertime, 1e-9)
}

// 同じ入力なら何度呼んでも同じ結果
func TestBuildMonthlyReportIdempotent(t *testing.T) {
	hs := []helpers.Helper{
		testHelper("e1", "EMP-1", "Helper A", "c1", helpers.StatusActive),
		testHelper("e2", "EMP-2", "Helper B", "c2", helpers.StatusActive),
	}
	records := []attendance.Attendance{
		testRecord("e1", "2024-06-03", attendance.StatusPresent, strPtr("B"), floatPtr(0.5)),
		testRecord("e2", "2024-06-03", attendance.StatusLeave, nil, nil),
	}
	today := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	first := BuildMonthlyReport(hs, testCompanies, records, "2024-06", FilterAll, today)
	second := BuildMonthlyReport(hs, testCompanies, records, "2024-06", FilterAll, today)
	assert.Equal(t, first, second)
}

// 会社フィルタ: 一致のみ残す。未知のIDは0行（エラーにしない）
func TestBuildMonthlyReportCompanyFilter(t *testing.T) {
	hs := []helpers.Helper{
		testHelper("e1", "EMP-1", "Helper A", "c1", helpers.StatusActive),
		testHelper("e2", "EMP-2", "Helper B", "c2", helpers.StatusActive),
	}
	today := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	rep := BuildMonthlyReport(hs, testCompanies, nil, "2024-06", "c2", today)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "EMP-2", rep.Rows[0].EmployeeID)
	assert.Equal(t, "Verma & Sons", rep.Contractor)

	unknown := BuildMonthlyReport(hs, testCompanies, nil, "2024-06", "no-such-id", today)
	assert.Equal(t, 30, unknown.DaysInMonth)
	assert.Empty(t, unknown.Rows)
	assert.Equal(t, NoValueLbl, unknown.Contractor)
}

// 不正な月指定は0日・0行に縮退する
func TestBuildMonthlyReportBadMonth(t *testing.T) {
	hs := []helpers.Helper{testHelper("e1", "EMP-1", "Helper", "c1", helpers.StatusActive)}
	today := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	for _, month := range []string{"", "2024", "2024-13", "junk"} {
		rep := BuildMonthlyReport(hs, testCompanies, nil, month, FilterAll, today)
		assert.Equal(t, 0, rep.DaysInMonth, "month=%q", month)
		assert.Empty(t, rep.Rows, "month=%q", month)
	}
}

// 対象月以外の記録は索引に載らない
func TestBuildMonthlyReportIgnoresOtherMonths(t *testing.T) {
	hs := []helpers.Helper{testHelper("e1", "EMP-1", "Helper", "c1", helpers.StatusInactive)}
	records := []attendance.Attendance{
		testRecord("e1", "2024-05-31", attendance.StatusPresent, nil, nil),
		testRecord("e1", "2024-07-01", attendance.StatusPresent, nil, nil),
	}
	today := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)

	rep := BuildMonthlyReport(hs, testCompanies, records, "2024-06", FilterAll, today)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, 0, rep.Rows[0].PresentCount)
}
