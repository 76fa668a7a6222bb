package reports

import (
	"fmt"
	"strings"
	"time"

	"KINTAI-backend/internal/attendance"
	"KINTAI-backend/internal/contractors"
	"KINTAI-backend/internal/helpers"
)

const (
	MonthLayout = "2006-01"
	dateLayout  = "2006-01-02"

	// 記録なしの日（未来日・退職者）のセル
	CellPlaceholder = "-"

	FilterAll         = "all"
	AllContractorsLbl = "All Contractors"
	NoValueLbl        = "N/A"
)

// 1ヘルパー分の月次グリッド行
type ReportRow struct {
	HelperID      string   `json:"helper_id"`
	EmployeeID    string   `json:"employee_id"`
	Name          string   `json:"name"`
	Contractor    string   `json:"contractor"`
	Department    string   `json:"department"`
	DayCells      []string `json:"day_cells"` // 長さ DaysInMonth、"P"/"P-<shift>"/"A"/"L"/"-"
	PresentCount  int      `json:"present_count"`
	AbsentCount   int      `json:"absent_count"`
	LeaveCount    int      `json:"leave_count"`
	TotalOvertime float64  `json:"total_overtime"`
}

type MonthlyReport struct {
	Month       string      `json:"month"`      // YYYY-MM
	Contractor  string      `json:"contractor"` // フィルタの表示名
	DaysInMonth int         `json:"days_in_month"`
	Rows        []ReportRow `json:"rows"`
}

// BuildMonthlyReport: 月次勤怠グリッドの集計。入力だけで決まる純関数。
//
//   - month が "YYYY-MM" でなければ0日・0行のレポートに縮退する
//   - companyFilter は会社ID。"all"（または空）なら全員、未知のIDなら0行
//   - 記録がない過去日（today含む）は在籍中ヘルパーに限り欠勤として数える。
//     未来日と退職者は "-" でどの集計にも入れない
//   - today は呼び出し側が1回だけ渡す。1回の実行内で全セルが同じ基準日で判定される
func BuildMonthlyReport(
	hs []helpers.Helper,
	cs []contractors.Contractor,
	records []attendance.Attendance,
	month string,
	companyFilter string,
	today time.Time,
) MonthlyReport {
	rep := MonthlyReport{Month: month, Contractor: contractorLabel(cs, companyFilter), Rows: []ReportRow{}}

	first, err := time.ParseInLocation(MonthLayout, month, time.UTC)
	if err != nil {
		return rep
	}
	rep.Month = first.Format(MonthLayout)
	// 翌月1日の前日 = 月末（うるう年もこれで正しい）
	rep.DaysInMonth = first.AddDate(0, 1, -1).Day()

	names := map[string]string{}
	for _, c := range cs {
		names[c.ID] = c.Name
	}

	// 対象月の記録を (employeeID, date) で引けるように索引化
	prefix := rep.Month + "-"
	index := map[string]attendance.Attendance{}
	for _, rec := range records {
		if strings.HasPrefix(rec.Date, prefix) {
			index[rec.EmployeeID+"|"+rec.Date] = rec
		}
	}

	todayStr := today.UTC().Format(dateLayout)

	for _, h := range hs {
		if companyFilter != "" && companyFilter != FilterAll && h.CompanyID != companyFilter {
			continue
		}

		row := ReportRow{
			HelperID:   h.ID,
			EmployeeID: h.EmployeeID,
			Name:       h.Name,
			Contractor: nameOr(names[h.CompanyID]),
			Department: nameOr(strFromPtr(h.Department)),
			DayCells:   make([]string, 0, rep.DaysInMonth),
		}

		for day := 1; day <= rep.DaysInMonth; day++ {
			dateStr := fmt.Sprintf("%s-%02d", rep.Month, day)
			cell := CellPlaceholder

			if rec, ok := index[h.ID+"|"+dateStr]; ok {
				switch rec.Status {
				case attendance.StatusPresent:
					cell = "P"
					if rec.Shift != nil && *rec.Shift != "" {
						cell = "P-" + *rec.Shift
					}
					row.PresentCount++
					if rec.OvertimeHours != nil {
						row.TotalOvertime += *rec.OvertimeHours
					}
				case attendance.StatusAbsent:
					cell = "A"
					row.AbsentCount++
				case attendance.StatusLeave:
					cell = "L"
					row.LeaveCount++
				}
			} else if h.Status == helpers.StatusActive && dateStr <= todayStr {
				// 記録なしの過去日は欠勤とみなす（保存はしない、表示と集計のみ）
				cell = "A"
				row.AbsentCount++
			}

			row.DayCells = append(row.DayCells, cell)
		}

		rep.Rows = append(rep.Rows, row)
	}

	return rep
}

func contractorLabel(cs []contractors.Contractor, filter string) string {
	if filter == "" || filter == FilterAll {
		return AllContractorsLbl
	}
	for _, c := range cs {
		if c.ID == filter {
			return c.Name
		}
	}
	return NoValueLbl
}

func nameOr(s string) string {
	if s == "" {
		return NoValueLbl
	}
	return s
}

func strFromPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
