package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func CSVFilename(rep MonthlyReport) string {
	return fmt.Sprintf("Attendance-Report-%s.csv", rep.Month)
}

// csvHeader: [Helper ID, Helper Name, Contractor, Department, 1..D, サマリ4列]
func csvHeader(days int) []string {
	header := []string{"Helper ID", "Helper Name", "Contractor", "Department"}
	for day := 1; day <= days; day++ {
		header = append(header, strconv.Itoa(day))
	}
	return append(header, "Present", "Absent", "Leave", "Overtime (hrs)")
}

func csvRecord(row ReportRow) []string {
	rec := []string{row.EmployeeID, row.Name, row.Contractor, row.Department}
	rec = append(rec, row.DayCells...)
	return append(rec,
		strconv.Itoa(row.PresentCount),
		strconv.Itoa(row.AbsentCount),
		strconv.Itoa(row.LeaveCount),
		fmt.Sprintf("%.1f", row.TotalOvertime),
	)
}

// WriteCSV: レポート行をそのままCSVに書き出す。
// 区切り文字を含む値のクオートは encoding/csv に任せる。改行はCRLF。
func WriteCSV(w io.Writer, rep MonthlyReport) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(csvHeader(rep.DaysInMonth)); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		if err := cw.Write(csvRecord(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVCP932: 旧来のExcel取り込み向けにcp932で書き出す
func WriteCSVCP932(w io.Writer, rep MonthlyReport) error {
	tw := transform.NewWriter(w, japanese.ShiftJIS.NewEncoder())
	if err := WriteCSV(tw, rep); err != nil {
		return err
	}
	return tw.Close()
}
