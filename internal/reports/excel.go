package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Attendance"

func ExcelFilename(rep MonthlyReport) string {
	return fmt.Sprintf("Attendance-Report-%s.xlsx", rep.Month)
}

// WriteExcel: CSVと同じヘッダ・行構成でブックを書き出す。
// 日付セルはPDFと同じ配色で塗る。
func WriteExcel(w io.Writer, rep MonthlyReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	styles, err := newCellStyles(f)
	if err != nil {
		return err
	}

	for col, v := range csvHeader(rep.DaysInMonth) {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}

	for i, row := range rep.Rows {
		rowIdx := i + 2
		values := []any{row.EmployeeID, row.Name, row.Contractor, row.Department}
		for _, c := range row.DayCells {
			values = append(values, c)
		}
		values = append(values, row.PresentCount, row.AbsentCount, row.LeaveCount,
			fmt.Sprintf("%.1f", row.TotalOvertime))

		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}

		// 日付セルの色分け（5列目から DaysInMonth 列分）
		for d, c := range row.DayCells {
			style, ok := styles[styleKey(c)]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(5+d, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

func styleKey(cell string) string {
	switch {
	case len(cell) > 0 && cell[0] == 'P':
		return "present"
	case cell == "A":
		return "absent"
	case cell == "L":
		return "leave"
	default:
		return ""
	}
}

func newCellStyles(f *excelize.File) (map[string]int, error) {
	mk := func(fill, font string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
			Font: &excelize.Font{Color: font},
		})
	}

	out := map[string]int{}
	var err error
	if out["present"], err = mk("D1FAE5", "065F46"); err != nil {
		return nil, err
	}
	if out["absent"], err = mk("FEE2E2", "991B1B"); err != nil {
		return nil, err
	}
	if out["leave"], err = mk("FEF3C7", "92400E"); err != nil {
		return nil, err
	}
	return out, nil
}
