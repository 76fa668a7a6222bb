package reports

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// セル配色（ダッシュボード側のステータス色と揃える）
var (
	fillPresent = [3]int{209, 250, 229}
	textPresent = [3]int{6, 95, 70}
	fillAbsent  = [3]int{254, 226, 226}
	textAbsent  = [3]int{153, 27, 27}
	fillLeave   = [3]int{254, 243, 199}
	textLeave   = [3]int{146, 64, 14}
	textMuted   = [3]int{156, 163, 175}
	fillHeader  = [3]int{44, 62, 80}
)

const (
	pdfMargin    = 10.0
	pdfPageH     = 210.0 // A4横
	pdfRowH      = 5.0
	pdfNameW     = 30.0
	pdfCompanyW  = 30.0
	pdfSummaryW  = 8.0
	pdfBreakAt   = pdfPageH - pdfMargin - pdfRowH
	pdfUsableW   = 297.0 - pdfMargin*2
	pdfFixedCols = pdfNameW + pdfCompanyW + pdfSummaryW*4
)

func PDFFilename(rep MonthlyReport) string {
	return fmt.Sprintf("Attendance-Report-%s.pdf", rep.Month)
}

// WritePDF: 月次レポートを横向きの表で書き出す。
// CSVと同じ ReportRow からの描画なので両者の値がずれることはない。
func WritePDF(w io.Writer, rep MonthlyReport) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	// タイトルブロック
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, "Monthly Attendance Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, "Month: "+rep.Month, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Contractor: "+rep.Contractor, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	dayW := 0.0
	if rep.DaysInMonth > 0 {
		dayW = (pdfUsableW - pdfFixedCols) / float64(rep.DaysInMonth)
	}

	drawHeader(pdf, rep.DaysInMonth, dayW)

	pdf.SetFont("Arial", "", 7)
	for _, row := range rep.Rows {
		if pdf.GetY() > pdfBreakAt {
			pdf.AddPage()
			drawHeader(pdf, rep.DaysInMonth, dayW)
			pdf.SetFont("Arial", "", 7)
		}

		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(pdfNameW, pdfRowH, row.Name, "1", 0, "LM", false, 0, "")
		pdf.CellFormat(pdfCompanyW, pdfRowH, row.Contractor, "1", 0, "LM", false, 0, "")

		for _, cell := range row.DayCells {
			fill, text, ok := cellColors(cell)
			if ok {
				pdf.SetFillColor(fill[0], fill[1], fill[2])
			}
			pdf.SetTextColor(text[0], text[1], text[2])
			pdf.CellFormat(dayW, pdfRowH, cell, "1", 0, "CM", ok, 0, "")
		}

		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(pdfSummaryW, pdfRowH, strconv.Itoa(row.PresentCount), "1", 0, "CM", false, 0, "")
		pdf.CellFormat(pdfSummaryW, pdfRowH, strconv.Itoa(row.AbsentCount), "1", 0, "CM", false, 0, "")
		pdf.CellFormat(pdfSummaryW, pdfRowH, strconv.Itoa(row.LeaveCount), "1", 0, "CM", false, 0, "")
		pdf.CellFormat(pdfSummaryW, pdfRowH, fmt.Sprintf("%.1f", row.TotalOvertime), "1", 1, "CM", false, 0, "")
	}

	return pdf.Output(w)
}

// drawHeader: 2段ヘッダ。Helper/Contractor は2行ぶち抜き、
// "Days" が日付列、"Summary" がサマリ4列をスパンする。
func drawHeader(pdf *gofpdf.Fpdf, days int, dayW float64) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(fillHeader[0], fillHeader[1], fillHeader[2])
	pdf.SetTextColor(255, 255, 255)

	pdf.CellFormat(pdfNameW, pdfRowH*2, "Helper", "1", 0, "CM", true, 0, "")
	pdf.CellFormat(pdfCompanyW, pdfRowH*2, "Contractor", "1", 0, "CM", true, 0, "")
	pdf.CellFormat(dayW*float64(days), pdfRowH, "Days", "1", 0, "CM", true, 0, "")
	pdf.CellFormat(pdfSummaryW*4, pdfRowH, "Summary", "1", 1, "CM", true, 0, "")

	pdf.SetFont("Arial", "B", 6)
	pdf.SetX(pdfMargin + pdfNameW + pdfCompanyW)
	for day := 1; day <= days; day++ {
		pdf.CellFormat(dayW, pdfRowH, strconv.Itoa(day), "1", 0, "CM", true, 0, "")
	}
	for _, label := range []string{"P", "A", "L", "OT"} {
		pdf.CellFormat(pdfSummaryW, pdfRowH, label, "1", 0, "CM", true, 0, "")
	}
	pdf.Ln(-1)
}

// cellColors: セルラベルから配色を引く。ok=false は塗りなし（プレースホルダ）
func cellColors(cell string) (fill, text [3]int, ok bool) {
	switch {
	case len(cell) > 0 && cell[0] == 'P':
		return fillPresent, textPresent, true
	case cell == "A":
		return fillAbsent, textAbsent, true
	case cell == "L":
		return fillLeave, textLeave, true
	default:
		return [3]int{}, textMuted, false
	}
}
