package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"KINTAI-backend/internal/attendance"
	"KINTAI-backend/internal/helpers"
)

func exportReport(t *testing.T) MonthlyReport {
	t.Helper()

	hs := []helpers.Helper{
		testHelper("e1", "EMP-1001", "Kumar, Ramesh", "c1", helpers.StatusActive),
		testHelper("e2", "EMP-1002", "Suresh Yadav", "c2", helpers.StatusActive),
	}
	records := []attendance.Attendance{
		testRecord("e1", "2024-04-01", attendance.StatusPresent, strPtr("A"), floatPtr(1.5)),
		testRecord("e1", "2024-04-02", attendance.StatusLeave, nil, nil),
		testRecord("e2", "2024-04-01", attendance.StatusAbsent, nil, nil),
	}
	today := time.Date(2024, 4, 2, 18, 0, 0, 0, time.UTC)
	return BuildMonthlyReport(hs, testCompanies, records, "2024-04", FilterAll, today)
}

func TestWriteCSV(t *testing.T) {
	rep := exportReport(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rep))

	out := buf.String()
	assert.Contains(t, out, "\r\n")
	// カンマ入りの名前はクオートされる
	assert.Contains(t, out, `"Kumar, Ramesh"`)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // ヘッダ + 2行

	header := rows[0]
	require.Len(t, header, 4+30+4)
	assert.Equal(t, "Helper ID", header[0])
	assert.Equal(t, "1", header[4])
	assert.Equal(t, "30", header[33])
	assert.Equal(t, "Overtime (hrs)", header[37])

	first := rows[1]
	assert.Equal(t, "EMP-1001", first[0])
	assert.Equal(t, "P-A", first[4])
	assert.Equal(t, "L", first[5])
	assert.Equal(t, "1.5", first[37])
}

func TestWriteCSVCP932(t *testing.T) {
	rep := exportReport(t)
	rep.Rows[0].Name = "山田太郎"

	var buf bytes.Buffer
	require.NoError(t, WriteCSVCP932(&buf, rep))

	// UTF-8のままでは出てこない
	assert.NotContains(t, buf.String(), "山田太郎")

	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), buf.Bytes())
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "山田太郎")
}

// XLSXはCSVと同じヘッダ・同じ行内容を持つ
func TestWriteExcelMatchesCSV(t *testing.T) {
	rep := exportReport(t)

	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, rep))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader(rep.DaysInMonth), rows[0])
	for i, row := range rep.Rows {
		got := rows[i+1]
		want := csvRecord(row)
		require.Len(t, got, len(want))
		assert.Equal(t, want[0], got[0])
		assert.Equal(t, want[4], got[4])
		// 末尾のサマリ列
		assert.Equal(t, fmt.Sprintf("%d", row.PresentCount), got[len(got)-4])
		assert.Equal(t, fmt.Sprintf("%.1f", row.TotalOvertime), got[len(got)-1])
	}
}

func TestWritePDF(t *testing.T) {
	rep := exportReport(t)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, rep))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestExportFilenames(t *testing.T) {
	rep := MonthlyReport{Month: "2024-04"}
	assert.Equal(t, "Attendance-Report-2024-04.csv", CSVFilename(rep))
	assert.Equal(t, "Attendance-Report-2024-04.xlsx", ExcelFilename(rep))
	assert.Equal(t, "Attendance-Report-2024-04.pdf", PDFFilename(rep))
}
