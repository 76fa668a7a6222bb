package idcard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"KINTAI-backend/internal/contractors"
	"KINTAI-backend/internal/helpers"
)

// ===== Error model (他パッケージと同型・最小限) =====
type Code string

const (
	CodeNotFound Code = "NOT_FOUND"
	CodeInternal Code = "INTERNAL"
)

type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string      { return fmt.Sprintf("%s: %s", e.Code, e.Message) }
func ErrNotFound(msg string) *APIError { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrInternal(msg string) *APIError { return &APIError{Code: CodeInternal, Message: msg} }

func toHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) && api.Code == CodeNotFound {
		return 404
	}
	return 500
}

// ===== Service =====

// 物理カードサイズ（ISO/IEC 7810 ID-1）
const (
	cardW = 85.6
	cardH = 53.98
)

type Service struct {
	helpers   *helpers.Service
	companies *contractors.Service
}

func NewService(h *helpers.Service, c *contractors.Service) *Service {
	return &Service{helpers: h, companies: c}
}

// Card: 1ヘルパー分のIDカードを1ページPDFで描画する
func (s *Service) Card(ctx context.Context, helperID string) (filename string, pdfData []byte, err error) {
	h, err := s.helpers.GetModel(ctx, helperID)
	if err != nil {
		var api *helpers.APIError
		if errors.As(err, &api) && api.Code == helpers.CodeNotFound {
			return "", nil, ErrNotFound("helper not found")
		}
		return "", nil, ErrInternal("failed to fetch helper")
	}

	companyName := "N/A"
	if c, cerr := s.companies.Get(ctx, h.CompanyID); cerr == nil {
		companyName = c.Name
	}

	var buf bytes.Buffer
	if err := renderCard(&buf, h, companyName); err != nil {
		return "", nil, ErrInternal("failed to render id card")
	}
	return CardFilename(h.Name), buf.Bytes(), nil
}

// CardFilename: 空白をアンダースコアに置き換えたファイル名
func CardFilename(name string) string {
	return fmt.Sprintf("ID-Card-%s.pdf", strings.Join(strings.Fields(name), "_"))
}

func renderCard(buf *bytes.Buffer, h *helpers.Helper, companyName string) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: cardW, Ht: cardH},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// ヘッダ帯（会社名）
	pdf.SetFillColor(44, 62, 80)
	pdf.Rect(0, 0, cardW, 12, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetXY(3, 2)
	pdf.CellFormat(cardW-6, 8, companyName, "", 0, "CM", false, 0, "")

	// 写真枠（印刷後に貼る想定のプレースホルダ）
	pdf.SetDrawColor(156, 163, 175)
	pdf.Rect(4, 16, 20, 25, "D")
	pdf.SetTextColor(156, 163, 175)
	pdf.SetFont("Arial", "", 5)
	pdf.SetXY(4, 27)
	pdf.CellFormat(20, 3, "PHOTO", "", 0, "CM", false, 0, "")

	// 本文
	pdf.SetTextColor(17, 24, 39)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetXY(27, 16)
	pdf.CellFormat(cardW-30, 5, h.Name, "", 2, "LM", false, 0, "")

	pdf.SetFont("Arial", "", 7)
	line := func(label, value string) {
		pdf.SetX(27)
		pdf.CellFormat(16, 4, label, "", 0, "LM", false, 0, "")
		pdf.CellFormat(cardW-46, 4, value, "", 1, "LM", false, 0, "")
	}
	line("ID", h.EmployeeID)
	line("Designation", h.Designation)
	dept := "N/A"
	if h.Department != nil && *h.Department != "" {
		dept = *h.Department
	}
	line("Department", dept)
	line("Join Date", h.JoinDate)

	// フッタ帯
	pdf.SetFillColor(243, 244, 246)
	pdf.Rect(0, cardH-6, cardW, 6, "F")
	pdf.SetTextColor(107, 114, 128)
	pdf.SetFont("Arial", "", 5)
	pdf.SetXY(0, cardH-6)
	pdf.CellFormat(cardW, 6, "If found, please return to the site office.", "", 0, "CM", false, 0, "")

	return pdf.Output(buf)
}
