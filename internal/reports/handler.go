package reports

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// GET /reports/monthly (JSON)
	r.GET("/reports/monthly", h.Monthly)
	// GET /reports/monthly/csv (?charset=cp932 で旧Excel向け)
	r.GET("/reports/monthly/csv", h.MonthlyCSV)
	// GET /reports/monthly/excel
	r.GET("/reports/monthly/excel", h.MonthlyExcel)
	// GET /reports/monthly/pdf
	r.GET("/reports/monthly/pdf", h.MonthlyPDF)
}

func errorFromErr(err error) any {
	var api *APIError
	if errors.As(err, &api) {
		return api
	}
	return &APIError{Code: CodeInternal, Message: err.Error()}
}

func (h *Handler) report(c *gin.Context) (MonthlyReport, bool) {
	month := c.Query("month")
	companyID := c.DefaultQuery("company_id", FilterAll)

	rep, err := h.svc.Monthly(c.Request.Context(), month, companyID)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return MonthlyReport{}, false
	}
	return rep, true
}

// ---------- handlers ----------

// GET /reports/monthly
func (h *Handler) Monthly(c *gin.Context) {
	rep, ok := h.report(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GET /reports/monthly/csv
func (h *Handler) MonthlyCSV(c *gin.Context) {
	rep, ok := h.report(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	var err error
	contentType := "text/csv; charset=utf-8"
	if c.Query("charset") == "cp932" {
		contentType = "text/csv; charset=shift_jis"
		err = WriteCSVCP932(&buf, rep)
	} else {
		err = WriteCSV(&buf, rep)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrInternal("failed to render csv"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", CSVFilename(rep)))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// GET /reports/monthly/excel
func (h *Handler) MonthlyExcel(c *gin.Context) {
	rep, ok := h.report(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := WriteExcel(&buf, rep); err != nil {
		c.JSON(http.StatusInternalServerError, ErrInternal("failed to render workbook"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExcelFilename(rep)))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// GET /reports/monthly/pdf
func (h *Handler) MonthlyPDF(c *gin.Context) {
	rep, ok := h.report(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, rep); err != nil {
		c.JSON(http.StatusInternalServerError, ErrInternal("failed to render pdf"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", PDFFilename(rep)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
