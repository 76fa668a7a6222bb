package attendance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// POST /attendance ((employee_id, date) キーのUpsert)
	r.POST("/attendance", h.Upsert)
	// GET /attendance (一覧・検索)
	r.GET("/attendance", h.List)
	// GET /attendance/summary/today (当日の内訳)
	r.GET("/attendance/summary/today", h.TodaySummary)
	// GET /attendance/summary/weekly (直近7日の出勤数)
	r.GET("/attendance/summary/weekly", h.WeeklySeries)
}

func errorFromErr(err error) any {
	var api *APIError
	if errors.As(err, &api) {
		return api
	}
	return &APIError{Code: CodeInternal, Message: err.Error()}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ---------- handlers ----------

// POST /attendance
func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrInvalid("invalid json or missing required fields"))
		return
	}

	res, created, err := h.svc.Upsert(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}

// GET /attendance
func (h *Handler) List(c *gin.Context) {
	q := ListQuery{
		Limit:  parseIntDefault(c.Query("limit"), DefaultPageLimit),
		Offset: parseIntDefault(c.Query("offset"), 0),
		Sort:   c.DefaultQuery("sort", DefaultSort),
	}
	if v := c.Query("employee_id"); v != "" {
		q.EmployeeID = &v
	}
	if v := c.Query("on"); v != "" {
		q.On = &v
	}
	if v := c.Query("from"); v != "" {
		q.From = &v
	}
	if v := c.Query("to"); v != "" {
		q.To = &v
	}

	rows, total, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows, "total": total})
}

// GET /attendance/summary/today
func (h *Handler) TodaySummary(c *gin.Context) {
	res, err := h.svc.TodaySummary(c.Request.Context(), c.Query("on"))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /attendance/summary/weekly
func (h *Handler) WeeklySeries(c *gin.Context) {
	res, err := h.svc.WeeklySeries(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
