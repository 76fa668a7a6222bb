package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// GET /helpers (一覧・検索)
	r.GET("/helpers", h.List)
	// GET /helpers/next-code (新規登録フォームの社員コード提案)
	r.GET("/helpers/next-code", h.NextCode)
	// GET /helpers/:id
	r.GET("/helpers/:id", h.Get)
	// POST /helpers
	r.POST("/helpers", h.Create)
	// PUT /helpers/:id (部分更新)
	r.PUT("/helpers/:id", h.Update)
	// DELETE /helpers/:id
	r.DELETE("/helpers/:id", h.Delete)
}

func errorFromErr(err error) any {
	var api *APIError
	if errors.As(err, &api) {
		return api
	}
	return &APIError{Code: CodeInternal, Message: err.Error()}
}

// ---------- handlers ----------

func (h *Handler) List(c *gin.Context) {
	q := ListQuery{}
	if v := c.Query("company_id"); v != "" {
		q.CompanyID = &v
	}
	if v := c.Query("status"); v != "" {
		q.Status = &v
	}
	if v := c.Query("q"); v != "" {
		q.Search = &v
	}
	res, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) NextCode(c *gin.Context) {
	res, err := h.svc.NextEmployeeCode(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateHelperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrInvalid("invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.Header("Location", "/helpers/"+res.ID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateHelperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrInvalid("invalid json"))
		return
	}
	res, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.Status(http.StatusNoContent)
}
