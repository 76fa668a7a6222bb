package idcard

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// GET /helpers/:id/idcard (1ページPDF)
	r.GET("/helpers/:id/idcard", h.Card)
}

// GET /helpers/:id/idcard
func (h *Handler) Card(c *gin.Context) {
	filename, data, err := h.svc.Card(c.Request.Context(), c.Param("id"))
	if err != nil {
		var api *APIError
		if !errors.As(err, &api) {
			api = ErrInternal(err.Error())
		}
		c.JSON(toHTTPStatus(err), api)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
