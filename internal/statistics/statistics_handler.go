package statistics

import (
	"net/http"
	"strconv"
	"time"

	"go-silpa/internal/shared/apperror"
	"go-silpa/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("statistics.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("statistics.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Overview(c *gin.Context) {
	unit := c.GetString("unit")

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().UTC().Year())))
	if err != nil || year < 2000 {
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, "Parameter year tidak valid", nil)
		return
	}

	resp, err := h.service.GetOverview(c.Request.Context(), unit, year)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("statistics request failed",
			zap.String("unit", unit),
			zap.Int("year", year),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
