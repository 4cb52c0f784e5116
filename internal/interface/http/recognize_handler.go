package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/doodledict/doodledict-api/internal/application"
	"github.com/doodledict/doodledict-api/pkg/response"
	"github.com/doodledict/doodledict-api/pkg/validation"
)

type RecognizeHandler struct {
	Svc    *application.RecognizeService
	Logger *logrus.Logger
}

func NewRecognizeHandler(svc *application.RecognizeService, logger *logrus.Logger) *RecognizeHandler {
	return &RecognizeHandler{Svc: svc, Logger: logger}
}

type recognizeRequest struct {
	Image string `json:"image" binding:"required"`
}

// Recognize POST /recognize. Delegates entirely to the classification
// oracle; any oracle failure maps to 500.
func (h *RecognizeHandler) Recognize(c *gin.Context) {
	var req recognizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	result, err := h.Svc.Recognize(c.Request.Context(), req.Image)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to recognize doodle", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"result": result}, "doodle recognized", nil)
}
