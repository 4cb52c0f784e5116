package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/doodledict/doodledict-api/internal/interface/http"
)

// RecognizeModule wires the doodle classification pass-through route.

type RecognizeModule struct {
	Handler *handlers.RecognizeHandler
}

func NewRecognizeModule(h *handlers.RecognizeHandler) *RecognizeModule {
	return &RecognizeModule{Handler: h}
}

func (m *RecognizeModule) Register(rg *gin.RouterGroup) {
	rg.POST("/recognize", m.Handler.Recognize)
}
