package middleware

import (
	"fmt"
	"net/http"

	"github.com/erp/accounting/internal/infrastructure/logger"
	"github.com/erp/accounting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a handler panic into a logged 500 with the system-error envelope
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return logger.Recovery(log, func(c *gin.Context, recovered any) {
		if err, ok := recovered.(error); ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.SystemError(err))
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
			fmt.Sprintf("%s%v", dto.MessageSystemErrorPrefix, recovered),
			fmt.Sprintf("%T", recovered),
		))
	})
}
