package middleware

import (
	"net/http"
	"time"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries the client-chosen key of a create request
const IdempotencyKeyHeader = "Idempotency-Key"

// maxIdempotencyKeyLength bounds keys stored in the idempotency store
const maxIdempotencyKeyLength = 128

// Idempotency processes each request carrying an Idempotency-Key header at most once per
// ttl. A replay while the key is recorded answers 409. The key is released again when the
// first attempt does not succeed, so a corrected request can reuse it.
// Requests without the header pass through.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.FieldError(IdempotencyKeyHeader, "Must be at most 128 characters"))
			return
		}

		// scope by route so the same key can be used on different resources
		storeKey := c.Request.Method + " " + c.FullPath() + " " + key
		ctx := c.Request.Context()

		fresh, err := store.MarkProcessed(ctx, storeKey, ttl)
		if err != nil {
			// fail open
			log.Error("Idempotency store unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(dto.MessageDuplicateRequest, key))
			return
		}

		c.Next()

		if status := c.Writer.Status(); status < 200 || status >= 300 {
			if err := store.Release(ctx, storeKey); err != nil {
				log.Warn("Failed to release idempotency key", zap.String("key", key), zap.Error(err))
			}
		}
	}
}
