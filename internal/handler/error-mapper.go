package handler

import (
	"errors"
	"net/http"

	"finetune-gateway/internal/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingChatFields),
		errors.Is(err, domain.ErrAPIKeyRequired),
		errors.Is(err, domain.ErrUnknownAccessMethod),
		errors.Is(err, domain.ErrMissingFinetuneFields),
		errors.Is(err, domain.ErrMissingDatasetUpload),
		errors.Is(err, domain.ErrEmptyDatasetFile),
		errors.Is(err, domain.ErrMissingDatasetID),
		errors.Is(err, domain.ErrMissingJobID),
		errors.Is(err, domain.ErrInvalidModelName),
		errors.Is(err, domain.ErrMissingProviderModel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidProviderKey):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrModelNotFound),
		errors.Is(err, domain.ErrProviderModelNotFound),
		errors.Is(err, domain.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrUsageLimitExceeded),
		errors.Is(err, domain.ErrProviderRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrPlatformKeyMissing):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
