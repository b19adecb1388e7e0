package images

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare-backend/internal/shared/server/middleware"
	"photoshare-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches image routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/images", h.upload)
	rg.GET("/images", h.list)
	rg.GET("/images/:imageId", h.get)
}

func (h *Handler) upload(c *gin.Context) {
	upctx := UploadContext{
		UserID:   middleware.UserIDFromContext(c),
		DeviceID: middleware.DeviceIDFromContext(c),
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	imageJSON, binary, err := DecodeUpload(c.Request)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingPart):
			respond.Error(c, http.StatusBadRequest, "missing_part", err.Error(), nil)
		case errors.Is(err, ErrInvalidEncoding):
			respond.Error(c, http.StatusBadRequest, "invalid_encoding", err.Error(), nil)
		case errors.Is(err, ErrUnsupportedBody):
			respond.Error(c, http.StatusBadRequest, "unsupported_body", "request body is not a multipart upload", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to decode upload", nil)
		}
		return
	}

	record, err := h.Svc.Upload(c.Request.Context(), upctx, imageJSON, binary)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrStorage):
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to store image", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create image", nil)
		}
		return
	}

	if id, ok := record[FieldID].(string); ok {
		c.Set("imageId", id)
	}
	respond.JSON(c, http.StatusCreated, record)
}

func (h *Handler) list(c *gin.Context) {
	collection, err := h.Svc.List(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrMalformedDocument):
			respond.Error(c, http.StatusInternalServerError, "malformed_document", "image rows violate the pairing contract", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list images", nil)
		}
		return
	}
	respond.OK(c, collection)
}

func (h *Handler) get(c *gin.Context) {
	imageID := c.Param("imageId")
	c.Set("imageId", imageID)

	record, found := h.Svc.Get(c.Request.Context(), imageID)
	if !found {
		respond.Error(c, http.StatusNotFound, "not_found", "image not found", nil)
		return
	}
	respond.OK(c, record)
}
