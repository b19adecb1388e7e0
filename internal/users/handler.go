package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare-backend/internal/images"
	"photoshare-backend/internal/shared/server/middleware"
	"photoshare-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the user and image services.
type Handler struct {
	Svc    *Service
	Images *images.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, imageSvc *images.Service) *Handler {
	return &Handler{Svc: svc, Images: imageSvc}
}

// RegisterRoutes attaches user routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.register)
	rg.GET("/users", h.list)
	rg.GET("/users/:userId", h.get)
	rg.GET("/users/:userId/images", h.listImages)
}

func (h *Handler) register(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	name := middleware.UserNameFromContext(c)

	record, err := h.Svc.Ensure(c.Request.Context(), userID, name)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register user", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, record)
}

func (h *Handler) list(c *gin.Context) {
	records, err := h.Svc.List(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, images.ErrMalformedDocument):
			respond.Error(c, http.StatusInternalServerError, "malformed_document", "user rows are missing their value field", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list users", nil)
		}
		return
	}
	respond.OK(c, images.WrapAsCollection(records))
}

func (h *Handler) get(c *gin.Context) {
	userID := c.Param("userId")

	record, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "user id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch user", nil)
		}
		return
	}
	respond.OK(c, record)
}

func (h *Handler) listImages(c *gin.Context) {
	userID := c.Param("userId")

	collection, err := h.Images.ListByUser(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, images.ErrMalformedDocument):
			respond.Error(c, http.StatusInternalServerError, "malformed_document", "image rows violate the view contract", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list user images", nil)
		}
		return
	}
	respond.OK(c, collection)
}
