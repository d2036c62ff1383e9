package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/venuecast/internal/domain/profile"
	"github.com/yanqian/venuecast/internal/domain/recommend"
	apperrors "github.com/yanqian/venuecast/pkg/errors"
)

// ProfileStore is the persistence surface the profile endpoints need.
type ProfileStore interface {
	Get(ctx context.Context, id string) (profile.Profile, bool, error)
	Put(ctx context.Context, p profile.Profile) error
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	recommendSvc recommend.Service
	profiles     ProfileStore
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(recommendSvc recommend.Service, profiles ProfileStore, logger *slog.Logger) *Handler {
	return &Handler{
		recommendSvc: recommendSvc,
		profiles:     profiles,
		logger:       logger.With("component", "http.handler"),
	}
}

// Recommend runs the recommendation pipeline for a coordinate.
func (h *Handler) Recommend(c *gin.Context) {
	var req recommend.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.recommendSvc.Recommend(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "recommendation_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "weather_data_error"):
			status = http.StatusBadGateway
			code = "weather_data_error"
		case apperrors.IsCode(err, "venue_data_error"):
			status = http.StatusBadGateway
			code = "venue_data_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetProfile returns a stored preference profile.
func (h *Handler) GetProfile(c *gin.Context) {
	id := c.Param("id")
	prof, found, err := h.profiles.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "profile_read_failed", errMessage(err), err))
		return
	}
	if !found {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "profile_not_found", "no profile with that id", nil))
		return
	}
	c.JSON(http.StatusOK, prof)
}

// PutProfile stores a preference profile. The favorites/blacklist
// disjointness invariant is restored before persisting.
func (h *Handler) PutProfile(c *gin.Context) {
	var prof profile.Profile
	if err := c.ShouldBindJSON(&prof); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	prof.ID = c.Param("id")
	prof.Normalize()

	if err := h.profiles.Put(c.Request.Context(), prof); err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "profile_write_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, prof)
}

// Moods lists the available mood preset keys.
func (h *Handler) Moods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"moods": profile.Moods()})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
