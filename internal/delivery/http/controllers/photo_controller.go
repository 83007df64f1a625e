package controllers

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// maxUploadBytes caps photo uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// PhotoSuccessResponse is the success response envelope for POST /events/{eventID}/photos (201).
type PhotoSuccessResponse struct {
	Data  *domain.Photo     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PhotoListSuccessResponse is the success response envelope for GET /events/{eventID}/photos (200).
type PhotoListSuccessResponse struct {
	Data  []*domain.Photo   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type PhotoController struct {
	Logger  *slog.Logger
	Service domain.PhotoService
	Files   domain.FileStore
}

func NewPhotoController(logger *slog.Logger, svc domain.PhotoService, files domain.FileStore) *PhotoController {
	return &PhotoController{
		Logger:  logger,
		Service: svc,
		Files:   files,
	}
}

// Upload godoc
// @Summary Upload a photo to an event
// @Description Multipart upload under field "photo". The file lands in the event's directory and a photo record is created. Organizer only. Max 10 MiB.
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param photo formData file true "Photo file"
// @Success 201 {object} controllers.PhotoSuccessResponse "data contains the photo record"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: storage_io or internal_error"
// @Router /events/{eventID}/photos [post]
func (c *PhotoController) Upload(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("photo")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing photo file")
		return
	}
	defer file.Close()

	fileName := filepath.Base(header.Filename)
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid file name")
		return
	}

	path, err := c.Files.WriteFile(eventID, fileName, file)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "photo write failed", "event_id", eventID, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeStorageIO, "storage failure")
		return
	}

	photo, err := c.Service.Attach(r.Context(), eventID, userID, fileName)
	if err != nil {
		// The bytes were written before the permission check; drop the orphan.
		if delErr := c.Files.DeleteFile(path); delErr != nil {
			c.Logger.WarnContext(r.Context(), "orphan photo cleanup failed", "path", path, "err", delErr)
		}
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, photo)
}

// List godoc
// @Summary List an event's photos
// @Description Photo records for the event, oldest first. Returns an empty list when the event has no photos.
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.PhotoListSuccessResponse "data contains the photo records"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/photos [get]
func (c *PhotoController) List(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	photos, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, photos)
}

// Delete godoc
// @Summary Delete a photo
// @Description Remove the photo's file and record together; if the file cannot be removed the record survives. Organizer only.
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Param photoID path string true "Photo ID (UUID)"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: storage_io or internal_error"
// @Router /photos/{photoID} [delete]
func (c *PhotoController) Delete(w http.ResponseWriter, r *http.Request) {
	photoID := r.PathValue("photoID")
	if !uuidRegex.MatchString(photoID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid photoID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), photoID, userID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
