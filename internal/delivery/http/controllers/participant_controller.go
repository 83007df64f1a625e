package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// ParticipantListResponse is the response body for GET /events/{eventID}/participants.
type ParticipantListResponse struct {
	Participants []*domain.EventParticipant `json:"participants"`
	Pagination   helpers.PaginationMeta     `json:"pagination"`
}

// ParticipantListSuccessResponse is the success response envelope for GET /events/{eventID}/participants (200).
type ParticipantListSuccessResponse struct {
	Data  ParticipantListResponse `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type ParticipantController struct {
	Logger  *slog.Logger
	Service domain.ParticipantService
}

func NewParticipantController(logger *slog.Logger, svc domain.ParticipantService) *ParticipantController {
	return &ParticipantController{
		Logger:  logger,
		Service: svc,
	}
}

// Join godoc
// @Summary Join an event
// @Description Add the authenticated user to the event's participant set.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [post]
func (c *ParticipantController) Join(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.Join(r.Context(), eventID, userID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Leave godoc
// @Summary Remove a participant from an event
// @Description Remove the target user's membership. Allowed for the target themselves or the organizer; the organizer's own membership cannot be removed.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param userID path string true "User ID of the participant to remove (UUID)"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants/{userID} [delete]
func (c *ParticipantController) Leave(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	targetID := r.PathValue("userID")
	if !uuidRegex.MatchString(eventID) || !uuidRegex.MatchString(targetID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid path parameters")
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Leave(r.Context(), eventID, targetID, actorID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MembershipResponse is the response body for GET /events/{eventID}/participants/{userID}.
type MembershipResponse struct {
	Participant bool `json:"participant"`
}

// MembershipSuccessResponse is the success response envelope for the membership check (200).
type MembershipSuccessResponse struct {
	Data  MembershipResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// IsParticipant godoc
// @Summary Check whether a user participates in an event
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 200 {object} controllers.MembershipSuccessResponse "data contains the membership flag"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants/{userID} [get]
func (c *ParticipantController) IsParticipant(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	userID := r.PathValue("userID")
	if !uuidRegex.MatchString(eventID) || !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid path parameters")
		return
	}
	ok, err := c.Service.IsParticipant(r.Context(), eventID, userID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MembershipResponse{Participant: ok})
}

// List godoc
// @Summary List event participants
// @Description Paginated list of the event's participants with user display fields.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ParticipantListSuccessResponse "data contains participants and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found or empty_result"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participants [get]
func (c *ParticipantController) List(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	params := helpers.ParsePagination(r)
	participants, total, err := c.Service.ListParticipants(r.Context(), eventID, params)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ParticipantListResponse{
		Participants: participants,
		Pagination:   helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}
