package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// CreateInvitationRequest is the request body for POST /events/{eventID}/invitations.
// InviteeID is optional: when absent the link is open and anyone holding it may join.
type CreateInvitationRequest struct {
	InviteeID *string `json:"invitee_id,omitempty"`
}

// Validate implements Validator.
func (req CreateInvitationRequest) Validate() []string {
	var errs []string
	if req.InviteeID != nil && !uuidRegex.MatchString(*req.InviteeID) {
		errs = append(errs, "invitee_id must be a UUID")
	}
	return errs
}

// RedeemInvitationRequest is the request body for POST /invitations/redeem.
type RedeemInvitationRequest struct {
	Link string `json:"link"`
}

// Validate implements Validator.
func (req RedeemInvitationRequest) Validate() []string {
	var errs []string
	if req.Link == "" {
		errs = append(errs, "link is required")
	}
	return errs
}

// CreateInvitationResponse is the response body for POST /events/{eventID}/invitations.
type CreateInvitationResponse struct {
	Link string `json:"link"`
}

// CreateInvitationSuccessResponse is the success response envelope for POST /events/{eventID}/invitations (201).
type CreateInvitationSuccessResponse struct {
	Data  CreateInvitationResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// InvitationStatusResponse is the response body for GET /invitations/{invitationID}/status.
type InvitationStatusResponse struct {
	Status domain.InvitationStatus `json:"status"`
}

// InvitationStatusSuccessResponse is the success response envelope for GET /invitations/{invitationID}/status (200).
type InvitationStatusSuccessResponse struct {
	Data  InvitationStatusResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// InvitationListResponse is the response body for invitation list endpoints.
type InvitationListResponse struct {
	Invitations []*domain.Invitation   `json:"invitations"`
	Pagination  helpers.PaginationMeta `json:"pagination"`
}

// InvitationListSuccessResponse is the success response envelope for invitation list endpoints (200).
type InvitationListSuccessResponse struct {
	Data  InvitationListResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Issue an invitation link
// @Description Create an invitation for the event and return its link token. Only current participants may invite. With invitee_id the link is bound to that user and an email is sent; without it the link is open.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param invitation body CreateInvitationRequest true "Invitation data"
// @Success 201 {object} controllers.CreateInvitationSuccessResponse "data contains the link token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [post]
func (c *InvitationController) Create(w http.ResponseWriter, r *http.Request) {
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
	var req CreateInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inviteeID := ""
	if req.InviteeID != nil {
		inviteeID = *req.InviteeID
	}
	link, err := c.Service.IssueLink(r.Context(), eventID, userID, inviteeID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateInvitationResponse{Link: link})
}

// Redeem godoc
// @Summary Redeem an invitation link
// @Description Join the event encoded in the link as the authenticated user. Addressed links may only be redeemed by their invitee; the invitation record is consumed in the same transaction.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param link body RedeemInvitationRequest true "Link token"
// @Success 204 "no content"
// @Failure 400 {object} helpers.APIResponse "error.code: malformed_link or bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/redeem [post]
func (c *InvitationController) Redeem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req RedeemInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.Redeem(r.Context(), req.Link, userID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Decline godoc
// @Summary Decline an invitation
// @Description Remove the pending invitation record without joining.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID (UUID)"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{invitationID}/decline [post]
func (c *InvitationController) Decline(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")
	if !uuidRegex.MatchString(invitationID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid invitationID")
		return
	}
	if err := c.Service.Decline(r.Context(), invitationID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status godoc
// @Summary Get an invitation's status
// @Description Reports pending, or event_ended when the event date has passed. Read-only; the record is never mutated by this check.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID (UUID)"
// @Success 200 {object} controllers.InvitationStatusSuccessResponse "data contains the status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{invitationID}/status [get]
func (c *InvitationController) Status(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")
	if !uuidRegex.MatchString(invitationID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid invitationID")
		return
	}
	status, err := c.Service.Status(r.Context(), invitationID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InvitationStatusResponse{Status: status})
}

// Delete godoc
// @Summary Delete an invitation
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID (UUID)"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /invitations/{invitationID} [delete]
func (c *InvitationController) Delete(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")
	if !uuidRegex.MatchString(invitationID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid invitationID")
		return
	}
	if err := c.Service.Delete(r.Context(), invitationID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListByEvent godoc
// @Summary List an event's pending invitations
// @Description Paginated list of the event's pending invitations, newest first. Organizer only.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.InvitationListSuccessResponse "data contains invitations and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found or empty_result"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/invitations [get]
func (c *InvitationController) ListByEvent(w http.ResponseWriter, r *http.Request) {
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
	params := helpers.ParsePagination(r)
	invitations, total, err := c.Service.ListByEvent(r.Context(), eventID, userID, params)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InvitationListResponse{
		Invitations: invitations,
		Pagination:  helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListMine godoc
// @Summary List the authenticated user's pending invitations
// @Description Paginated list of invitations addressed to the authenticated user, newest first.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.InvitationListSuccessResponse "data contains invitations and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: empty_result"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/invitations [get]
func (c *InvitationController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	invitations, total, err := c.Service.ListByUser(r.Context(), userID, params)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InvitationListResponse{
		Invitations: invitations,
		Pagination:  helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}
