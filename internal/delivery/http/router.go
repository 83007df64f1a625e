package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventplanner/internal/delivery/http/controllers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// Controllers bundles the route handlers wired by NewRouter.
type Controllers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Event       *controllers.EventController
	Participant *controllers.ParticipantController
	Invitation  *controllers.InvitationController
	Photo       *controllers.PhotoController
}

// NewRouter initializes the HTTP router with all application routes. Every route
// except registration, login, and swagger requires a Bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/register", c.Auth.Register)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Users
	mux.HandleFunc("GET /users/me", auth(c.User.GetMe))
	mux.HandleFunc("PATCH /users/me", auth(c.User.UpdateMe))
	mux.HandleFunc("DELETE /users/me", auth(c.User.DeleteMe))
	mux.HandleFunc("POST /users/me/email/confirm", auth(c.User.ConfirmEmail))
	mux.HandleFunc("POST /users/me/email/resend-code", auth(c.User.ResendConfirmationCode))
	mux.HandleFunc("GET /users/me/events", auth(c.Event.ListMine))
	mux.HandleFunc("GET /users/me/invitations", auth(c.Invitation.ListMine))

	// Events
	mux.HandleFunc("POST /events", auth(c.Event.Create))
	mux.HandleFunc("GET /events", auth(c.Event.List))
	mux.HandleFunc("GET /events/by-title/{title}", auth(c.Event.GetByTitle))
	mux.HandleFunc("GET /events/{eventID}", auth(c.Event.GetByID))
	mux.HandleFunc("PATCH /events/{eventID}", auth(c.Event.Update))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.Delete))

	// Participants
	mux.HandleFunc("POST /events/{eventID}/participants", auth(c.Participant.Join))
	mux.HandleFunc("GET /events/{eventID}/participants", auth(c.Participant.List))
	mux.HandleFunc("GET /events/{eventID}/participants/{userID}", auth(c.Participant.IsParticipant))
	mux.HandleFunc("DELETE /events/{eventID}/participants/{userID}", auth(c.Participant.Leave))

	// Invitations
	mux.HandleFunc("POST /events/{eventID}/invitations", auth(c.Invitation.Create))
	mux.HandleFunc("GET /events/{eventID}/invitations", auth(c.Invitation.ListByEvent))
	mux.HandleFunc("POST /invitations/redeem", auth(c.Invitation.Redeem))
	mux.HandleFunc("POST /invitations/{invitationID}/decline", auth(c.Invitation.Decline))
	mux.HandleFunc("GET /invitations/{invitationID}/status", auth(c.Invitation.Status))
	mux.HandleFunc("DELETE /invitations/{invitationID}", auth(c.Invitation.Delete))

	// Photos
	mux.HandleFunc("POST /events/{eventID}/photos", auth(c.Photo.Upload))
	mux.HandleFunc("GET /events/{eventID}/photos", auth(c.Photo.List))
	mux.HandleFunc("DELETE /photos/{photoID}", auth(c.Photo.Delete))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
