package domain

import (
	"context"
	"errors"
	"time"
)

// ErrMalformedLink is returned when an invitation link token cannot be decoded.
var ErrMalformedLink = errors.New("malformed invitation link")

// ErrUserIsParticipant is returned when redeeming a link for a user who is already a participant.
var ErrUserIsParticipant = errors.New("user is already a participant")

// Invitation is a pending offer to join an event. InviteeID is nil for open
// "join by link" invitations. The record's existence is the pending state:
// accepting, declining, or deleting it removes the row.
// swagger:model Invitation
type Invitation struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	InviterID string    `json:"inviter_id"`
	InviteeID *string   `json:"invitee_id,omitempty"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

// InvitationStatus reports the state of a pending invitation.
type InvitationStatus string

const (
	InvitationStatusPending    InvitationStatus = "pending"
	InvitationStatusEventEnded InvitationStatus = "event_ended"
)

// LinkCodec reversibly encodes the (event, invitee, inviter) identity triple into an
// opaque URL-safe token. Tokens are self-contained: decoding authenticates them
// without a store lookup. inviteeID may be empty for open invitations.
type LinkCodec interface {
	Encode(eventID, inviteeID, inviterID string) (string, error)
	Decode(token string) (eventID, inviteeID, inviterID string, err error)
}

// InvitationRepository defines storage operations for pending invitations.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id string) (*Invitation, error)
	Delete(ctx context.Context, id string) error
	// DeleteByLink removes the invitation carrying the given token, if one is tracked.
	// Open links redeemed more than once have no row left; that is not an error.
	DeleteByLink(ctx context.Context, link string) error
	DeleteAllByEventID(ctx context.Context, eventID string) error
	// DeleteAllByUserID removes every invitation the user issued or was addressed by.
	DeleteAllByUserID(ctx context.Context, userID string) error
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*Invitation, int, error)
	ListByInviteeID(ctx context.Context, userID string, params PaginationParams) ([]*Invitation, int, error)
}

// InvitationService drives the invitation lifecycle: issued, then redeemed, declined,
// or deleted.
type InvitationService interface {
	// IssueLink builds a link token for the event and persists the invitation.
	// inviteeID may be empty for an open link. Only current participants may invite.
	IssueLink(ctx context.Context, eventID, inviterID, inviteeID string) (string, error)
	// Redeem decodes the token and joins the acting user to the event, deleting the
	// matching invitation record in the same transaction.
	Redeem(ctx context.Context, token, userID string) error
	Decline(ctx context.Context, invitationID string) error
	Status(ctx context.Context, invitationID string) (InvitationStatus, error)
	Delete(ctx context.Context, invitationID string) error
	ListByEvent(ctx context.Context, eventID, actorID string, params PaginationParams) ([]*Invitation, int, error)
	ListByUser(ctx context.Context, userID string, params PaginationParams) ([]*Invitation, int, error)
}
