package controllers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"eventplanner/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// Well-formed UUIDs for path parameters; the controllers reject anything else.
const (
	testEventID      = "11111111-1111-1111-1111-111111111111"
	testUserID       = "22222222-2222-2222-2222-222222222222"
	testTargetID     = "33333333-3333-3333-3333-333333333333"
	testInvitationID = "44444444-4444-4444-4444-444444444444"
	testPhotoID      = "55555555-5555-5555-5555-555555555555"
)

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr    error
	createResult *domain.Event
	getErr       error
	getResult    *domain.Event
	listErr      error
	listResult   []*domain.Event
	listTotal    int
	updateErr    error
	updateResult *domain.Event
	deleteErr    error
	mineErr      error
	mineResult   []*domain.Event
	mineTotal    int

	lastCreateOrganizerID string
	lastCreateTitle       string
	lastDeleteEventID     string
	lastDeleteActorID     string
	lastUpdateEventID     string
	lastUpdateActorID     string
	lastListParams        domain.PaginationParams
	lastMineUserID        string
}

func (f *fakeEventService) Create(ctx context.Context, organizerID, title, description, location string, date time.Time) (*domain.Event, error) {
	f.lastCreateOrganizerID = organizerID
	f.lastCreateTitle = title
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createResult != nil {
		return f.createResult, nil
	}
	return &domain.Event{ID: testEventID, Title: title, Description: description, Location: location, Date: date, OrganizerID: organizerID}, nil
}

func (f *fakeEventService) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getResult != nil {
		return f.getResult, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) GetByTitle(ctx context.Context, title string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getResult, nil
}

func (f *fakeEventService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.lastListParams = params
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listResult, f.listTotal, nil
}

func (f *fakeEventService) ListByParticipant(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.lastMineUserID = userID
	f.lastListParams = params
	if f.mineErr != nil {
		return nil, 0, f.mineErr
	}
	return f.mineResult, f.mineTotal, nil
}

func (f *fakeEventService) Update(ctx context.Context, eventID, actorID string, title, description, location *string, date *time.Time) (*domain.Event, error) {
	f.lastUpdateEventID = eventID
	f.lastUpdateActorID = actorID
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

func (f *fakeEventService) Delete(ctx context.Context, eventID, actorID string) error {
	f.lastDeleteEventID = eventID
	f.lastDeleteActorID = actorID
	return f.deleteErr
}

// fakeParticipantService implements domain.ParticipantService for handler tests.
type fakeParticipantService struct {
	joinErr    error
	leaveErr   error
	listErr    error
	listResult []*domain.EventParticipant
	listTotal  int

	lastJoinEventID  string
	lastJoinUserID   string
	lastLeaveEventID string
	lastLeaveTarget  string
	lastLeaveActor   string
}

func (f *fakeParticipantService) Join(ctx context.Context, eventID, userID string) error {
	f.lastJoinEventID = eventID
	f.lastJoinUserID = userID
	return f.joinErr
}

func (f *fakeParticipantService) Leave(ctx context.Context, eventID, targetUserID, actorID string) error {
	f.lastLeaveEventID = eventID
	f.lastLeaveTarget = targetUserID
	f.lastLeaveActor = actorID
	return f.leaveErr
}

func (f *fakeParticipantService) IsParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	return false, nil
}

func (f *fakeParticipantService) ListParticipants(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.EventParticipant, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listResult, f.listTotal, nil
}

func (f *fakeParticipantService) RemoveAll(ctx context.Context, eventID string) error {
	return nil
}

// fakeInvitationService implements domain.InvitationService for handler tests.
type fakeInvitationService struct {
	issueErr     error
	issueLink    string
	redeemErr    error
	declineErr   error
	statusErr    error
	statusResult domain.InvitationStatus
	deleteErr    error
	listErr      error
	listResult   []*domain.Invitation
	listTotal    int

	lastIssueEventID   string
	lastIssueInviterID string
	lastIssueInviteeID string
	lastRedeemToken    string
	lastRedeemUserID   string
}

func (f *fakeInvitationService) IssueLink(ctx context.Context, eventID, inviterID, inviteeID string) (string, error) {
	f.lastIssueEventID = eventID
	f.lastIssueInviterID = inviterID
	f.lastIssueInviteeID = inviteeID
	if f.issueErr != nil {
		return "", f.issueErr
	}
	if f.issueLink != "" {
		return f.issueLink, nil
	}
	return "link-token", nil
}

func (f *fakeInvitationService) Redeem(ctx context.Context, token, userID string) error {
	f.lastRedeemToken = token
	f.lastRedeemUserID = userID
	return f.redeemErr
}

func (f *fakeInvitationService) Decline(ctx context.Context, invitationID string) error {
	return f.declineErr
}

func (f *fakeInvitationService) Status(ctx context.Context, invitationID string) (domain.InvitationStatus, error) {
	if f.statusErr != nil {
		return "", f.statusErr
	}
	return f.statusResult, nil
}

func (f *fakeInvitationService) Delete(ctx context.Context, invitationID string) error {
	return f.deleteErr
}

func (f *fakeInvitationService) ListByEvent(ctx context.Context, eventID, actorID string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listResult, f.listTotal, nil
}

func (f *fakeInvitationService) ListByUser(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listResult, f.listTotal, nil
}

// fakePhotoService implements domain.PhotoService for handler tests.
type fakePhotoService struct {
	attachErr    error
	attachResult *domain.Photo
	listErr      error
	listResult   []*domain.Photo
	deleteErr    error

	lastAttachEventID  string
	lastAttachActorID  string
	lastAttachFileName string
	lastDeletePhotoID  string
	lastDeleteActorID  string
}

func (f *fakePhotoService) Attach(ctx context.Context, eventID, actorID, fileName string) (*domain.Photo, error) {
	f.lastAttachEventID = eventID
	f.lastAttachActorID = actorID
	f.lastAttachFileName = fileName
	if f.attachErr != nil {
		return nil, f.attachErr
	}
	if f.attachResult != nil {
		return f.attachResult, nil
	}
	return &domain.Photo{ID: testPhotoID, EventID: eventID, Path: eventID + "/" + fileName}, nil
}

func (f *fakePhotoService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Photo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listResult != nil {
		return f.listResult, nil
	}
	return []*domain.Photo{}, nil
}

func (f *fakePhotoService) Delete(ctx context.Context, photoID, actorID string) error {
	f.lastDeletePhotoID = photoID
	f.lastDeleteActorID = actorID
	return f.deleteErr
}

// fakeFileStore implements domain.FileStore for upload handler tests.
type fakeFileStore struct {
	writeErr     error
	deleteErr    error
	writtenPaths []string
	deletedPaths []string
}

func (f *fakeFileStore) PathFor(eventID, fileName string) string {
	return eventID + "/" + fileName
}

func (f *fakeFileStore) FileExists(path string) (bool, error) {
	return true, nil
}

func (f *fakeFileStore) WriteFile(eventID, fileName string, r io.Reader) (string, error) {
	if f.writeErr != nil {
		return "", f.writeErr
	}
	path := f.PathFor(eventID, fileName)
	f.writtenPaths = append(f.writtenPaths, path)
	return path, nil
}

func (f *fakeFileStore) DeleteFile(path string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedPaths = append(f.deletedPaths, path)
	return nil
}

func (f *fakeFileStore) DeleteEventDir(eventID string) error {
	return nil
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	registerErr    error
	registerResult *domain.User
	loginErr       error
	loginToken     string
	loginResult    *domain.User
	getErr         error
	getResult      *domain.User
	updateErr      error
	updateResult   *domain.User
	confirmErr     error
	resendErr      error
	deleteErr      error

	lastRegisterEmail string
	lastLoginEmail    string
	lastUpdateUserID  string
	lastConfirmUserID string
	lastConfirmCode   string
	lastResendUserID  string
	lastDeleteUserID  string
}

func (f *fakeUserService) Register(ctx context.Context, email, password, name, lastName string) (*domain.User, error) {
	f.lastRegisterEmail = email
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	if f.registerResult != nil {
		return f.registerResult, nil
	}
	return &domain.User{ID: testUserID, Email: email, Name: name, LastName: lastName}, nil
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	f.lastLoginEmail = email
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	token := f.loginToken
	if token == "" {
		token = "jwt-token"
	}
	user := f.loginResult
	if user == nil {
		user = &domain.User{ID: testUserID, Email: email}
	}
	return token, user, nil
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getResult != nil {
		return f.getResult, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserService) Update(ctx context.Context, userID string, name, lastName, email *string) (*domain.User, error) {
	f.lastUpdateUserID = userID
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateResult, nil
}

func (f *fakeUserService) ConfirmEmail(ctx context.Context, userID, code string) error {
	f.lastConfirmUserID = userID
	f.lastConfirmCode = code
	return f.confirmErr
}

func (f *fakeUserService) ResendConfirmationCode(ctx context.Context, userID string) error {
	f.lastResendUserID = userID
	return f.resendErr
}

func (f *fakeUserService) Delete(ctx context.Context, userID string) error {
	f.lastDeleteUserID = userID
	return f.deleteErr
}
