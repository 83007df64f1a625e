package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID         map[string]*domain.Event
	memberEvents map[string][]string // userID -> event IDs, for participation listings
	nextID       int
	createErr    error
	deleteErr    error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:         make(map[string]*domain.Event),
		memberEvents: make(map[string][]string),
		nextID:       1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Title == e.Title {
			return domain.ErrDuplicateTitle
		}
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetByTitle(ctx context.Context, title string) (*domain.Event, error) {
	for _, e := range f.byID {
		if e.Title == title {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	out := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	total := len(out)
	offset := params.Offset()
	if offset > total {
		offset = total
	}
	end := offset + params.PageSize
	if end > total {
		end = total
	}
	return out[offset:end], total, nil
}

func (f *fakeEventRepo) ListByParticipantID(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var out []*domain.Event
	for _, id := range f.memberEvents[userID] {
		if e, ok := f.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) CountByOrganizerID(ctx context.Context, userID string) (int, error) {
	count := 0
	for _, e := range f.byID {
		if e.OrganizerID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, eventID string, title, description, location *string, date *time.Time) (*domain.Event, error) {
	e, ok := f.byID[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if title != nil {
		for id, other := range f.byID {
			if id != eventID && other.Title == *title {
				return nil, domain.ErrDuplicateTitle
			}
		}
		e.Title = *title
	}
	if description != nil {
		e.Description = *description
	}
	if location != nil {
		e.Location = *location
	}
	if date != nil {
		e.Date = *date
	}
	e.UpdatedAt = time.Now()
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeParticipantRepo is an in-memory ParticipantRepository for tests.
type fakeParticipantRepo struct {
	members      map[string]map[string]bool // eventID -> userID -> true
	addErr       error
	removeErr    error
	deleteAllErr error
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{
		members: make(map[string]map[string]bool),
	}
}

func (f *fakeParticipantRepo) Add(ctx context.Context, eventID, userID string) error {
	if f.addErr != nil {
		return f.addErr
	}
	if f.members[eventID] == nil {
		f.members[eventID] = make(map[string]bool)
	}
	if f.members[eventID][userID] {
		return domain.ErrAlreadyParticipant
	}
	f.members[eventID][userID] = true
	return nil
}

func (f *fakeParticipantRepo) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	return f.members[eventID][userID], nil
}

func (f *fakeParticipantRepo) Remove(ctx context.Context, eventID, userID string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	if !f.members[eventID][userID] {
		return domain.ErrNotFound
	}
	delete(f.members[eventID], userID)
	return nil
}

func (f *fakeParticipantRepo) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.EventParticipant, int, error) {
	userIDs := make([]string, 0, len(f.members[eventID]))
	for uid := range f.members[eventID] {
		userIDs = append(userIDs, uid)
	}
	sort.Strings(userIDs)
	out := make([]*domain.EventParticipant, 0, len(userIDs))
	for _, uid := range userIDs {
		out = append(out, &domain.EventParticipant{EventID: eventID, UserID: uid})
	}
	total := len(out)
	offset := params.Offset()
	if offset > total {
		offset = total
	}
	end := offset + params.PageSize
	if end > total {
		end = total
	}
	return out[offset:end], total, nil
}

func (f *fakeParticipantRepo) DeleteAllByEventID(ctx context.Context, eventID string) error {
	if f.deleteAllErr != nil {
		return f.deleteAllErr
	}
	delete(f.members, eventID)
	return nil
}

func (f *fakeParticipantRepo) DeleteAllByUserID(ctx context.Context, userID string) error {
	for eventID := range f.members {
		delete(f.members[eventID], userID)
	}
	return nil
}

// fakeInvitationRepo is an in-memory InvitationRepository for tests.
type fakeInvitationRepo struct {
	invitations  []*domain.Invitation
	nextID       int
	createErr    error
	deleteAllErr error
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{nextID: 1}
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	if f.createErr != nil {
		return f.createErr
	}
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	f.nextID++
	f.invitations = append(f.invitations, inv)
	return nil
}

func (f *fakeInvitationRepo) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInvitationRepo) Delete(ctx context.Context, id string) error {
	for i, inv := range f.invitations {
		if inv.ID == id {
			f.invitations = append(f.invitations[:i], f.invitations[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeInvitationRepo) DeleteByLink(ctx context.Context, link string) error {
	for i, inv := range f.invitations {
		if inv.Link == link {
			f.invitations = append(f.invitations[:i], f.invitations[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeInvitationRepo) DeleteAllByEventID(ctx context.Context, eventID string) error {
	if f.deleteAllErr != nil {
		return f.deleteAllErr
	}
	var kept []*domain.Invitation
	for _, inv := range f.invitations {
		if inv.EventID != eventID {
			kept = append(kept, inv)
		}
	}
	f.invitations = kept
	return nil
}

func (f *fakeInvitationRepo) DeleteAllByUserID(ctx context.Context, userID string) error {
	var kept []*domain.Invitation
	for _, inv := range f.invitations {
		if inv.InviterID == userID || (inv.InviteeID != nil && *inv.InviteeID == userID) {
			continue
		}
		kept = append(kept, inv)
	}
	f.invitations = kept
	return nil
}

func (f *fakeInvitationRepo) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	var out []*domain.Invitation
	for _, inv := range f.invitations {
		if inv.EventID == eventID {
			out = append(out, inv)
		}
	}
	if out == nil {
		out = []*domain.Invitation{}
	}
	return out, len(out), nil
}

func (f *fakeInvitationRepo) ListByInviteeID(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.Invitation, int, error) {
	var out []*domain.Invitation
	for _, inv := range f.invitations {
		if inv.InviteeID != nil && *inv.InviteeID == userID {
			out = append(out, inv)
		}
	}
	if out == nil {
		out = []*domain.Invitation{}
	}
	return out, len(out), nil
}

// fakePhotoRepo is an in-memory PhotoRepository for tests.
type fakePhotoRepo struct {
	photos       []*domain.Photo
	nextID       int
	deleteAllErr error
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{nextID: 1}
}

func (f *fakePhotoRepo) Create(ctx context.Context, photo *domain.Photo) error {
	photo.ID = fmt.Sprintf("ph-%d", f.nextID)
	f.nextID++
	f.photos = append(f.photos, photo)
	return nil
}

func (f *fakePhotoRepo) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	for _, p := range f.photos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePhotoRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Photo, error) {
	var out []*domain.Photo
	for _, p := range f.photos {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePhotoRepo) Delete(ctx context.Context, id string) error {
	for i, p := range f.photos {
		if p.ID == id {
			f.photos = append(f.photos[:i], f.photos[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakePhotoRepo) DeleteAllByEventID(ctx context.Context, eventID string) error {
	if f.deleteAllErr != nil {
		return f.deleteAllErr
	}
	var kept []*domain.Photo
	for _, p := range f.photos {
		if p.EventID != eventID {
			kept = append(kept, p)
		}
	}
	f.photos = kept
	return nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:   make(map[string]*domain.User),
		nextID: 1,
	}
}

func (f *fakeUserRepo) addUser(id, email string) *domain.User {
	u := &domain.User{ID: id, Email: strings.ToLower(email)}
	f.byID[id] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeConfirmationRepo is an in-memory EmailConfirmationRepository for tests.
type fakeConfirmationRepo struct {
	byUserID  map[string]*domain.EmailConfirmation
	nextID    int
	createErr error
}

func newFakeConfirmationRepo() *fakeConfirmationRepo {
	return &fakeConfirmationRepo{
		byUserID: make(map[string]*domain.EmailConfirmation),
		nextID:   1,
	}
}

func (f *fakeConfirmationRepo) Create(ctx context.Context, c *domain.EmailConfirmation) error {
	if f.createErr != nil {
		return f.createErr
	}
	c.ID = fmt.Sprintf("conf-%d", f.nextID)
	f.nextID++
	f.byUserID[c.UserID] = c
	return nil
}

func (f *fakeConfirmationRepo) GetByUserID(ctx context.Context, userID string) (*domain.EmailConfirmation, error) {
	if c, ok := f.byUserID[userID]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeConfirmationRepo) Update(ctx context.Context, c *domain.EmailConfirmation) error {
	if _, ok := f.byUserID[c.UserID]; !ok {
		return domain.ErrNotFound
	}
	f.byUserID[c.UserID] = c
	return nil
}

func (f *fakeConfirmationRepo) DeleteByUserID(ctx context.Context, userID string) error {
	delete(f.byUserID, userID)
	return nil
}

// fakeFileStore is an in-memory FileStore for tests.
type fakeFileStore struct {
	files         map[string]bool // path -> exists
	deleteDirErr  error
	deleteFileErr error
	deletedDirs   []string
}

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{files: make(map[string]bool)}
}

func (f *fakeFileStore) PathFor(eventID, fileName string) string {
	return eventID + "/" + fileName
}

func (f *fakeFileStore) FileExists(path string) (bool, error) {
	return f.files[path], nil
}

func (f *fakeFileStore) WriteFile(eventID, fileName string, r io.Reader) (string, error) {
	path := f.PathFor(eventID, fileName)
	f.files[path] = true
	return path, nil
}

func (f *fakeFileStore) DeleteFile(path string) error {
	if f.deleteFileErr != nil {
		return f.deleteFileErr
	}
	delete(f.files, path)
	return nil
}

func (f *fakeFileStore) DeleteEventDir(eventID string) error {
	if f.deleteDirErr != nil {
		return f.deleteDirErr
	}
	f.deletedDirs = append(f.deletedDirs, eventID)
	prefix := eventID + "/"
	for path := range f.files {
		if strings.HasPrefix(path, prefix) {
			delete(f.files, path)
		}
	}
	return nil
}

// fakeTransactor runs fn directly and counts invocations. Fakes are in-memory so
// there is nothing to roll back; rollback behavior is covered by the postgres
// transactor tests.
type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// fakeLinkCodec joins the id triple with ";" in the clear.
type fakeLinkCodec struct {
	decodeErr error
}

func (f *fakeLinkCodec) Encode(eventID, inviteeID, inviterID string) (string, error) {
	return eventID + ";" + inviteeID + ";" + inviterID, nil
}

func (f *fakeLinkCodec) Decode(token string) (string, string, string, error) {
	if f.decodeErr != nil {
		return "", "", "", f.decodeErr
	}
	parts := strings.Split(token, ";")
	if len(parts) != 3 {
		return "", "", "", domain.ErrMalformedLink
	}
	return parts[0], parts[1], parts[2], nil
}

// fakeEmailService records sends; other methods no-op.
type fakeEmailService struct {
	sendInvitationErr error
	sendCodeErr       error
	sentInvitations   []*domain.InvitationEmailData
	sentWelcomes      []*domain.WelcomeMessageEmailData
	sentCodes         []*domain.ConfirmationCodeEmailData
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{}
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.sentWelcomes = append(f.sentWelcomes, data)
	return nil
}

func (f *fakeEmailService) SendConfirmationCode(ctx context.Context, data *domain.ConfirmationCodeEmailData) error {
	if f.sendCodeErr != nil {
		return f.sendCodeErr
	}
	f.sentCodes = append(f.sentCodes, data)
	return nil
}

func (f *fakeEmailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	if f.sendInvitationErr != nil {
		return f.sendInvitationErr
	}
	f.sentInvitations = append(f.sentInvitations, data)
	return nil
}

// fakeHasher is a trivial PasswordHasher for tests.
type fakeHasher struct {
	saltErr error
}

func (f *fakeHasher) GenerateSalt() (string, error) {
	if f.saltErr != nil {
		return "", f.saltErr
	}
	return "salt", nil
}

func (f *fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (f *fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// fakeTokenIssuer returns a fixed token.
type fakeTokenIssuer struct {
	issueErr error
}

func (f *fakeTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "token-" + userID, nil
}
