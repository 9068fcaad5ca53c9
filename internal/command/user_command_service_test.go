package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VanMinhNguyen21/api-web/internal/cqrs"
	"github.com/VanMinhNguyen21/api-web/internal/errs"
	"github.com/VanMinhNguyen21/api-web/internal/models"
	"github.com/VanMinhNguyen21/api-web/internal/utils"
)

// ---- in-memory fakes ----

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) add(role, fullname, email, password string) *models.User {
	hash, _ := utils.HashPassword(password)
	u := &models.User{
		ID: f.nextID, Role: role, Fullname: fullname, Email: email,
		PasswordHash: hash,
	}
	f.users[u.ID] = u
	f.nextID++
	return u
}

func (f *fakeUserStore) Create(user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return errs.ErrEmailTaken
		}
	}
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByID(id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUserStore) Update(user *models.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return errs.ErrNotFound
	}
	stored.Role = user.Role
	stored.Fullname = user.Fullname
	stored.Email = user.Email
	stored.Avatar = user.Avatar
	stored.UpdatedAt = time.Now()
	user.UpdatedAt = stored.UpdatedAt
	return nil
}

func (f *fakeUserStore) UpdatePassword(id int64, passwordHash string) error {
	stored, ok := f.users[id]
	if !ok {
		return errs.ErrNotFound
	}
	stored.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserStore) Delete(id int64) error {
	if _, ok := f.users[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) EmailInUse(email string, excludeID int64) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserReader struct {
	cached      map[int64]*models.UserView
	invalidated []int64
}

func newFakeUserReader() *fakeUserReader {
	return &fakeUserReader{cached: map[int64]*models.UserView{}}
}

func (f *fakeUserReader) List(ctx context.Context, name, email string) ([]models.UserView, error) {
	return nil, nil
}

func (f *fakeUserReader) GetByID(ctx context.Context, id int64) (*models.UserView, error) {
	v, ok := f.cached[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return v, nil
}

func (f *fakeUserReader) CacheUserView(ctx context.Context, view *models.UserView) {
	f.cached[view.ID] = view
}

func (f *fakeUserReader) InvalidateUserView(ctx context.Context, userID int64) {
	delete(f.cached, userID)
	f.invalidated = append(f.invalidated, userID)
}

type fakePublisher struct {
	published []string
}

func (f *fakePublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	f.published = append(f.published, eventType)
	return nil
}

func newService() (*UserCommandService, *fakeUserStore, *fakeUserReader, *fakePublisher) {
	store := newFakeUserStore()
	reader := newFakeUserReader()
	pub := &fakePublisher{}
	return NewUserCommandService(store, reader, pub), store, reader, pub
}

// ---- tests ----

func TestCreateUserHashesPassword(t *testing.T) {
	svc, store, _, pub := newService()

	user, err := svc.CreateUser(cqrs.CreateUserCommand{
		Role: "user", Password: "p@ss1", Fullname: "Ann Lee", Email: "ann@x.com",
	})
	require.NoError(t, err)

	stored, err := store.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", stored.Fullname)
	assert.Equal(t, "ann@x.com", stored.Email)
	assert.NotEqual(t, "p@ss1", stored.PasswordHash)
	assert.True(t, utils.CheckPassword("p@ss1", stored.PasswordHash))
	assert.Contains(t, pub.published, "user.created")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, store, _, _ := newService()
	store.add("user", "Ann Lee", "ann@x.com", "secret")

	_, err := svc.CreateUser(cqrs.CreateUserCommand{
		Role: "user", Password: "other", Fullname: "Other Ann", Email: "ann@x.com",
	})
	assert.ErrorIs(t, err, errs.ErrEmailTaken)
}

func TestUpdateUserNotFound(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.UpdateUser(cqrs.UpdateUserCommand{
		UserID: 5, Fullname: "Nobody", Email: "no@x.com", Role: "user",
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdateUserEmailUniqueness(t *testing.T) {
	svc, store, _, _ := newService()
	ann := store.add("user", "Ann Lee", "ann@x.com", "secret")
	store.add("user", "Bob Tran", "bob@x.com", "secret")

	// Claiming another account's email is a per-field validation failure.
	_, err := svc.UpdateUser(cqrs.UpdateUserCommand{
		UserID: ann.ID, Fullname: "Ann Lee", Email: "bob@x.com", Role: "user",
	})
	ve, ok := errs.AsValidation(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "Email", ve.Fields[0].Field)
	assert.Equal(t, "The email address is already in use.", ve.Fields[0].Message)

	// Re-submitting the account's own email is not a conflict.
	view, err := svc.UpdateUser(cqrs.UpdateUserCommand{
		UserID: ann.ID, Fullname: "Ann Lee", Email: "ann@x.com", Role: "user",
	})
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", view.Email)
}

func TestUpdateUserAvatarHandling(t *testing.T) {
	svc, store, _, _ := newService()
	ann := store.add("user", "Ann Lee", "ann@x.com", "secret")
	store.users[ann.ID].Avatar = "avatars/ann.png"

	// Omitting the avatar leaves the stored value alone.
	view, err := svc.UpdateUser(cqrs.UpdateUserCommand{
		UserID: ann.ID, Fullname: "Ann Lee", Email: "ann@x.com", Role: "user",
	})
	require.NoError(t, err)
	assert.Equal(t, "avatars/ann.png", store.users[ann.ID].Avatar)
	assert.Equal(t, "avatars/ann.png", view.Avatar)

	// Submitting the field replaces it, including with an empty string.
	newAvatar := "avatars/new.png"
	_, err = svc.UpdateUser(cqrs.UpdateUserCommand{
		UserID: ann.ID, Fullname: "Ann Lee", Email: "ann@x.com", Role: "user",
		Avatar: &newAvatar,
	})
	require.NoError(t, err)
	assert.Equal(t, "avatars/new.png", store.users[ann.ID].Avatar)

	empty := ""
	_, err = svc.UpdateUser(cqrs.UpdateUserCommand{
		UserID: ann.ID, Fullname: "Ann Lee", Email: "ann@x.com", Role: "user",
		Avatar: &empty,
	})
	require.NoError(t, err)
	assert.Equal(t, "", store.users[ann.ID].Avatar)
}

func TestUpdateUserCachesFreshTimestamp(t *testing.T) {
	svc, store, reader, _ := newService()
	ann := store.add("user", "Ann Lee", "ann@x.com", "secret")

	view, err := svc.UpdateUser(cqrs.UpdateUserCommand{
		UserID: ann.ID, Fullname: "Ann Updated", Email: "ann@x.com", Role: "user",
	})
	require.NoError(t, err)

	// The view handed back and the cached projection both carry the
	// timestamp the store assigned during the update.
	assert.False(t, view.UpdatedAt.IsZero())
	assert.Equal(t, store.users[ann.ID].UpdatedAt, view.UpdatedAt)
	require.NotNil(t, reader.cached[ann.ID])
	assert.Equal(t, store.users[ann.ID].UpdatedAt, reader.cached[ann.ID].UpdatedAt)
}

func TestUpdateUserNeverTouchesPassword(t *testing.T) {
	svc, store, _, _ := newService()
	ann := store.add("user", "Ann Lee", "ann@x.com", "secret")
	before := store.users[ann.ID].PasswordHash

	_, err := svc.UpdateUser(cqrs.UpdateUserCommand{
		UserID: ann.ID, Fullname: "Ann Updated", Email: "ann@x.com", Role: "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, before, store.users[ann.ID].PasswordHash)
	assert.Equal(t, "Ann Updated", store.users[ann.ID].Fullname)
}

func TestDeleteUser(t *testing.T) {
	svc, store, reader, pub := newService()
	ann := store.add("user", "Ann Lee", "ann@x.com", "secret")

	require.NoError(t, svc.DeleteUser(cqrs.DeleteUserCommand{UserID: ann.ID}))
	assert.Contains(t, reader.invalidated, ann.ID)
	assert.Contains(t, pub.published, "user.deleted")

	err := svc.DeleteUser(cqrs.DeleteUserCommand{UserID: 99})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestChangePasswordAdminOverride(t *testing.T) {
	svc, store, _, pub := newService()
	admin := store.add(models.RoleAdmin, "Root", "root@x.com", "rootpass")
	target := store.add("user", "Bob Tran", "bob@x.com", "oldpass")
	targetID := target.ID

	// No old password supplied at all.
	err := svc.ChangePassword(cqrs.ChangePasswordCommand{
		CallerID: admin.ID, CallerRole: admin.Role,
		TargetUserID: &targetID, NewPassword: "n3w",
	})
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword("n3w", store.users[target.ID].PasswordHash))
	assert.Contains(t, pub.published, "user.password_changed")
}

func TestChangePasswordAdminOverrideMissingTarget(t *testing.T) {
	svc, store, _, _ := newService()
	admin := store.add(models.RoleAdmin, "Root", "root@x.com", "rootpass")
	missing := int64(99)

	err := svc.ChangePassword(cqrs.ChangePasswordCommand{
		CallerID: admin.ID, CallerRole: admin.Role,
		TargetUserID: &missing, NewPassword: "n3w",
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestChangePasswordSelfService(t *testing.T) {
	svc, store, _, _ := newService()
	bob := store.add("user", "Bob Tran", "bob@x.com", "oldpass")
	before := store.users[bob.ID].PasswordHash

	// Wrong old password: mismatch reported, stored hash untouched.
	err := svc.ChangePassword(cqrs.ChangePasswordCommand{
		CallerID: bob.ID, CallerRole: bob.Role,
		OldPassword: "wrong", NewPassword: "n3w",
	})
	assert.ErrorIs(t, err, errs.ErrPasswordMismatch)
	assert.Equal(t, before, store.users[bob.ID].PasswordHash)

	// Correct old password succeeds.
	err = svc.ChangePassword(cqrs.ChangePasswordCommand{
		CallerID: bob.ID, CallerRole: bob.Role,
		OldPassword: "oldpass", NewPassword: "n3w",
	})
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword("n3w", store.users[bob.ID].PasswordHash))
}

func TestChangePasswordSelfServiceWithExplicitTarget(t *testing.T) {
	svc, store, _, _ := newService()
	bob := store.add("user", "Bob Tran", "bob@x.com", "oldpass")
	bobID := bob.ID

	err := svc.ChangePassword(cqrs.ChangePasswordCommand{
		CallerID: bob.ID, CallerRole: bob.Role,
		TargetUserID: &bobID, OldPassword: "oldpass", NewPassword: "n3w",
	})
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword("n3w", store.users[bob.ID].PasswordHash))
}

func TestChangePasswordDenied(t *testing.T) {
	svc, store, _, _ := newService()
	bob := store.add("user", "Bob Tran", "bob@x.com", "oldpass")
	carol := store.add("user", "Carol Vu", "carol@x.com", "oldpass")
	carolID := carol.ID
	before := store.users[carol.ID].PasswordHash

	// Payload correctness is irrelevant: a non-admin naming another user
	// is rejected before any verification happens.
	err := svc.ChangePassword(cqrs.ChangePasswordCommand{
		CallerID: bob.ID, CallerRole: bob.Role,
		TargetUserID: &carolID, OldPassword: "oldpass", NewPassword: "n3w",
	})
	assert.ErrorIs(t, err, errs.ErrForbidden)
	assert.Equal(t, before, store.users[carol.ID].PasswordHash)
}
