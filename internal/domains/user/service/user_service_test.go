package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/domains/user/model"
	"bookreview-backend/pkg/jwt"
)

// =====================================================
// FAKE REPOSITORY
// =====================================================

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return model.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return model.ErrDuplicateEmail
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return model.ErrUserNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, req model.ListUsersRequest) ([]model.User, int, error) {
	out := []model.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func newTestService(repo *fakeUserRepo) ServiceInterface {
	return NewUserService(repo, jwt.NewManager("test-secret", 15, 168))
}

// =====================================================
// TESTS
// =====================================================

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	registered, err := svc.Register(ctx, model.RegisterRequest{
		Username:        "reader_one",
		Email:           "reader@example.com",
		Password:        "s3cretpass",
		PreferredGenres: []string{"Fiction", "Mystery"},
	})
	require.NoError(t, err)
	assert.Equal(t, "reader_one", registered.Username)
	assert.False(t, registered.IsAdmin)

	login, err := svc.Login(ctx, model.LoginRequest{
		Username: "reader_one",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, registered.ID, login.User.ID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, model.RegisterRequest{
		Username: "reader_one", Email: "a@example.com", Password: "s3cretpass",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, model.RegisterRequest{
		Username: "reader_one", Email: "b@example.com", Password: "s3cretpass",
	})
	require.Error(t, err)

	var userErr *model.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeDuplicateUsername, userErr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, model.RegisterRequest{
		Username: "reader_one", Email: "a@example.com", Password: "s3cretpass",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, model.LoginRequest{Username: "reader_one", Password: "wrongpass1"})
	require.Error(t, err)

	var userErr *model.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeInvalidCredentials, userErr.Code)
}

func TestLoginUnknownUserSameError(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), model.LoginRequest{Username: "ghost", Password: "whatever1"})
	require.Error(t, err)

	var userErr *model.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, model.ErrCodeInvalidCredentials, userErr.Code)
}

func TestRefreshToken(t *testing.T) {
	svc := newTestService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, model.RegisterRequest{
		Username: "reader_one", Email: "a@example.com", Password: "s3cretpass",
	})
	require.NoError(t, err)

	login, err := svc.Login(ctx, model.LoginRequest{Username: "reader_one", Password: "s3cretpass"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Access token không dùng được làm refresh token
	_, err = svc.Refresh(ctx, login.AccessToken)
	require.Error(t, err)
}

func TestUpdateUserPreferredGenres(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	registered, err := svc.Register(ctx, model.RegisterRequest{
		Username: "reader_one", Email: "a@example.com", Password: "s3cretpass",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, registered.ID, model.UpdateUserRequest{
		PreferredGenres: []string{"Science Fiction", "Fantasy"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Science Fiction", "Fantasy"}, updated.PreferredGenres)
}
