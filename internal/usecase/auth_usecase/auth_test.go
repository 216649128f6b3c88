package auth

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/validator"

	"github.com/stretchr/testify/assert"
)

type memUserRepo struct {
	users map[string]*model.User // email -> user
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := r.users[user.Email]; !ok {
		return repository.ErrUserNotFound
	}
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (plainHasher) Verify(plain string, hashed string) bool {
	return "hashed:"+plain == hashed
}

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return string(rune('a' + g.n - 1))
}

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

type stubIssuer struct{}

func (stubIssuer) Issue(userID string, role model.Role, now time.Time) (string, time.Time, error) {
	return "token-" + userID, now.Add(15 * time.Minute), nil
}

var testNow = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

func TestRegisterUser(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewRegisterUserUsecase(repo, plainHasher{}, &seqIDGen{}, &testClock{t: testNow})

	out, err := uc.Execute(context.Background(), RegisterUserInput{
		Email:    " Staff@Example.com ",
		Name:     "Staff One",
		Password: "password1",
	})

	assert.NoError(t, err)
	//メールは正規化される
	assert.Equal(t, "staff@example.com", out.User.Email)
	assert.Equal(t, model.RoleEmployee, out.User.Role)
	assert.True(t, out.User.IsActive)
	//出力にハッシュは含めない
	assert.Empty(t, out.User.PasswordHash)

	//保存側にはハッシュが残っている
	saved := repo.users["staff@example.com"]
	assert.Equal(t, "hashed:password1", saved.PasswordHash)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewRegisterUserUsecase(repo, plainHasher{}, &seqIDGen{}, &testClock{t: testNow})

	in := RegisterUserInput{Email: "staff@example.com", Name: "Staff", Password: "password1"}
	_, err := uc.Execute(context.Background(), in)
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegisterUserValidation(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewRegisterUserUsecase(repo, plainHasher{}, &seqIDGen{}, &testClock{t: testNow})

	tests := []struct {
		name string
		in   RegisterUserInput
		want error
	}{
		{"empty email", RegisterUserInput{Name: "A", Password: "password1"}, validator.ErrInvalidInput},
		{"bad email", RegisterUserInput{Email: "not-an-email", Name: "A", Password: "password1"}, validator.ErrInvalidInput},
		{"short password", RegisterUserInput{Email: "a@example.com", Name: "A", Password: "pass1"}, validator.ErrWeakPassword},
		{"no digit", RegisterUserInput{Email: "a@example.com", Name: "A", Password: "passwords"}, validator.ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin(t *testing.T) {
	repo := newMemUserRepo()
	reg := NewRegisterUserUsecase(repo, plainHasher{}, &seqIDGen{}, &testClock{t: testNow})
	_, err := reg.Execute(context.Background(), RegisterUserInput{
		Email: "staff@example.com", Name: "Staff", Password: "password1",
	})
	assert.NoError(t, err)

	uc := NewLoginUsecase(repo, plainHasher{}, stubIssuer{}, &testClock{t: testNow})

	out, err := uc.Execute(context.Background(), LoginInput{
		Email:    "staff@example.com",
		Password: "password1",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, out.Token.AccessToken)
	assert.Equal(t, 15*60, out.Token.ExpiresIn)
	assert.Empty(t, out.User.PasswordHash)

	//最終ログイン時刻が更新されている
	saved := repo.users["staff@example.com"]
	assert.NotNil(t, saved.LastLoginAt)
	assert.Equal(t, testNow, *saved.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMemUserRepo()
	reg := NewRegisterUserUsecase(repo, plainHasher{}, &seqIDGen{}, &testClock{t: testNow})
	_, _ = reg.Execute(context.Background(), RegisterUserInput{
		Email: "staff@example.com", Name: "Staff", Password: "password1",
	})

	uc := NewLoginUsecase(repo, plainHasher{}, stubIssuer{}, &testClock{t: testNow})

	_, err := uc.Execute(context.Background(), LoginInput{Email: "staff@example.com", Password: "wrong1234"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	uc := NewLoginUsecase(newMemUserRepo(), plainHasher{}, stubIssuer{}, &testClock{t: testNow})

	_, err := uc.Execute(context.Background(), LoginInput{Email: "nobody@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	repo := newMemUserRepo()
	reg := NewRegisterUserUsecase(repo, plainHasher{}, &seqIDGen{}, &testClock{t: testNow})
	_, _ = reg.Execute(context.Background(), RegisterUserInput{
		Email: "staff@example.com", Name: "Staff", Password: "password1",
	})
	repo.users["staff@example.com"].IsActive = false

	uc := NewLoginUsecase(repo, plainHasher{}, stubIssuer{}, &testClock{t: testNow})

	_, err := uc.Execute(context.Background(), LoginInput{Email: "staff@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptPasswordHasher()

	hash, err := h.Hash("password1")
	assert.NoError(t, err)
	assert.True(t, h.Verify("password1", hash))
	assert.False(t, h.Verify("password2", hash))
}
