package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/validators"
)

type fakeUserRepo struct {
	users      map[uint]*models.User
	nextID     uint
	cancerLink map[uint]uint
	replaces   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, cancerLink: map[uint]uint{}}
}

// CreateUser mirrors the unique indexes on email and firebase_uid; an
// unlinked UID is NULL and never collides.
func (f *fakeUserRepo) CreateUser(user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return errors.New("duplicate email")
		}
		if u.FirebaseUID != nil && user.FirebaseUID != nil && *u.FirebaseUID == *user.FirebaseUID {
			return errors.New("duplicate firebase uid")
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, u := range f.users {
		if u.FirebaseUID != nil && *u.FirebaseUID == firebaseUID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateUser(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) SetCancer(user *models.User, cancerID uint) error {
	f.cancerLink[user.ID] = cancerID
	f.replaces++
	return nil
}

func (f *fakeUserRepo) GetAnonymousUser(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.IsAnonymous {
			return u, nil
		}
	}
	anon := &models.User{Nickname: "anonymous", Email: email, IsAnonymous: true}
	if err := f.CreateUser(anon); err != nil {
		return nil, err
	}
	return anon, nil
}

func (f *fakeUserRepo) AnonymizeAndDelete(userID, anonymousUserID uint) error {
	if _, ok := f.users[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, userID)
	return nil
}

type fakeRefreshTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshTokenRepo) Create(token *models.RefreshToken) error {
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeRefreshTokenRepo) GetByToken(token string) (*models.RefreshToken, error) {
	rt, ok := f.tokens[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rt, nil
}

func (f *fakeRefreshTokenRepo) Delete(token string) error {
	delete(f.tokens, token)
	return nil
}

func newJSONContext(e *echo.Echo, method, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("userID", userID)
	}
	return c, rec
}

func TestSignupLeavesFirebaseUIDUnlinked(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	userRepo := newFakeUserRepo()
	h := NewAuthHandler(userRepo, newFakeRefreshTokenRepo(), nil, nil, "secret")

	c, rec := newJSONContext(e, http.MethodPost,
		`{"nickname":"mina","email":"mina@example.com","password":"password123"}`, 0)
	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// A second local-only account must not collide with the first on the
	// firebase_uid unique index.
	c, rec = newJSONContext(e, http.MethodPost,
		`{"nickname":"jun","email":"jun@example.com","password":"password123"}`, 0)
	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, userRepo.users, 2)
	for _, u := range userRepo.users {
		assert.Nil(t, u.FirebaseUID, "local signups must leave the Firebase link unset")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	userRepo := newFakeUserRepo()
	h := NewAuthHandler(userRepo, newFakeRefreshTokenRepo(), nil, nil, "secret")

	c, _ := newJSONContext(e, http.MethodPost,
		`{"nickname":"mina","email":"mina@example.com","password":"password123"}`, 0)
	require.NoError(t, h.Signup(c))

	c, _ = newJSONContext(e, http.MethodPost,
		`{"nickname":"mina2","email":"mina@example.com","password":"password123"}`, 0)
	err := h.Signup(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Code)
}

func TestRefreshRotatesToken(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeRefreshTokenRepo()
	h := NewAuthHandler(userRepo, tokenRepo, nil, nil, "secret")

	c, rec := newJSONContext(e, http.MethodPost,
		`{"nickname":"mina","email":"mina@example.com","password":"password123"}`, 0)
	require.NoError(t, h.Signup(c))
	require.Len(t, tokenRepo.tokens, 1)

	var issued string
	for token := range tokenRepo.tokens {
		issued = token
	}

	c, rec = newJSONContext(e, http.MethodPost, `{"refresh_token":"`+issued+`"}`, 0)
	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := tokenRepo.GetByToken(issued)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "the presented token is consumed on rotation")
	assert.Len(t, tokenRepo.tokens, 1, "a replacement token is issued")
}
