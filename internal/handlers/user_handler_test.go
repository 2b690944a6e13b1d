package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carena-app/backend/internal/models"
	"github.com/carena-app/backend/validators"
)

func TestUpdateProfileReplacesCancerLink(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	userRepo := newFakeUserRepo()
	userRepo.users[1] = &models.User{ID: 1, Nickname: "mina", Email: "mina@example.com"}
	h := NewUserHandler(userRepo, "anonymous@example.com")

	c, rec := newJSONContext(e, http.MethodPut, `{"cancer_id":2}`, 1)
	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(2), userRepo.cancerLink[1])

	// Choosing a different cancer replaces the link instead of accumulating
	// a second row in the join table.
	c, rec = newJSONContext(e, http.MethodPut, `{"cancer_id":5}`, 1)
	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(5), userRepo.cancerLink[1])
	assert.Len(t, userRepo.cancerLink, 1)
	assert.Equal(t, 2, userRepo.replaces)
}

func TestUpdateProfileNickname(t *testing.T) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	userRepo := newFakeUserRepo()
	userRepo.users[1] = &models.User{ID: 1, Nickname: "mina", Email: "mina@example.com"}
	h := NewUserHandler(userRepo, "anonymous@example.com")

	c, rec := newJSONContext(e, http.MethodPut, `{"nickname":"mina2"}`, 1)
	require.NoError(t, h.UpdateProfile(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mina2", userRepo.users[1].Nickname)
	assert.Empty(t, userRepo.cancerLink, "no cancer chosen means the link is untouched")
}
