package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitized(t *testing.T) {
	assert := assert.New(t)

	token := "abc"
	user := &User{ID: 1, Email: "a@example.com", Password: "$2a$10$hash", ConfirmationToken: &token}
	clean := user.Sanitized()
	assert.Empty(clean.Password)
	assert.Nil(clean.ConfirmationToken)
	assert.Equal("$2a$10$hash", user.Password, "original is untouched")

	raw, err := json.Marshal(user)
	assert.Nil(err)
	assert.NotContains(string(raw), "$2a$")
	assert.NotContains(string(raw), "abc")
}

func TestPublic(t *testing.T) {
	assert := assert.New(t)

	token := "abc"
	user := &User{ID: 1, Name: "Ana", Email: "a@example.com", Password: "$2a$10$hash", ConfirmationToken: &token, Confirmed: true, Score: 7}
	public := user.Public()
	assert.Equal(UserID(1), public.ID)
	assert.Equal(int64(7), public.Score)

	raw, err := json.Marshal(public)
	assert.Nil(err)
	for _, hidden := range []string{"a@example.com", "email", "confirmado", "$2a$", "abc"} {
		assert.NotContains(string(raw), hidden)
	}
}

func TestFileName(t *testing.T) {
	assert := assert.New(t)

	a := FileName("avatar", ".png")
	b := FileName("avatar", ".png")
	assert.True(strings.HasPrefix(a, "avatar_"))
	assert.True(strings.HasSuffix(a, ".png"))
	assert.NotEqual(a, b)
}

func TestRole(t *testing.T) {
	assert := assert.New(t)
	assert.True(RoleRecruiter.Valid())
	assert.True(RoleStandard.Valid())
	assert.False(Role("admin").Valid())
}
