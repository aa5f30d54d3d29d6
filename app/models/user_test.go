package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	user := &User{Username: "ivan"}
	require.NoError(t, user.SetPassword("correct horse"))

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "correct horse")
	assert.True(t, user.CheckPassword("correct horse"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestUserValidation(t *testing.T) {
	user := &User{Username: "ivan"}
	require.NoError(t, user.SetPassword("secret1"))
	assert.NoError(t, user.Validate())

	// Handles are alphanumeric
	bad := &User{Username: "iv an", PasswordHash: "x"}
	assert.Error(t, bad.Validate())

	// Single-character handles are too short
	short := &User{Username: "i", PasswordHash: "x"}
	assert.Error(t, short.Validate())
}

func TestFollowValidation(t *testing.T) {
	valid := &Follow{UserID: 1, AuthorID: 2}
	assert.NoError(t, valid.Validate())

	self := &Follow{UserID: 1, AuthorID: 1}
	assert.Error(t, self.Validate())

	missing := &Follow{UserID: 1}
	assert.Error(t, missing.Validate())
}
