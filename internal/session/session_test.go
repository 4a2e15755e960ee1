package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNormalizesRole(t *testing.T) {
	sess := New("dgarcia", "David García", " ADMIN ")

	assert.Equal(t, RoleAdmin, sess.Role)
	assert.True(t, sess.IsAdmin())
}

func TestNonAdminRole(t *testing.T) {
	sess := New("lperez", "Laura Pérez", "comercial")

	assert.Equal(t, RoleComercial, sess.Role)
	assert.False(t, sess.IsAdmin())
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "David", New("dgarcia", "David García", "admin").ShortName())
	assert.Equal(t, "dgarcia", New("dgarcia", "", "admin").ShortName())
}
