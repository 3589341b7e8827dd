package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBelt(t *testing.T) {
	assert.True(t, IsValidBelt("Blanco"))
	assert.True(t, IsValidBelt("Negro"))
	assert.False(t, IsValidBelt("Dorado"))
	assert.False(t, IsValidBelt("blanco"))
	assert.False(t, IsValidBelt(""))
}

func TestIsGroupColor(t *testing.T) {
	for _, color := range GroupColors {
		assert.True(t, IsGroupColor(color))
	}
	assert.False(t, IsGroupColor("#000000"))
	assert.False(t, IsGroupColor(""))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleUser))
	assert.False(t, IsValidRole("sensei"))
}

func TestIsValidFileType(t *testing.T) {
	assert.True(t, IsValidFileType(FileTypeDocument))
	assert.True(t, IsValidFileType(FileTypeImage))
	assert.False(t, IsValidFileType("video"))
}

func TestProfileIsAdmin(t *testing.T) {
	assert.True(t, (&Profile{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Profile{Role: RoleUser}).IsAdmin())
	assert.False(t, (&Profile{}).IsAdmin())
}
