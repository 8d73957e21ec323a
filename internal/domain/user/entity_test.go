package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_HasToken(t *testing.T) {
	empty := ""
	token := "abc"

	assert.False(t, (&User{}).HasToken())
	assert.False(t, (&User{APIToken: &empty}).HasToken())
	assert.True(t, (&User{APIToken: &token}).HasToken())
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	u := &User{ID: 7}
	got, ok := FromContext(NewContext(context.Background(), u))
	assert.True(t, ok)
	assert.Same(t, u, got)

	_, ok = FromContext(NewContext(context.Background(), nil))
	assert.False(t, ok)
}
