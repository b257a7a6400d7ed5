package policy

import (
	"testing"

	"messenger/model"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	message := &model.Message{UserId: 1}
	owner := User{ID: 1}
	stranger := User{ID: 2}
	admin := User{ID: 3, Scopes: []string{"messages", ScopeAdmin}}
	scoped := User{ID: 2, Scopes: []string{"messages"}}

	tests := []struct {
		name   string
		action Action
		user   User
		want   bool
	}{
		{"owner shows", ActionShow, owner, true},
		{"owner updates", ActionUpdate, owner, true},
		{"owner destroys", ActionDestroy, owner, true},
		{"stranger shows", ActionShow, stranger, false},
		{"stranger updates", ActionUpdate, stranger, false},
		{"stranger destroys", ActionDestroy, stranger, false},
		{"non admin scope is not enough", ActionShow, scoped, false},
		{"admin shows", ActionShow, admin, true},
		{"admin updates", ActionUpdate, admin, true},
		{"admin destroys", ActionDestroy, admin, true},
		{"owner unknown action", Action("publish"), owner, false},
		{"admin unknown action", Action("publish"), admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.action, tt.user, message))
		})
	}
}

func TestAuthorize_NilMessage(t *testing.T) {
	assert.False(t, Authorize(ActionShow, User{ID: 0}, nil))
	assert.True(t, Authorize(ActionShow, User{Scopes: []string{ScopeAdmin}}, nil))
}
