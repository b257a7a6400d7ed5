// Package policy decides which user may act on which message.
package policy

import (
	"messenger/model"

	"github.com/samber/lo"
)

type Action string

const (
	ActionShow    Action = "show"
	ActionUpdate  Action = "update"
	ActionDestroy Action = "destroy"
)

// ScopeAdmin grants every action on every message.
const ScopeAdmin = "admin"

// User is the acting user as seen by the policy: its id and the scopes its token carries.
type User struct {
	ID     uint
	Scopes []string
}

// Can reports whether the user was granted scope.
func (u User) Can(scope string) bool {
	return lo.Contains(u.Scopes, scope)
}

// Authorize reports whether user may perform action on message. Admins may do anything;
// everybody else only acts on their own messages.
func Authorize(action Action, user User, message *model.Message) bool {
	if user.Can(ScopeAdmin) {
		return true
	}
	if message == nil {
		return false
	}

	switch action {
	case ActionShow, ActionUpdate, ActionDestroy:
		return user.ID == message.UserId
	}
	return false
}
