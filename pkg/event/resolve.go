package event

import (
	"strings"

	"github.com/dhis2-sre/im-events/pkg/model"
)

// References resolves the ids an event refers to.
type References interface {
	Category(id uint) (model.Category, bool)
	User(id uint) (model.User, bool)
}

// CategoryNames joins the names of the given categories. Ids which can't be resolved are left out.
func CategoryNames(ids []uint, references References) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if category, ok := references.Category(id); ok {
			names = append(names, category.Name)
		}
	}
	return strings.Join(names, ", ")
}

// Creator returns the user with given id or model.UnknownUser if there's no such user.
func Creator(id uint, references References) model.User {
	if user, ok := references.User(id); ok {
		return user
	}
	return model.UnknownUser()
}
