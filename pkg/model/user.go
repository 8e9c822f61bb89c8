package model

// UnknownUserName is displayed for creators which can't be resolved.
const UnknownUserName = "Unknown"

// User is the entity referenced as an event's creator
type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// UnknownUser is the placeholder used in place of a creator which can't be resolved.
func UnknownUser() User {
	return User{Name: UnknownUserName}
}
