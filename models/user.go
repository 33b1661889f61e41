package models

import "time"

// Theme is the UI color scheme chosen by the user.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Preferences holds user-controlled settings.
// Pointer booleans distinguish "not provided" from "false" in partial updates.
type Preferences struct {
	Theme         Theme `json:"theme,omitempty"`
	Notifications *bool `json:"notifications,omitempty"`
	Marketing     *bool `json:"marketing,omitempty"`
}

// User is the authenticated shopper profile.
type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
	Preferences Preferences `json:"preferences"`
}

// UserUpdate is a partial profile update. Zero fields are left untouched.
type UserUpdate struct {
	Email       string      `json:"email,omitempty"`
	Name        string      `json:"name,omitempty"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
	Preferences Preferences `json:"preferences,omitempty"`
}

// Session is the bearer credential of the signed-in user.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the session has an expiry in the past.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
