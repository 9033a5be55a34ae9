package domain

import (
	"strings"
	"time"
)

const (
	RoleAlumni  = "alumni"
	RoleStudent = "student"
	RoleAdmin   = "admin"

	// DefaultRole is assigned when a registration does not name one.
	DefaultRole = RoleAlumni
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleAlumni, RoleStudent, RoleAdmin:
		return true
	}
	return false
}

// NormalizeEmail returns the canonical form used as the login key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Profile holds the optional, owner-mutable attributes of a user record.
type Profile struct {
	Title          string `json:"title,omitempty"`
	Company        string `json:"company,omitempty"`
	Location       string `json:"location,omitempty"`
	GraduationYear int    `json:"graduationYear,omitempty"`
	Bio            string `json:"bio,omitempty"`
	LinkedIn       string `json:"linkedin,omitempty"`
	Website        string `json:"website,omitempty"`
	ProfileImage   string `json:"profileImage,omitempty"`
	CollegeName    string `json:"collegeName,omitempty"`
	CollegeCode    string `json:"collegeCode,omitempty"`
}

// User is the credential store record. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProfileUpdate carries a partial profile change. Nil fields keep their stored value.
type ProfileUpdate struct {
	Name           *string
	Email          *string
	Title          *string
	Company        *string
	Location       *string
	GraduationYear *int
	Bio            *string
	LinkedIn       *string
	Website        *string
	ProfileImage   *string
}

// Empty reports whether the update would change nothing.
func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Title == nil && u.Company == nil &&
		u.Location == nil && u.GraduationYear == nil && u.Bio == nil &&
		u.LinkedIn == nil && u.Website == nil && u.ProfileImage == nil
}
