package domain

import "time"

// MentorshipStatus is the lifecycle state of a mentorship request.
type MentorshipStatus string

const (
	MentorshipPending  MentorshipStatus = "pending"
	MentorshipAccepted MentorshipStatus = "accepted"
	MentorshipDeclined MentorshipStatus = "declined"
)

// Mentorship is an offering published by an alumni mentor.
type Mentorship struct {
	ID         string    `json:"id"`
	MentorID   string    `json:"mentorId"`
	MentorName string    `json:"mentorName"`
	Title      string    `json:"title"`
	Expertise  []string  `json:"expertise"`
	Capacity   int       `json:"capacity"`
	Enrolled   int       `json:"enrolled"`
	Bio        string    `json:"bio"`
	Location   string    `json:"location"`
	IsRemote   bool      `json:"isRemote"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MentorshipRequest is a student's ask addressed to a mentor.
type MentorshipRequest struct {
	ID           string           `json:"id"`
	MentorshipID string           `json:"mentorshipId"`
	MentorID     string           `json:"mentorId"`
	StudentID    string           `json:"studentId"`
	StudentName  string           `json:"studentName"`
	Topic        string           `json:"topic"`
	Message      string           `json:"message"`
	Status       MentorshipStatus `json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
}
