package domain

// Identity is the verified caller attached to a request by the token gate.
type Identity struct {
	SubjectID string `json:"subjectId"`
	Role      string `json:"role"`
}
