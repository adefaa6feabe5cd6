// internal/domain/models/parq.go
package models

import "time"

// ParQSubmission is a completed physical-activity readiness questionnaire.
// It lives in its own collection outside the protected set; the intake
// endpoint is the only writer.
type ParQSubmission struct {
	ID        string    `bson:"_id" json:"id"`
	FullName  string    `bson:"full_name" json:"full_name"`
	Email     string    `bson:"email" json:"email"`
	BirthYear int       `bson:"birth_year" json:"birth_year"`
	Answers   []bool    `bson:"answers" json:"answers"` // the seven PAR-Q questions, true = yes
	Details   string    `bson:"details,omitempty" json:"details,omitempty"`

	// RequiresClearance is set when any answer is yes: the client should
	// consult a physician before starting a program.
	RequiresClearance bool      `bson:"requires_clearance" json:"requires_clearance"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
}
