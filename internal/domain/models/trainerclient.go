// internal/domain/models/trainerclient.go
package models

import "time"

// TrainerClientAssignment links a trainer to a client. Its existence with
// status "active" is the sole authorization proof for a trainer touching a
// specific client's records it does not itself own.
type TrainerClientAssignment struct {
	ID        string    `bson:"_id" json:"id"`
	TrainerID string    `bson:"trainer_id" json:"trainer_id"`
	ClientID  string    `bson:"client_id" json:"client_id"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
