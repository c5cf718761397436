package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a gym member record in the directory. Members are what diet
// plans get assigned to; they are not login accounts in this service.
type Member struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	JoinedAt  time.Time          `bson:"joinedAt" json:"joinedAt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
