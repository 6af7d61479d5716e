package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // SHA-1 hex digest
}
