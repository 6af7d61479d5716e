package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
