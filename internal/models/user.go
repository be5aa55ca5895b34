package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	EmailID    string             `bson:"emailId" json:"emailId"`
	Password   string             `bson:"password" json:"-"` // bcrypt hash
	IsAdmin    bool               `bson:"isAdmin" json:"isAdmin"`
	ResumeLink string             `bson:"resumelink,omitempty" json:"resumelink,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

func (u *User) Role() UserRole {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}
