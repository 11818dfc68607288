package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a stored account. Google sign-in accounts carry GoogleID and no
// password hash; the seeded admin account is the reverse.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	GoogleID     string             `bson:"googleid,omitempty" json:"-"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	IsAdmin      bool               `bson:"is_admin,omitempty" json:"is_admin,omitempty"`
	WatchList    []WatchListEntry   `bson:"watch_list,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"-"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"-"`
}
