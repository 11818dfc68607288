package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/weblab-class/MovieGenie/config"
	"github.com/weblab-class/MovieGenie/models"
)

// SeedAdminUser creates the local admin account when ADMIN_PASSWORD is
// configured and the account does not exist yet. Without a password, seeding
// is skipped.
func SeedAdminUser(ctx context.Context, cfg *config.Config) error {
	if cfg.AdminPassword == "" {
		return nil
	}

	err := Users().FindOne(ctx, bson.M{"name": cfg.AdminUsername}).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to check for existing admin user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	_, err = Users().InsertOne(ctx, models.User{
		Name:         cfg.AdminUsername,
		PasswordHash: string(hashedPassword),
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("failed to insert admin user: %w", err)
	}
	return nil
}
