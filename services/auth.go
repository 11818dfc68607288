package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/weblab-class/MovieGenie/config"
	"github.com/weblab-class/MovieGenie/database"
	"github.com/weblab-class/MovieGenie/httpclient"
	"github.com/weblab-class/MovieGenie/models"
)

// tokenInfoURL is Google's ID-token introspection endpoint. Package variable
// so tests can point it at a stub server.
var tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleClaims is the subset of the tokeninfo response the login flow needs.
type GoogleClaims struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Audience string `json:"aud"`
	Expires  string `json:"exp"`
}

// VerifyGoogleToken validates a Google ID token against the tokeninfo
// endpoint and checks that it was issued for this application.
func VerifyGoogleToken(ctx context.Context, cfg *config.Config, idToken string) (*GoogleClaims, error) {
	if cfg.GoogleClientID == "" {
		return nil, fmt.Errorf("google login is not configured")
	}

	query := url.Values{}
	query.Set("id_token", idToken)
	resp, err := httpclient.Get(ctx, httpclient.BuildQueryURL(tokenInfoURL, query), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("invalid token")
	}

	var claims GoogleClaims
	if err := httpclient.DecodeJSON(resp, &claims); err != nil {
		return nil, err
	}

	if claims.Audience != cfg.GoogleClientID {
		return nil, fmt.Errorf("token issued for a different client")
	}
	if exp, err := strconv.ParseInt(claims.Expires, 10, 64); err != nil || time.Now().Unix() >= exp {
		return nil, fmt.Errorf("token expired")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return &claims, nil
}

// LoginWithGoogle verifies the ID token and upserts the matching user record.
func LoginWithGoogle(ctx context.Context, cfg *config.Config, idToken string) (*models.User, error) {
	claims, err := VerifyGoogleToken(ctx, cfg, idToken)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"name":       claims.Name,
			"email":      claims.Email,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"googleid":   claims.Subject,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user models.User
	err = database.Users().
		FindOneAndUpdate(ctx, bson.M{"googleid": claims.Subject}, update, opts).
		Decode(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &user, nil
}

// AuthenticateUser checks local (password) credentials, used by the seeded
// admin account.
func AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := database.Users().
		FindOne(ctx, bson.M{"name": username, "password_hash": bson.M{"$exists": true}}).
		Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("invalid credentials")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return &user, nil
}

// GetUserByID loads a user from its hex object id, as stored in the session.
func GetUserByID(ctx context.Context, idHex string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	var user models.User
	err = database.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
