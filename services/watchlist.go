package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/weblab-class/MovieGenie/database"
	"github.com/weblab-class/MovieGenie/models"
)

// GetWatchList returns the user's saved movies in insertion order.
func GetWatchList(ctx context.Context, userID primitive.ObjectID) ([]models.Movie, error) {
	var user models.User
	err := database.Users().FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	movies := make([]models.Movie, 0, len(user.WatchList))
	for _, entry := range user.WatchList {
		movies = append(movies, entry.Movie)
	}
	return movies, nil
}

// AddToWatchList appends a movie to the user's watch list. Adding a movie
// that is already saved is a no-op; either way the current list is returned.
func AddToWatchList(ctx context.Context, userID primitive.ObjectID, movie models.Movie) ([]models.Movie, error) {
	entry := models.WatchListEntry{Movie: movie, DateAdded: time.Now().UTC()}

	filter := bson.M{
		"_id":           userID,
		"watch_list.id": bson.M{"$ne": movie.ID},
	}
	update := bson.M{
		"$push": bson.M{"watch_list": entry},
		"$set":  bson.M{"updated_at": entry.DateAdded},
	}
	if _, err := database.Users().UpdateOne(ctx, filter, update); err != nil {
		return nil, fmt.Errorf("failed to add to watch list: %w", err)
	}

	return GetWatchList(ctx, userID)
}

// RemoveFromWatchList deletes a movie from the user's watch list and returns
// the updated list.
func RemoveFromWatchList(ctx context.Context, userID primitive.ObjectID, movieID int) ([]models.Movie, error) {
	update := bson.M{
		"$pull": bson.M{"watch_list": bson.M{"id": movieID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	if _, err := database.Users().UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		return nil, fmt.Errorf("failed to remove from watch list: %w", err)
	}

	return GetWatchList(ctx, userID)
}
