package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trends-service/model"
)

// --- favorites ---

// AddFavorite saves a video for the user. Duplicates on (user, video URL)
// are ignored.
func (s *Store) AddFavorite(ctx context.Context, userID primitive.ObjectID, video model.Video) error {
	fav := model.Favorite{
		UserID:   userID,
		VideoURL: video.VideoURL,
		Video:    video,
		SavedAt:  time.Now(),
	}
	_, err := s.favorites().UpdateOne(ctx,
		bson.M{"userId": userID, "videoUrl": video.VideoURL},
		bson.M{"$setOnInsert": fav},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *Store) RemoveFavorite(ctx context.Context, userID primitive.ObjectID, videoURL string) error {
	_, err := s.favorites().DeleteOne(ctx, bson.M{"userId": userID, "videoUrl": videoURL})
	return err
}

func (s *Store) FavoritesByUser(ctx context.Context, userID primitive.ObjectID) ([]model.Favorite, error) {
	cursor, err := s.favorites().Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.M{"savedAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var favs []model.Favorite
	if err := cursor.All(ctx, &favs); err != nil {
		return nil, err
	}
	return favs, nil
}

// --- search history ---

func (s *Store) AddHistory(ctx context.Context, h model.SearchHistory) error {
	h.SearchedAt = time.Now()
	_, err := s.history().InsertOne(ctx, h)
	return err
}

func (s *Store) HistoryByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]model.SearchHistory, error) {
	cursor, err := s.history().Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.M{"searchedAt": -1}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.SearchHistory
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) ClearHistory(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.history().DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

func (s *Store) CountSearches(ctx context.Context) (int64, error) {
	return s.history().CountDocuments(ctx, bson.M{})
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	return s.users().CountDocuments(ctx, bson.M{})
}

// --- radar keywords ---

func (s *Store) AddRadarKeyword(ctx context.Context, keyword string) error {
	kw := model.RadarKeyword{Keyword: keyword, Active: true, CreatedAt: time.Now()}
	_, err := s.radar().UpdateOne(ctx,
		bson.M{"keyword": keyword},
		bson.M{"$setOnInsert": kw},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *Store) RemoveRadarKeyword(ctx context.Context, keyword string) error {
	_, err := s.radar().DeleteOne(ctx, bson.M{"keyword": keyword})
	return err
}

func (s *Store) ListRadarKeywords(ctx context.Context) ([]model.RadarKeyword, error) {
	cursor, err := s.radar().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var keywords []model.RadarKeyword
	if err := cursor.All(ctx, &keywords); err != nil {
		return nil, err
	}
	return keywords, nil
}

func (s *Store) ActiveRadarKeywords(ctx context.Context) ([]model.RadarKeyword, error) {
	cursor, err := s.radar().Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var keywords []model.RadarKeyword
	if err := cursor.All(ctx, &keywords); err != nil {
		return nil, err
	}
	return keywords, nil
}

// --- spy accounts ---

func (s *Store) AddSpyAccount(ctx context.Context, username string) error {
	acc := model.SpyAccount{Username: username, AddedAt: time.Now()}
	_, err := s.spy().UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$setOnInsert": acc},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *Store) RemoveSpyAccount(ctx context.Context, username string) error {
	_, err := s.spy().DeleteOne(ctx, bson.M{"username": username})
	return err
}

func (s *Store) ListSpyAccounts(ctx context.Context) ([]model.SpyAccount, error) {
	cursor, err := s.spy().Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"addedAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []model.SpyAccount
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// --- anomalous videos ---

// VideoSeen reports whether a record with the same platform identity is
// already stored.
func (s *Store) VideoSeen(ctx context.Context, platform, platformID string) (bool, error) {
	err := s.videos().FindOne(ctx, bson.M{"platform": platform, "platformId": platformID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) SaveVideo(ctx context.Context, video model.Video) error {
	video.DiscoveredAt = time.Now()
	_, err := s.videos().UpdateOne(ctx,
		bson.M{"platform": video.Platform, "platformId": video.PlatformID},
		bson.M{"$setOnInsert": video},
		options.Update().SetUpsert(true),
	)
	return err
}
