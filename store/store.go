package store

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trends-service/auth"
	"trends-service/config"
	"trends-service/model"
)

var ErrInsufficientTokens = errors.New("insufficient tokens")

// Store wraps the MongoDB collections backing users, favorites, search
// history, radar keywords, spy accounts and anomalous videos.
type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) users() *mongo.Collection     { return s.db.Collection("users") }
func (s *Store) favorites() *mongo.Collection { return s.db.Collection("favorites") }
func (s *Store) history() *mongo.Collection   { return s.db.Collection("search_history") }
func (s *Store) radar() *mongo.Collection     { return s.db.Collection("radar_keywords") }
func (s *Store) spy() *mongo.Collection       { return s.db.Collection("spy_accounts") }
func (s *Store) videos() *mongo.Collection    { return s.db.Collection("videos") }

// EnsureIndexes creates the indexes reads depend on. Failures are logged,
// not fatal.
func (s *Store) EnsureIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := map[*mongo.Collection][]mongo.IndexModel{
		s.users(): {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		s.favorites(): {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "videoUrl", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		s.history(): {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "searchedAt", Value: -1}}},
		},
		s.radar(): {
			{Keys: bson.D{{Key: "keyword", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		s.spy(): {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		s.videos(): {
			{Keys: bson.D{{Key: "platform", Value: 1}, {Key: "platformId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for coll, models := range indexes {
		for _, m := range models {
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				log.Printf("[WARN] Failed to create index on %s: %v", coll.Name(), err)
			}
		}
	}
}

// --- users ---

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	user.CreatedAt = time.Now()
	res, err := s.users().InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UserByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	var user model.User
	err := s.users().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	cursor, err := s.users().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []model.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeductTokens atomically charges a user for an action. Admins are exempt.
// Returns ErrInsufficientTokens when the balance cannot cover the amount.
func (s *Store) DeductTokens(ctx context.Context, user *model.User, amount int) error {
	if user.IsAdmin() {
		return nil
	}

	res, err := s.users().UpdateOne(ctx,
		bson.M{"_id": user.ID, "tokens": bson.M{"$gte": amount}},
		bson.M{"$inc": bson.M{"tokens": -amount}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrInsufficientTokens
	}
	user.Tokens -= amount
	return nil
}

func (s *Store) AddTokens(ctx context.Context, userID primitive.ObjectID, amount int) error {
	_, err := s.users().UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$inc": bson.M{"tokens": amount}})
	return err
}

// EnsureAdmin seeds the admin account when none exists.
func (s *Store) EnsureAdmin(ctx context.Context, cfg *config.Config) error {
	existing, err := s.UserByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	admin := &model.User{
		Email:        cfg.AdminEmail,
		Name:         "Admin",
		PasswordHash: auth.HashPassword(cfg.AdminPassword),
		Role:         model.RoleAdmin,
		Tokens:       999999,
	}
	if err := s.CreateUser(ctx, admin); err != nil {
		return err
	}
	log.Printf("[INFO] Seeded admin user %s", cfg.AdminEmail)
	return nil
}
