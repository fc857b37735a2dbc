package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Role         string             `bson:"role" json:"role"`
	Tokens       int                `bson:"tokens" json:"tokens"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type Favorite struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"userId" json:"-"`
	VideoURL string             `bson:"videoUrl" json:"video_url"`
	Video    Video              `bson:"video" json:"video"`
	SavedAt  time.Time          `bson:"savedAt" json:"saved_at"`
}

type SearchHistory struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"userId" json:"-"`
	Query             string             `bson:"query" json:"query"`
	ResultsCount      int                `bson:"resultsCount" json:"results_count"`
	PreviewThumbnails []string           `bson:"previewThumbnails" json:"preview_thumbnails"`
	SearchedAt        time.Time          `bson:"searchedAt" json:"searched_at"`
}

type RadarKeyword struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Keyword   string             `bson:"keyword" json:"keyword"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

type SpyAccount struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	AddedAt  time.Time          `bson:"addedAt" json:"added_at"`
}
