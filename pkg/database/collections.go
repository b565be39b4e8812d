package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const AnnouncementsCollection = "announcements"

func createIndexes() {
	createAnnouncementsIndexes()
}

func createAnnouncementsIndexes() {
	announcementsCollection := GetCollection(AnnouncementsCollection)
	announcementsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "origin", Value: 1}, {Key: "destination", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "outcome", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := announcementsCollection.Indexes().CreateMany(context.Background(), announcementsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
