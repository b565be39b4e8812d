package database

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/expolly/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// MongoGlobalInstance stays nil when no connection string is configured.
var MongoGlobalInstance *MongoInstance

const defaultMongoDatabase = "expolly"

func Connect() error {
	env := util.GetEnvironmentVariables()

	connectionString := env["EXPOLLY_MONGODB_CONNECTION"]
	if connectionString == "" {
		log.Info().Msg("Skipping MongoDB setup")
		return nil
	}

	dbName := util.GetEnvironmentVariable("EXPOLLY_MONGODB_DATABASE", defaultMongoDatabase)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	createIndexes()

	log.Info().Str("database", dbName).Msg("MongoDB client setup")

	return nil
}

func Connected() bool {
	return MongoGlobalInstance != nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}
