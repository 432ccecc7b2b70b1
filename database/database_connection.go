package database

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var (
	dbClient *mongo.Client
	connOnce sync.Once
)

// Connect dials Mongo once; later calls return the same client.
func Connect(uri string) *mongo.Client {
	connOnce.Do(func() {
		serverAPI := options.ServerAPI(options.ServerAPIVersion1)
		opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
		client, err := mongo.Connect(opts)
		if err != nil {
			panic(err)
		}
		if err := client.Ping(context.TODO(), readpref.Primary()); err != nil {
			panic(err)
		}
		dbClient = client
	})
	return dbClient
}

func OpenCollection(databaseName, collectionName string) *mongo.Collection {
	return dbClient.Database(databaseName).Collection(collectionName)
}
