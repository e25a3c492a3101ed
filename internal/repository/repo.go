package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// excludeObjectID keeps the store-generated _id out of every read.
var excludeObjectID = bson.M{"_id": 0}

type Repo struct {
	notes *mongo.Collection
}

func New(notes *mongo.Collection) *Repo {
	return &Repo{notes: notes}
}

func findOneOpts() *options.FindOneOptions {
	return options.FindOne().SetProjection(excludeObjectID)
}

func findOpts() *options.FindOptions {
	return options.Find().SetProjection(excludeObjectID)
}
