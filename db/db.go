package db

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names mirrored by every sync session. The set is fixed; it is not
// discovered from the remote store.
const (
	ColConfig   = "config"
	ColServices = "services"
	ColProducts = "products"
	ColOffers   = "offers"
	ColTeam     = "team"
	ColGallery  = "gallery"
	ColPages    = "pages"
	ColReviews  = "reviews"
	ColUsers    = "users"
	ColBookings = "bookings"
	ColOrders   = "orders"
)

// All lists every known collection name.
var All = []string{
	ColConfig, ColServices, ColProducts, ColOffers, ColTeam, ColGallery,
	ColPages, ColReviews, ColUsers, ColBookings, ColOrders,
}

var (
	Client   *mongo.Client
	database *mongo.Database
)

// Connect dials MongoDB using MONGO_URI/MONGO_DB (with local defaults) and
// keeps the handle for Collection lookups.
func Connect(ctx context.Context) error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	name := os.Getenv("MONGO_DB")
	if name == "" {
		name = "lotoria"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	Client = client
	database = client.Database(name)

	// mobile is the login key; concurrent signups race on it, so uniqueness
	// is enforced by the store rather than by a mirror lookup
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "mobile", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}
	if _, err := database.Collection(ColUsers).Indexes().CreateOne(ctx, idx); err != nil {
		return err
	}

	log.Println("connected to MongoDB:", name)
	return nil
}

// Collection returns the named collection from the active database.
func Collection(name string) *mongo.Collection {
	return database.Collection(name)
}

// Disconnect closes the client connection.
func Disconnect(ctx context.Context) {
	if Client != nil {
		if err := Client.Disconnect(ctx); err != nil {
			log.Println("mongo disconnect error:", err)
		}
	}
}
