package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"files-manager/internal/models"
)

// DB wraps the MongoDB client with typed access to the users and files
// collections. One handle is constructed at startup and injected into the
// services.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri string, name string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &DB{client: client, db: client.Database(name)}, nil
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

func (d *DB) IsAlive(ctx context.Context) bool {
	return d.client.Ping(ctx, nil) == nil
}

func (d *DB) users() *mongo.Collection {
	return d.db.Collection("users")
}

func (d *DB) files() *mongo.Collection {
	return d.db.Collection("files")
}

func (d *DB) NbUsers(ctx context.Context) (int64, error) {
	return d.users().CountDocuments(ctx, bson.M{})
}

func (d *DB) NbFiles(ctx context.Context) (int64, error) {
	return d.files().CountDocuments(ctx, bson.M{})
}

func (d *DB) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	result, err := d.users().InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert user: %w", err)
	}
	return insertedObjectID(result)
}

func (d *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := d.users().FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DB) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := d.users().FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DB) InsertFile(ctx context.Context, file *models.File) (primitive.ObjectID, error) {
	result, err := d.files().InsertOne(ctx, file)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert file: %w", err)
	}
	return insertedObjectID(result)
}

func insertedObjectID(result *mongo.InsertOneResult) (primitive.ObjectID, error) {
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id, nil
}

func (d *DB) FileByID(ctx context.Context, id primitive.ObjectID) (*models.File, error) {
	var file models.File
	if err := d.files().FindOne(ctx, bson.M{"_id": id}).Decode(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (d *DB) FileByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*models.File, error) {
	var file models.File
	filter := bson.M{"_id": id, "userId": owner}
	if err := d.files().FindOne(ctx, filter).Decode(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (d *DB) ListFiles(ctx context.Context, owner primitive.ObjectID, parentID string, skip, limit int64) ([]models.File, error) {
	filter := bson.M{"userId": owner, "parentId": parentID}
	opts := options.Find().SetSkip(skip).SetLimit(limit)

	cursor, err := d.files().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer cursor.Close(ctx)

	files := []models.File{}
	if err := cursor.All(ctx, &files); err != nil {
		return nil, fmt.Errorf("failed to decode files: %w", err)
	}
	return files, nil
}

func (d *DB) SetFilePublic(ctx context.Context, id primitive.ObjectID, public bool) error {
	update := bson.M{"$set": bson.M{"isPublic": public}}
	if _, err := d.files().UpdateByID(ctx, id, update); err != nil {
		return fmt.Errorf("failed to update file visibility: %w", err)
	}
	return nil
}
