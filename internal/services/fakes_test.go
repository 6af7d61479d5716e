package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"files-manager/internal/cache"
	"files-manager/internal/models"
)

// In-memory stand-ins for the Mongo and Redis handles. They return the same
// sentinel errors the real stores do.

type fakeUserStore struct {
	users []models.User
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	stored := *user
	stored.ID = primitive.NewObjectID()
	f.users = append(f.users, stored)
	return stored.ID, nil
}

func (f *fakeUserStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserStore) UserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type fakeSessionStore struct {
	sessions map[string]string
	ttls     map[string]time.Duration
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: make(map[string]string),
		ttls:     make(map[string]time.Duration),
	}
}

func (f *fakeSessionStore) SaveSession(_ context.Context, token, userID string, ttl time.Duration) error {
	f.sessions[token] = userID
	f.ttls[token] = ttl
	return nil
}

func (f *fakeSessionStore) UserIDByToken(_ context.Context, token string) (string, error) {
	userID, ok := f.sessions[token]
	if !ok {
		return "", cache.ErrSessionNotFound
	}
	return userID, nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

type fakeFileStore struct {
	files []models.File
}

func (f *fakeFileStore) InsertFile(_ context.Context, file *models.File) (primitive.ObjectID, error) {
	stored := *file
	stored.ID = primitive.NewObjectID()
	f.files = append(f.files, stored)
	return stored.ID, nil
}

func (f *fakeFileStore) FileByID(_ context.Context, id primitive.ObjectID) (*models.File, error) {
	for i := range f.files {
		if f.files[i].ID == id {
			file := f.files[i]
			return &file, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeFileStore) FileByIDAndOwner(_ context.Context, id, owner primitive.ObjectID) (*models.File, error) {
	for i := range f.files {
		if f.files[i].ID == id && f.files[i].UserID == owner {
			file := f.files[i]
			return &file, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeFileStore) ListFiles(_ context.Context, owner primitive.ObjectID, parentID string, skip, limit int64) ([]models.File, error) {
	matched := []models.File{}
	for i := range f.files {
		if f.files[i].UserID == owner && f.files[i].ParentID == parentID {
			matched = append(matched, f.files[i])
		}
	}
	if skip >= int64(len(matched)) {
		return []models.File{}, nil
	}
	matched = matched[skip:]
	if limit < int64(len(matched)) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeFileStore) SetFilePublic(_ context.Context, id primitive.ObjectID, public bool) error {
	for i := range f.files {
		if f.files[i].ID == id {
			f.files[i].IsPublic = public
			return nil
		}
	}
	return mongo.ErrNoDocuments
}
