package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"mime"
	"os"
	"path/filepath"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"files-manager/internal/dto"
	"files-manager/internal/models"
)

var (
	ErrMissingName     = errors.New("Missing name")
	ErrMissingType     = errors.New("Missing type")
	ErrMissingData     = errors.New("Missing data")
	ErrParentNotFound  = errors.New("Parent not found")
	ErrParentNotFolder = errors.New("Parent is not a folder")
	ErrNotFound        = errors.New("Not found")
	ErrFolderNoContent = errors.New("A folder doesn't have content")
)

// PageSize is the fixed number of items per listing page.
const PageSize = 20

type FileStore interface {
	InsertFile(ctx context.Context, file *models.File) (primitive.ObjectID, error)
	FileByID(ctx context.Context, id primitive.ObjectID) (*models.File, error)
	FileByIDAndOwner(ctx context.Context, id, owner primitive.ObjectID) (*models.File, error)
	ListFiles(ctx context.Context, owner primitive.ObjectID, parentID string, skip, limit int64) ([]models.File, error)
	SetFilePublic(ctx context.Context, id primitive.ObjectID, public bool) error
}

type BlobStore interface {
	Save(data []byte) (string, error)
	Read(path string) ([]byte, error)
}

type FileService struct {
	files FileStore
	blobs BlobStore
}

func NewFileService(files FileStore, blobs BlobStore) *FileService {
	return &FileService{files: files, blobs: blobs}
}

// Create validates a file-creation request and persists the node. For
// non-folders the blob is written to disk before the metadata record is
// inserted, so a failed write never leaves a record pointing at nothing.
func (s *FileService) Create(ctx context.Context, owner primitive.ObjectID, req *dto.CreateFileRequest) (*models.File, error) {
	if req.Name == "" {
		return nil, ErrMissingName
	}
	if !models.ValidType(req.Type) {
		return nil, ErrMissingType
	}
	if req.Type != models.TypeFolder && req.Data == "" {
		return nil, ErrMissingData
	}

	parentID := req.ParentID
	if parentID == "" {
		parentID = models.RootParentID
	}
	if parentID != models.RootParentID {
		if err := s.checkParent(ctx, parentID); err != nil {
			return nil, err
		}
	}

	file := &models.File{
		UserID:   owner,
		Name:     req.Name,
		Type:     req.Type,
		IsPublic: req.IsPublic,
		ParentID: parentID,
	}

	if req.Type != models.TypeFolder {
		data, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return nil, ErrMissingData
		}
		path, err := s.blobs.Save(data)
		if err != nil {
			return nil, fmt.Errorf("failed to write blob: %w", err)
		}
		file.LocalPath = path
	}

	id, err := s.files.InsertFile(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to insert file: %w", err)
	}
	file.ID = id

	return file, nil
}

func (s *FileService) checkParent(ctx context.Context, parentID string) error {
	id, err := primitive.ObjectIDFromHex(parentID)
	if err != nil {
		return ErrParentNotFound
	}

	parent, err := s.files.FileByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrParentNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up parent: %w", err)
	}
	if parent.Type != models.TypeFolder {
		return ErrParentNotFolder
	}
	return nil
}

// Get returns a file's metadata, scoped to its owner. Files of other users
// are indistinguishable from missing ones.
func (s *FileService) Get(ctx context.Context, owner primitive.ObjectID, fileID string) (*models.File, error) {
	id, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, ErrNotFound
	}

	file, err := s.files.FileByIDAndOwner(ctx, id, owner)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return file, nil
}

// List returns one page of the caller's files under a parent. An empty
// parentID means the root level.
func (s *FileService) List(ctx context.Context, owner primitive.ObjectID, parentID string, page int64) ([]models.File, error) {
	if parentID == "" {
		parentID = models.RootParentID
	}
	// keep page*PageSize inside int64 so the skip never goes negative
	if page < 0 {
		page = 0
	} else if page > math.MaxInt64/PageSize {
		page = math.MaxInt64 / PageSize
	}

	files, err := s.files.ListFiles(ctx, owner, parentID, page*PageSize, PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return files, nil
}

// SetPublic flips a file's visibility. Setting the current value again is a
// no-op that still returns the record.
func (s *FileService) SetPublic(ctx context.Context, owner primitive.ObjectID, fileID string, public bool) (*models.File, error) {
	file, err := s.Get(ctx, owner, fileID)
	if err != nil {
		return nil, err
	}

	if err := s.files.SetFilePublic(ctx, file.ID, public); err != nil {
		return nil, fmt.Errorf("failed to update visibility: %w", err)
	}
	file.IsPublic = public

	return file, nil
}

// Content returns a file's raw bytes and content type. requester is nil for
// anonymous callers. Private files of other users report ErrNotFound rather
// than ErrUnauthorized so their ids are not observable.
func (s *FileService) Content(ctx context.Context, requester *primitive.ObjectID, fileID string) ([]byte, string, error) {
	id, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, "", ErrNotFound
	}

	file, err := s.files.FileByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get file: %w", err)
	}

	if !file.IsPublic {
		if requester == nil || *requester != file.UserID {
			return nil, "", ErrNotFound
		}
	}

	if file.Type == models.TypeFolder {
		return nil, "", ErrFolderNoContent
	}

	data, err := s.blobs.Read(file.LocalPath)
	if os.IsNotExist(err) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read blob: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(file.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return data, contentType, nil
}
