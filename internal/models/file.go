package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FileType = string

const (
	TypeFolder FileType = "folder"
	TypeFile   FileType = "file"
	TypeImage  FileType = "image"
)

// RootParentID is the sentinel value meaning "no parent folder".
const RootParentID = "0"

type File struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	UserID   primitive.ObjectID `bson:"userId" json:"userId"`
	Name     string             `bson:"name" json:"name"`
	Type     FileType           `bson:"type" json:"type"`
	IsPublic bool               `bson:"isPublic" json:"isPublic"`

	// ParentID is either RootParentID or the hex id of a folder document.
	ParentID string `bson:"parentId" json:"parentId"`

	// LocalPath is where the blob lives on disk; folders have none.
	LocalPath string `bson:"localPath,omitempty" json:"-"`
}

// ValidType reports whether t is one of the known file kinds.
func ValidType(t string) bool {
	return t == TypeFolder || t == TypeFile || t == TypeImage
}
