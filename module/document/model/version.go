package model

import "time"

const VersionTableName = "document_version"

// Snapshot types. Saves over the realtime channel are auto; the initial
// version written at document creation is manual.
const (
	SnapshotAuto   = "auto"
	SnapshotManual = "manual"
)

// DocumentVersion is an immutable content capture. VersionNumber is strictly
// increasing per document and never reused, even after retention trimming.
type DocumentVersion struct {
	ID            string    `bson:"_id" json:"id"`
	DocumentID    string    `bson:"document" json:"documentId"`
	Content       string    `bson:"content" json:"content"`
	CreatedBy     string    `bson:"created_by" json:"createdBy"`
	VersionNumber int64     `bson:"version_number" json:"versionNumber"`
	SnapshotType  string    `bson:"snapshot_type" json:"snapshotType"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}

func (DocumentVersion) GetTableName() string {
	return VersionTableName
}
