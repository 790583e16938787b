package model

import "time"

const DocumentTableName = "document"

// Document is the authoritative current state of one collaborative document.
// The realtime save path and the REST update path both write it; last writer
// wins at whole-content granularity.
type Document struct {
	ID           string    `bson:"_id" json:"id"`
	Title        string    `bson:"title" json:"title"`
	Content      string    `bson:"content" json:"content"`
	Owner        string    `bson:"owner" json:"owner"`
	LastEditedBy string    `bson:"last_edited_by,omitempty" json:"lastEditedBy,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

func (Document) GetTableName() string {
	return DocumentTableName
}
