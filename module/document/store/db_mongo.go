package store

import (
	"context"
	"time"

	"CollabSphere/module/document/model"
	"CollabSphere/tools/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoDocumentDB struct {
	coll *mongo.Collection
}

func NewMongoDocumentDB(db *mongo.Database) DocumentDB {
	return &mongoDocumentDB{coll: db.Collection(model.DocumentTableName)}
}

func (s *mongoDocumentDB) Insert(ctx context.Context, doc *model.Document) error {
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return errs.ErrPersistence.WrapMsg("insert document", "id", doc.ID)
	}
	return nil
}

func (s *mongoDocumentDB) Find(ctx context.Context, documentID string) (*model.Document, error) {
	var doc model.Document
	err := s.coll.FindOne(ctx, bson.M{"_id": documentID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errs.ErrRecordNotFound.WrapMsg("document", "id", documentID)
	}
	if err != nil {
		return nil, errs.ErrPersistence.WrapMsg("find document", "id", documentID, "err", err)
	}
	return &doc, nil
}

func (s *mongoDocumentDB) ListByOwner(ctx context.Context, owner string) ([]*model.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, errs.ErrPersistence.WrapMsg("list documents", "owner", owner, "err", err)
	}
	defer cur.Close(ctx)

	var docs []*model.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errs.ErrPersistence.WrapMsg("decode documents", "owner", owner, "err", err)
	}
	return docs, nil
}

func (s *mongoDocumentDB) Write(ctx context.Context, documentID, content, editedBy string) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": documentID}, bson.M{"$set": bson.M{
		"content":        content,
		"last_edited_by": editedBy,
		"updated_at":     time.Now(),
	}})
	if err != nil {
		return errs.ErrPersistence.WrapMsg("write document", "id", documentID, "err", err)
	}
	if res.MatchedCount == 0 {
		return errs.ErrRecordNotFound.WrapMsg("document", "id", documentID)
	}
	return nil
}

func (s *mongoDocumentDB) Update(ctx context.Context, documentID string, title, content *string, editedBy string) error {
	set := bson.M{
		"last_edited_by": editedBy,
		"updated_at":     time.Now(),
	}
	if title != nil {
		set["title"] = *title
	}
	if content != nil {
		set["content"] = *content
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": documentID}, bson.M{"$set": set})
	if err != nil {
		return errs.ErrPersistence.WrapMsg("update document", "id", documentID, "err", err)
	}
	if res.MatchedCount == 0 {
		return errs.ErrRecordNotFound.WrapMsg("document", "id", documentID)
	}
	return nil
}

func (s *mongoDocumentDB) Delete(ctx context.Context, documentID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": documentID})
	if err != nil {
		return errs.ErrPersistence.WrapMsg("delete document", "id", documentID, "err", err)
	}
	if res.DeletedCount == 0 {
		return errs.ErrRecordNotFound.WrapMsg("document", "id", documentID)
	}
	return nil
}

type mongoVersionDB struct {
	coll *mongo.Collection
}

func NewMongoVersionDB(db *mongo.Database) VersionDB {
	return &mongoVersionDB{coll: db.Collection(model.VersionTableName)}
}

func (s *mongoVersionDB) Insert(ctx context.Context, v *model.DocumentVersion) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	if _, err := s.coll.InsertOne(ctx, v); err != nil {
		return errs.ErrPersistence.WrapMsg("insert version", "document", v.DocumentID, "err", err)
	}
	return nil
}

func (s *mongoVersionDB) Find(ctx context.Context, versionID string) (*model.DocumentVersion, error) {
	var v model.DocumentVersion
	err := s.coll.FindOne(ctx, bson.M{"_id": versionID}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, errs.ErrRecordNotFound.WrapMsg("version", "id", versionID)
	}
	if err != nil {
		return nil, errs.ErrPersistence.WrapMsg("find version", "id", versionID, "err", err)
	}
	return &v, nil
}

func (s *mongoVersionDB) MaxVersionNumber(ctx context.Context, documentID string) (int64, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "version_number", Value: -1}}).
		SetProjection(bson.M{"version_number": 1})
	var v model.DocumentVersion
	err := s.coll.FindOne(ctx, bson.M{"document": documentID}, opts).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, errs.ErrPersistence.WrapMsg("max version number", "document", documentID, "err", err)
	}
	return v.VersionNumber, nil
}

func (s *mongoVersionDB) List(ctx context.Context, documentID string, limit int64) ([]*model.DocumentVersion, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "version_number", Value: -1},
	})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.coll.Find(ctx, bson.M{"document": documentID}, opts)
	if err != nil {
		return nil, errs.ErrPersistence.WrapMsg("list versions", "document", documentID, "err", err)
	}
	defer cur.Close(ctx)

	var out []*model.DocumentVersion
	if err := cur.All(ctx, &out); err != nil {
		return nil, errs.ErrPersistence.WrapMsg("decode versions", "document", documentID, "err", err)
	}
	return out, nil
}

func (s *mongoVersionDB) DeleteBeyond(ctx context.Context, documentID string, keep int64) (int64, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "created_at", Value: -1},
			{Key: "version_number", Value: -1},
		}).
		SetSkip(keep).
		SetProjection(bson.M{"_id": 1})
	cur, err := s.coll.Find(ctx, bson.M{"document": documentID}, opts)
	if err != nil {
		return 0, errs.ErrPersistence.WrapMsg("find stale versions", "document", documentID, "err", err)
	}
	defer cur.Close(ctx)

	var stale []model.DocumentVersion
	if err := cur.All(ctx, &stale); err != nil {
		return 0, errs.ErrPersistence.WrapMsg("decode stale versions", "document", documentID, "err", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}
	ids := make([]string, 0, len(stale))
	for _, v := range stale {
		ids = append(ids, v.ID)
	}
	res, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, errs.ErrPersistence.WrapMsg("delete stale versions", "document", documentID, "err", err)
	}
	return res.DeletedCount, nil
}

func (s *mongoVersionDB) DeleteAll(ctx context.Context, documentID string) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"document": documentID}); err != nil {
		return errs.ErrPersistence.WrapMsg("delete all versions", "document", documentID, "err", err)
	}
	return nil
}
