package template

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/teamdesk/teamdesk/engine/core"
	"github.com/teamdesk/teamdesk/engine/infra/mongostore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository persists templates in the document store. Every
// write runs through mongostore.WithSession so it participates in the
// caller's transaction when one is open.
type MongoRepository struct{}

func NewMongoRepository() *MongoRepository {
	return &MongoRepository{}
}

func (r *MongoRepository) collection(opts *core.Options) *mongo.Collection {
	return opts.Database.Collection(collectionName)
}

// Create inserts the template and returns the re-fetched document.
func (r *MongoRepository) Create(ctx context.Context, data *Input, opts *core.Options) (*Template, error) {
	now := time.Now().UTC()
	userID := opts.CurrentUserID()
	tags := data.Tags
	if tags == nil {
		tags = []string{}
	}
	doc := &Template{
		ID:         primitive.NewObjectID(),
		Name:       data.Name,
		Content:    data.Content,
		Tags:       tags,
		CreatedBy:  userID,
		UpdatedBy:  userID,
		ImportHash: data.ImportHash,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := mongostore.WithSession(ctx, opts.Session, func(ctx context.Context) error {
		_, err := r.collection(opts).InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("inserting template: %w", err)
	}
	return r.FindByID(ctx, doc.ID.Hex(), opts)
}

// Update patches the template and re-fetches it.
func (r *MongoRepository) Update(ctx context.Context, id string, data *Input, opts *core.Options) (*Template, error) {
	if _, err := r.FindByID(ctx, id, opts); err != nil {
		return nil, err
	}
	oid := mongostore.SafeObjectID(id)
	tags := data.Tags
	if tags == nil {
		tags = []string{}
	}
	patch := bson.M{"$set": bson.M{
		"name":      data.Name,
		"content":   data.Content,
		"tags":      tags,
		"updatedBy": opts.CurrentUserID(),
		"updatedAt": time.Now().UTC(),
	}}
	err := mongostore.WithSession(ctx, opts.Session, func(ctx context.Context) error {
		_, err := r.collection(opts).UpdateOne(ctx, bson.M{"_id": oid}, patch)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating template: %w", err)
	}
	return r.FindByID(ctx, id, opts)
}

// Destroy deletes one template.
func (r *MongoRepository) Destroy(ctx context.Context, id string, opts *core.Options) error {
	if _, err := r.FindByID(ctx, id, opts); err != nil {
		return err
	}
	oid := mongostore.SafeObjectID(id)
	err := mongostore.WithSession(ctx, opts.Session, func(ctx context.Context) error {
		_, err := r.collection(opts).DeleteOne(ctx, bson.M{"_id": oid})
		return err
	})
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	return nil
}

// GrantAccess records templateID on the hasAccess list of a template
// created by the current user. Missing match is not an error; the
// grant is simply a no-op.
func (r *MongoRepository) GrantAccess(ctx context.Context, templateID string, opts *core.Options) error {
	err := mongostore.WithSession(ctx, opts.Session, func(ctx context.Context) error {
		res := r.collection(opts).FindOneAndUpdate(ctx,
			bson.M{"createdBy": opts.CurrentUserID()},
			bson.M{"$addToSet": bson.M{"hasAccess": templateID}},
			options.FindOneAndUpdate().SetReturnDocument(options.After))
		if err := res.Err(); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("granting template access: %w", err)
	}
	return nil
}

// FindByID returns the template or a localized not-found error.
func (r *MongoRepository) FindByID(ctx context.Context, id string, opts *core.Options) (*Template, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.NewNotFoundError(opts.Locale())
	}
	var record Template
	err = mongostore.WithSession(ctx, opts.Session, func(ctx context.Context) error {
		return r.collection(opts).FindOne(ctx, bson.M{"_id": oid}).Decode(&record)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, core.NewNotFoundError(opts.Locale())
	}
	if err != nil {
		return nil, fmt.Errorf("finding template: %w", err)
	}
	return &record, nil
}

// FilterIDs returns the subset of ids that exist. Empty input returns
// empty output without touching the store.
func (r *MongoRepository) FilterIDs(ctx context.Context, ids []string, opts *core.Options) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	var records []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := mongostore.WithSession(ctx, opts.Session, func(ctx context.Context) error {
		cursor, err := r.collection(opts).Find(ctx, bson.M{"_id": bson.M{"$in": oids}},
			options.Find().SetProjection(bson.M{"_id": 1}))
		if err != nil {
			return err
		}
		return cursor.All(ctx, &records)
	})
	if err != nil {
		return nil, fmt.Errorf("filtering template ids: %w", err)
	}
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ID.Hex())
	}
	return out, nil
}

// Count returns the number of templates matching the filter.
func (r *MongoRepository) Count(ctx context.Context, filter bson.M, opts *core.Options) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	var count int64
	err := mongostore.WithSession(ctx, opts.Session, func(ctx context.Context) error {
		var err error
		count, err = r.collection(opts).CountDocuments(ctx, filter)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("counting templates: %w", err)
	}
	return count, nil
}

// FindAndCountAll lists templates with filtering, pagination and
// sorting. CountOnly skips fetching rows entirely.
func (r *MongoRepository) FindAndCountAll(ctx context.Context, q *ListQuery, opts *core.Options) (*ListResult, error) {
	criteria := listCriteria(&q.Filter)
	coll := r.collection(opts)
	count, err := coll.CountDocuments(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("counting templates: %w", err)
	}
	if q.CountOnly {
		return &ListResult{Count: count}, nil
	}
	findOpts := options.Find().
		SetSkip(q.Offset).
		SetLimit(q.Limit).
		SetSort(mongostore.Sort(q.Order()))
	cursor, err := coll.Find(ctx, criteria, findOpts)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	rows := []Template{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decoding templates: %w", err)
	}
	return &ListResult{Rows: rows, Count: count}, nil
}

// FindAllAutocomplete returns {id, label} pairs matching search by id
// equality or name substring. An empty search returns up to limit
// records unfiltered.
func (r *MongoRepository) FindAllAutocomplete(ctx context.Context, search string, limit int64, opts *core.Options) ([]core.AutocompleteItem, error) {
	criteria := bson.M{}
	if search != "" {
		criteria = bson.M{"$or": bson.A{
			bson.M{"_id": mongostore.SafeObjectID(search)},
			bson.M{"name": mongostore.Regex(search)},
		}}
	}
	findOpts := options.Find().
		SetLimit(limit).
		SetSort(mongostore.Sort("name_ASC"))
	cursor, err := r.collection(opts).Find(ctx, criteria, findOpts)
	if err != nil {
		return nil, fmt.Errorf("autocompleting templates: %w", err)
	}
	var rows []Template
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decoding templates: %w", err)
	}
	items := make([]core.AutocompleteItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, core.AutocompleteItem{ID: row.ID.Hex(), Label: row.Name})
	}
	return items, nil
}

// listCriteria translates the filter into store criteria.
func listCriteria(f *Filter) bson.M {
	var and bson.A
	if f.ID != "" {
		and = append(and, bson.M{"_id": mongostore.SafeObjectID(f.ID)})
	}
	if f.Name != "" {
		and = append(and, bson.M{"name": mongostore.Regex(f.Name)})
	}
	if f.CreatedAtStart != nil {
		and = append(and, bson.M{"createdAt": bson.M{"$gte": *f.CreatedAtStart}})
	}
	if f.CreatedAtEnd != nil {
		and = append(and, bson.M{"createdAt": bson.M{"$lte": *f.CreatedAtEnd}})
	}
	if len(and) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": and}
}
