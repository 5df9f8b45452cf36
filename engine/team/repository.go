package team

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

// MongoRepository persists teams in the document store. Every write
// runs through mongostore.WithSession so it participates in the
// caller's transaction when one is open.
type MongoRepository struct{}

func NewMongoRepository() *MongoRepository {
	return &MongoRepository{}
}

func (r *MongoRepository) collection(opts *core.Options) *mongo.Collection {
	return opts.Database.Collection(collectionName)
}

// Create inserts the team and returns the re-fetched document: the
// write payload omits computed fields, so the read projection is the
// source of truth for what callers get back.
func (r *MongoRepository) Create(ctx context.Context, data *Input, opts *core.Options) (*Team, error) {
	now := time.Now().UTC()
	userID := opts.CurrentUserID()
	doc := &Team{
		ID:         primitive.NewObjectID(),
		Name:       data.Name,
		TeamAdmin:  data.TeamAdmin,
		Owner:      data.Owner,
		Members:    buildMembers(data.Members),
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
		return nil, fmt.Errorf("inserting team: %w", err)
	}
	return r.FindByID(ctx, doc.ID.Hex(), opts)
}

// Update patches the team and re-fetches it. Members are replaced
// wholesale by the payload.
func (r *MongoRepository) Update(ctx context.Context, id string, data *Input, opts *core.Options) (*Team, error) {
	if _, err := r.FindByID(ctx, id, opts); err != nil {
		return nil, err
	}
	oid := mongostore.SafeObjectID(id)
	patch := bson.M{"$set": bson.M{
		"name":      data.Name,
		"teamAdmin": data.TeamAdmin,
		"owner":     data.Owner,
		"members":   buildMembers(data.Members),
		"updatedBy": opts.CurrentUserID(),
		"updatedAt": time.Now().UTC(),
	}}
	err := mongostore.WithSession(ctx, opts.Session, func(ctx context.Context) error {
		_, err := r.collection(opts).UpdateOne(ctx, bson.M{"_id": oid}, patch)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating team: %w", err)
	}
	return r.FindByID(ctx, id, opts)
}

// Destroy deletes one team. It never cascades; callers needing a bulk
// delete loop over ids inside one transaction.
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
		return fmt.Errorf("deleting team: %w", err)
	}
	return nil
}

// FindByID returns the team or a localized not-found error.
func (r *MongoRepository) FindByID(ctx context.Context, id string, opts *core.Options) (*Team, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, core.NewNotFoundError(opts.Locale())
	}
	var record Team
	err = mongostore.WithSession(ctx, opts.Session, func(ctx context.Context) error {
		return r.collection(opts).FindOne(ctx, bson.M{"_id": oid}).Decode(&record)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, core.NewNotFoundError(opts.Locale())
	}
	if err != nil {
		return nil, fmt.Errorf("finding team: %w", err)
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
		return nil, fmt.Errorf("filtering team ids: %w", err)
	}
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ID.Hex())
	}
	return out, nil
}

// Count returns the number of teams matching the filter.
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
		return 0, fmt.Errorf("counting teams: %w", err)
	}
	return count, nil
}

// FindAndCountAll lists teams with filtering, pagination and sorting.
// CountOnly skips fetching rows entirely.
func (r *MongoRepository) FindAndCountAll(ctx context.Context, q *ListQuery, opts *core.Options) (*ListResult, error) {
	criteria := listCriteria(&q.Filter)
	coll := r.collection(opts)
	count, err := coll.CountDocuments(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("counting teams: %w", err)
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
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	rows := []Team{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decoding teams: %w", err)
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
		return nil, fmt.Errorf("autocompleting teams: %w", err)
	}
	var rows []Team
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decoding teams: %w", err)
	}
	items := make([]core.AutocompleteItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, core.AutocompleteItem{ID: row.ID.Hex(), Label: row.Name})
	}
	return items, nil
}

// AddMembers unions memberIDs into the team. Ids already present are
// skipped; new entries start as pending.
func (r *MongoRepository) AddMembers(ctx context.Context, teamID string, memberIDs []string, opts *core.Options) (*Team, error) {
	record, err := r.FindByID(ctx, teamID, opts)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(record.Members))
	for _, m := range record.Members {
		existing[m.Member] = true
	}
	var added []Member
	for _, id := range memberIDs {
		if id == "" || existing[id] {
			continue
		}
		existing[id] = true
		added = append(added, Member{
			ID:     primitive.NewObjectID(),
			Member: id,
			Status: StatusPending,
		})
	}
	if len(added) > 0 {
		err = mongostore.WithSession(ctx, opts.Session, func(ctx context.Context) error {
			_, err := r.collection(opts).UpdateOne(ctx,
				bson.M{"_id": record.ID},
				bson.M{
					"$push": bson.M{"members": bson.M{"$each": added}},
					"$set":  bson.M{"updatedAt": time.Now().UTC()},
				})
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("adding team members: %w", err)
		}
	}
	return r.FindByID(ctx, teamID, opts)
}

// RemoveMembers deletes every matching member entry regardless of
// status.
func (r *MongoRepository) RemoveMembers(ctx context.Context, teamID string, memberIDs []string, opts *core.Options) (*Team, error) {
	record, err := r.FindByID(ctx, teamID, opts)
	if err != nil {
		return nil, err
	}
	err = mongostore.WithSession(ctx, opts.Session, func(ctx context.Context) error {
		_, err := r.collection(opts).UpdateOne(ctx,
			bson.M{"_id": record.ID},
			bson.M{
				"$pull": bson.M{"members": bson.M{"member": bson.M{"$in": memberIDs}}},
				"$set":  bson.M{"updatedAt": time.Now().UTC()},
			})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("removing team members: %w", err)
	}
	return r.FindByID(ctx, teamID, opts)
}

// UpdateInvitationStatus sets the status of one member entry. Any
// status may overwrite any other; there is no transition guard.
func (r *MongoRepository) UpdateInvitationStatus(ctx context.Context, teamID, memberID string, status MemberStatus, opts *core.Options) (*Team, error) {
	record, err := r.FindByID(ctx, teamID, opts)
	if err != nil {
		return nil, err
	}
	memberOID, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		return nil, core.NewNotFoundError(opts.Locale())
	}
	found := false
	for _, m := range record.Members {
		if m.ID == memberOID {
			found = true
			break
		}
	}
	if !found {
		return nil, core.NewNotFoundError(opts.Locale())
	}
	err = mongostore.WithSession(ctx, opts.Session, func(ctx context.Context) error {
		_, err := r.collection(opts).UpdateOne(ctx,
			bson.M{"_id": record.ID, "members._id": memberOID},
			bson.M{"$set": bson.M{
				"members.$.status": status,
				"updatedAt":        time.Now().UTC(),
			}})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating invitation status: %w", err)
	}
	return r.FindByID(ctx, teamID, opts)
}

// buildMembers normalizes payload members: defaulted status and a
// fresh subdocument id per entry.
func buildMembers(inputs []MemberInput) []Member {
	members := make([]Member, 0, len(inputs))
	for _, in := range inputs {
		status := in.Status
		if status == "" {
			status = StatusPending
		}
		members = append(members, Member{
			ID:        primitive.NewObjectID(),
			Member:    in.Member,
			JoinedOn:  in.JoinedOn,
			InvitedAt: in.InvitedAt,
			Status:    status,
		})
	}
	return members
}

// listCriteria translates the filter into store criteria. Text fields
// match case-insensitive escaped substrings; id fields that are not
// valid object ids match nothing.
func listCriteria(f *Filter) bson.M {
	var and bson.A
	if f.ID != "" {
		and = append(and, bson.M{"_id": mongostore.SafeObjectID(f.ID)})
	}
	if f.Name != "" {
		and = append(and, bson.M{"name": mongostore.Regex(f.Name)})
	}
	if f.TeamAdmin != "" {
		and = append(and, bson.M{"teamAdmin": f.TeamAdmin})
	}
	if f.Owner != "" {
		and = append(and, bson.M{"owner": f.Owner})
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
