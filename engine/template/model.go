// Package template implements the template resource: CRUD, import, and
// access grants keyed by the creating user.
package template

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntityName keys the localized unique-constraint messages.
const EntityName = "template"

const collectionName = "templates"

// Template is the stored document. HasAccess lists template ids the
// creator has been granted access to; see GrantAccess.
type Template struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Content    string             `bson:"content" json:"content"`
	Tags       []string           `bson:"tags" json:"tags"`
	HasAccess  []string           `bson:"hasAccess,omitempty" json:"hasAccess,omitempty"`
	CreatedBy  string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedBy  string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	ImportHash string             `bson:"importHash,omitempty" json:"importHash,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Input is the write payload for create, update and import.
type Input struct {
	Name    string   `json:"name" binding:"required"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	// ImportHash is attached by the import flow, never bound from the
	// request body directly.
	ImportHash string `json:"-"`
}

// Filter narrows list queries.
type Filter struct {
	ID             string     `form:"id"`
	Name           string     `form:"name"`
	CreatedAtStart *time.Time `form:"createdAtStart" time_format:"2006-01-02T15:04:05Z07:00"`
	CreatedAtEnd   *time.Time `form:"createdAtEnd" time_format:"2006-01-02T15:04:05Z07:00"`
}

// ListQuery bundles filter, pagination and sorting for
// FindAndCountAll.
type ListQuery struct {
	Filter    Filter
	Limit     int64  `form:"limit"`
	Offset    int64  `form:"offset"`
	OrderBy   string `form:"orderBy"`
	CountOnly bool   `form:"countOnly"`
}

// Order returns the sort spec, defaulting to newest first.
func (q *ListQuery) Order() string {
	if q == nil || q.OrderBy == "" {
		return "createdAt_DESC"
	}
	return q.OrderBy
}

// ListResult is the FindAndCountAll projection. A count-only query
// carries no rows and marshals without a rows field.
type ListResult struct {
	Rows  []Template
	Count int64
}

func (r ListResult) MarshalJSON() ([]byte, error) {
	if r.Rows == nil {
		return json.Marshal(struct {
			Count int64 `json:"count"`
		}{r.Count})
	}
	return json.Marshal(struct {
		Rows  []Template `json:"rows"`
		Count int64      `json:"count"`
	}{r.Rows, r.Count})
}
