// Package team implements the team resource: CRUD, import, and
// membership management with pending/approved/rejected invitations.
package team

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EntityName keys the localized unique-constraint messages.
const EntityName = "team"

const collectionName = "teams"

// MemberStatus is the invitation state of one team member.
type MemberStatus string

const (
	StatusPending  MemberStatus = "pending"
	StatusApproved MemberStatus = "approved"
	StatusRejected MemberStatus = "rejected"
)

// Valid reports whether the status is one of the three known states.
func (s MemberStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Member is one membership entry embedded in a team document.
type Member struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Member    string             `bson:"member" json:"member"`
	JoinedOn  *time.Time         `bson:"joined_on,omitempty" json:"joinedOn,omitempty"`
	InvitedAt *time.Time         `bson:"invited_at,omitempty" json:"invitedAt,omitempty"`
	Status    MemberStatus       `bson:"status" json:"status"`
}

// Team is the stored document.
type Team struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	TeamAdmin  string             `bson:"teamAdmin" json:"teamAdmin"`
	Owner      string             `bson:"owner" json:"owner"`
	Members    []Member           `bson:"members" json:"members"`
	CreatedBy  string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedBy  string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	ImportHash string             `bson:"importHash,omitempty" json:"importHash,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MemberInput is one membership entry of a write payload.
type MemberInput struct {
	Member    string       `json:"member" binding:"required"`
	JoinedOn  *time.Time   `json:"joinedOn"`
	InvitedAt *time.Time   `json:"invitedAt"`
	Status    MemberStatus `json:"status"`
}

// Input is the write payload for create, update and import.
type Input struct {
	Name      string        `json:"name" binding:"required"`
	TeamAdmin string        `json:"teamAdmin" binding:"required"`
	Owner     string        `json:"owner" binding:"required"`
	Members   []MemberInput `json:"members"`
	// ImportHash is attached by the import flow, never bound from the
	// request body directly.
	ImportHash string `json:"-"`
}

// Filter narrows list queries. Identifier values that are not valid
// object ids match nothing instead of erroring.
type Filter struct {
	ID             string     `form:"id"`
	Name           string     `form:"name"`
	TeamAdmin      string     `form:"teamAdmin"`
	Owner          string     `form:"owner"`
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
	Rows  []Team
	Count int64
}

func (r ListResult) MarshalJSON() ([]byte, error) {
	if r.Rows == nil {
		return json.Marshal(struct {
			Count int64 `json:"count"`
		}{r.Count})
	}
	return json.Marshal(struct {
		Rows  []Team `json:"rows"`
		Count int64  `json:"count"`
	}{r.Rows, r.Count})
}
