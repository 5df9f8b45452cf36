package mongostore

import (
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SafeObjectID parses an id filter value. An invalid hex string yields
// a fresh timestamp id that matches no stored document, so a malformed
// id filter returns zero rows instead of erroring.
func SafeObjectID(hex string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NewObjectIDFromTimestamp(time.Now())
	}
	return id
}

// EscapeRegex escapes metacharacters so user input can be used as a
// substring pattern.
func EscapeRegex(value string) string {
	return regexp.QuoteMeta(value)
}

// Regex builds a case-insensitive substring condition for a field.
func Regex(value string) bson.M {
	return bson.M{"$regex": EscapeRegex(value), "$options": "i"}
}

// Sort parses an "field_ASC" / "field_DESC" specification into a sort
// document. "id" maps to "_id". An empty spec yields nil.
func Sort(orderBy string) bson.D {
	if orderBy == "" {
		return nil
	}
	field, order, _ := strings.Cut(orderBy, "_")
	if field == "id" {
		field = "_id"
	}
	direction := -1
	if order == "ASC" {
		direction = 1
	}
	return bson.D{{Key: field, Value: direction}}
}
