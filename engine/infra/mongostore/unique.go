package mongostore

import (
	"errors"
	"regexp"
	"strings"

	"github.com/teamdesk/teamdesk/engine/core"
	"go.mongodb.org/mongo-driver/mongo"
)

var dupIndexRe = regexp.MustCompile(`index: (\S+) dup key`)

// TranslateUniqueViolation reclassifies a duplicate-key error as a
// localized validation error naming the entity and the conflicting
// field. Every other error, including nil, is returned unchanged; this
// is the only place an error is ever reclassified, and nothing is ever
// suppressed.
func TranslateUniqueViolation(err error, lang, entity string) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	field := duplicateKeyField(err)
	if field == "" {
		return err
	}
	return core.NewValidationError(lang, "entities."+entity+".errors.unique."+field)
}

// duplicateKeyField extracts the first conflicting field from the
// offending index name embedded in the server's error message, e.g.
// "... index: name_1 dup key: { name: \"Eng\" }" yields "name".
func duplicateKeyField(err error) string {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if field := fieldFromMessage(e.Message); field != "" {
				return field
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		if field := fieldFromMessage(ce.Message); field != "" {
			return field
		}
	}
	return fieldFromMessage(err.Error())
}

func fieldFromMessage(msg string) string {
	m := dupIndexRe.FindStringSubmatch(msg)
	if m == nil {
		return ""
	}
	return fieldFromIndexName(m[1])
}

// fieldFromIndexName maps a default index name to its first field:
// "name_1" and "name_-1" yield "name", "name_1_owner_1" yields "name".
func fieldFromIndexName(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] != '_' {
			continue
		}
		rest := name[i+1:]
		if rest == "1" || rest == "-1" ||
			strings.HasPrefix(rest, "1_") || strings.HasPrefix(rest, "-1_") {
			return name[:i]
		}
	}
	return name
}
