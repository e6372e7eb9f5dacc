package sqlxrepos

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// psql builds Postgres statements ($n placeholders).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Ids are UUID columns: anything else can never match a row, and Postgres rejects it outright.

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validIDs(ids []string) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	return valid
}
