package mysql

import "database/sql"

// nullable maps an empty string to SQL NULL, used for the weak owner
// reference on anonymous submissions.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
