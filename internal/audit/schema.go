package audit

import "embed"

//go:embed schema/postgres.sql
var postgresSchemaFS embed.FS

//go:embed schema/sqlite.sql
var sqliteSchemaFS embed.FS

func mustReadSchema(fs embed.FS, path string) string {
	data, err := fs.ReadFile(path)
	if err != nil {
		panic(err) // embedded at build time; a missing file here is a build defect, not a runtime one
	}
	return string(data)
}

var postgresSchema = mustReadSchema(postgresSchemaFS, "schema/postgres.sql")
var sqliteSchema = mustReadSchema(sqliteSchemaFS, "schema/sqlite.sql")
