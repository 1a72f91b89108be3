package database

import (
	"database/sql"
	_ "embed"
	"fmt"
)

// Schema is the relational store contract (also published as
// docs/schema.sql). The loader applies it only on explicit request;
// the schema belongs to the store operator, not the pipeline.
//
//go:embed schema.sql
var Schema string

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
