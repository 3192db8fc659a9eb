// Package db provides embedded database schema and migration files.
package db

import _ "embed"

// Schema contains the DDL statements for all application tables.
//
//go:embed schema.sql
var Schema string
