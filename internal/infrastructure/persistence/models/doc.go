// Package models contains the GORM persistence models for KitaBayar tables.
// Domain entities stay free of ORM tags; each model converts to and from its
// entity with ToDomain/FromDomain, and repositories only ever touch models.
//
// The authoritative PostgreSQL schema lives in the SQL migrations. The GORM
// tags here mirror it closely enough for AutoMigrate to build an equivalent
// SQLite schema in tests.
package models
