// Package schema declares the users, recipes and interactions tables and
// creates them in PostgreSQL.
//
// Tables are described as plain metadata (columns, keys, checks) and rendered
// to CREATE TABLE IF NOT EXISTS statements, so creating a table that already
// exists is a no-op. Interactions reference users and recipes with
// ON DELETE CASCADE foreign keys; All returns the tables in the order they
// must be created.
package schema
