// Package sqlstore implements store.Store over database/sql. The sqlite and
// postgres drivers supply a Dialect and their own migrations; the queries
// are shared and written with "?" placeholders.
package sqlstore
