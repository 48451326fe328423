// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities carry no GORM tags or infrastructure concerns
// 2. Persistence models hold every GORM annotation and table mapping
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: shared timestamp columns and nullable helpers
// - partner.go: customers
// - catalog.go: products, price-list entries, discount norms
// - ledger.go: chart of accounts
// - billing.go: invoices and credit notes with their lines
// - identity.go: users
//
// Every table uses its natural key. The SQL files under migrations/ are the source of truth
// for postgres; All is used by AutoMigrate for SQLite databases only.
package models
