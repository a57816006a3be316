// Package repository defines the storage contract the services are written
// against, plus typed helpers over the raw record store. Records are opaque
// JSON documents keyed by (shop_name, food_type, id); implementations live
// under internal/database.
package repository

import (
	"context"

	"github.com/neo0222/ftf-backoffice/internal/domain"
)

// Store is the raw key-value contract. Get returns domain.ErrNotFound when
// no record exists. UpdateField rewrites exactly one named top-level field
// of a record, leaving the rest untouched; it is the only partial write the
// system performs. There are no transactions; a write that lands, stands.
type Store interface {
	Get(ctx context.Context, shopName string, foodType domain.FoodType, id int) ([]byte, error)
	Put(ctx context.Context, shopName string, foodType domain.FoodType, id int, record []byte) error
	UpdateField(ctx context.Context, shopName string, foodType domain.FoodType, id int, field string, value []byte) error
	QueryByPartition(ctx context.Context, shopName string, foodType domain.FoodType) ([][]byte, error)

	// NextSequence reads the next id for a partition, lazily creating the
	// counter at 1. AdvanceSequence increments it, called only after the
	// record occupying the id was persisted.
	NextSequence(ctx context.Context, shopName string, foodType domain.FoodType) (int, error)
	AdvanceSequence(ctx context.Context, shopName string, foodType domain.FoodType) error
}
