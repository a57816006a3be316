package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/neo0222/ftf-backoffice/internal/domain"
)

// GetEntity fetches and decodes one record.
func GetEntity[T any](ctx context.Context, s Store, shopName string, foodType domain.FoodType, id int) (*T, error) {
	record, err := s.Get(ctx, shopName, foodType, id)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(record, &v); err != nil {
		return nil, fmt.Errorf("decode %s %d: %w", foodType, id, err)
	}
	return &v, nil
}

// PutEntity encodes and stores one record. Encoding relies on omitempty
// tags to drop empty string fields, so blanks never overwrite prior values
// on readers that merge partial documents.
func PutEntity[T any](ctx context.Context, s Store, shopName string, foodType domain.FoodType, id int, v *T) error {
	record, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s %d: %w", foodType, id, err)
	}
	return s.Put(ctx, shopName, foodType, id, record)
}

// ListEntities fetches and decodes every record in a partition.
func ListEntities[T any](ctx context.Context, s Store, shopName string, foodType domain.FoodType) ([]*T, error) {
	records, err := s.QueryByPartition(ctx, shopName, foodType)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(records))
	for _, record := range records {
		var v T
		if err := json.Unmarshal(record, &v); err != nil {
			return nil, fmt.Errorf("decode %s list: %w", foodType, err)
		}
		out = append(out, &v)
	}
	return out, nil
}

// UpdateListField overwrites one related list on a record via a partial
// field update.
func UpdateListField(ctx context.Context, s Store, shopName string, foodType domain.FoodType, id int, field string, list []domain.BackReference) error {
	value, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s.%s: %w", foodType, field, err)
	}
	return s.UpdateField(ctx, shopName, foodType, id, field, value)
}
