// Package postgres persists food records as JSONB documents keyed by
// (shop_name, food_type, id), with per-partition sequence counters.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/neo0222/ftf-backoffice/internal/domain"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Get(ctx context.Context, shopName string, foodType domain.FoodType, id int) ([]byte, error) {
	var record []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM food_records WHERE shop_name = $1 AND food_type = $2 AND id = $3`,
		shopName, string(foodType), id).Scan(&record)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s %s %d: %w", shopName, foodType, id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", foodType, id, err)
	}
	return record, nil
}

func (s *Store) Put(ctx context.Context, shopName string, foodType domain.FoodType, id int, record []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO food_records (shop_name, food_type, id, record)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (shop_name, food_type, id)
		 DO UPDATE SET record = EXCLUDED.record, updated_at = NOW()`,
		shopName, string(foodType), id, record)
	if err != nil {
		return fmt.Errorf("put %s %d: %w", foodType, id, err)
	}
	return nil
}

// UpdateField rewrites one top-level field of a record via jsonb_set,
// leaving every other field untouched.
func (s *Store) UpdateField(ctx context.Context, shopName string, foodType domain.FoodType, id int, field string, value []byte) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE food_records
		 SET record = jsonb_set(record, ARRAY[$4], $5::jsonb, true), updated_at = NOW()
		 WHERE shop_name = $1 AND food_type = $2 AND id = $3`,
		shopName, string(foodType), id, field, value)
	if err != nil {
		return fmt.Errorf("update %s %d field %s: %w", foodType, id, field, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s %d: %w", shopName, foodType, id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) QueryByPartition(ctx context.Context, shopName string, foodType domain.FoodType) ([][]byte, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT record FROM food_records WHERE shop_name = $1 AND food_type = $2 ORDER BY id`,
		shopName, string(foodType))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", foodType, err)
	}
	defer rows.Close()

	var records [][]byte
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scan %s: %w", foodType, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", foodType, err)
	}
	return records, nil
}

// NextSequence reads the next free id for a partition, lazily creating the
// counter at 1.
func (s *Store) NextSequence(ctx context.Context, shopName string, foodType domain.FoodType) (int, error) {
	var next int
	err := s.pool.QueryRow(ctx,
		`INSERT INTO food_sequences (shop_name, food_type, next_id)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (shop_name, food_type)
		 DO UPDATE SET next_id = food_sequences.next_id
		 RETURNING next_id`,
		shopName, string(foodType)).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", foodType, err)
	}
	return next, nil
}

func (s *Store) AdvanceSequence(ctx context.Context, shopName string, foodType domain.FoodType) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO food_sequences (shop_name, food_type, next_id)
		 VALUES ($1, $2, 2)
		 ON CONFLICT (shop_name, food_type)
		 DO UPDATE SET next_id = food_sequences.next_id + 1`,
		shopName, string(foodType))
	if err != nil {
		return fmt.Errorf("advance sequence %s: %w", foodType, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
