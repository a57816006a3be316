// Package stock manages the shadow records tracking on-hand amounts for
// materials and ingredients. A shadow is created empty when the entity is
// registered; stock entries record an amount in one unit kind and derive
// the equivalents in the others from the entity's basis amounts.
package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/neo0222/ftf-backoffice/internal/domain"
	"github.com/neo0222/ftf-backoffice/internal/logger"
)

// EntryKind names the unit the submitted stock amount was counted in.
type EntryKind string

const (
	EntryKindOrder   EntryKind = "order"
	EntryKindCount   EntryKind = "count"
	EntryKindMeasure EntryKind = "measure"
	EntryKindPrepare EntryKind = "prepare"
)

// Entry is one submitted stock count.
type Entry struct {
	FoodType domain.FoodType `json:"food_type" validate:"required"`
	ID       int             `json:"id" validate:"required"`
	Kind     EntryKind       `json:"stock_kind" validate:"required"`
	Amount   string          `json:"amount" validate:"required"`
}

type Repository interface {
	GetMaterial(ctx context.Context, shopName string, id int) (*domain.Material, error)
	GetIngredient(ctx context.Context, shopName string, id int) (*domain.Ingredient, error)
	GetStock(ctx context.Context, shopName string, foodType domain.FoodType, id int) (*domain.Stock, error)
	PutStock(ctx context.Context, s *domain.Stock) error
	ListStocks(ctx context.Context, shopName string, foodType domain.FoodType) ([]*domain.Stock, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// shadowType maps an entity partition to its stock shadow partition.
func shadowType(foodType domain.FoodType) (domain.FoodType, error) {
	switch foodType {
	case domain.FoodTypeMaterial:
		return domain.FoodTypeMaterialStock, nil
	case domain.FoodTypeIngredient:
		return domain.FoodTypeIngredientStock, nil
	}
	return "", fmt.Errorf("%w: no stock shadow for %q", domain.ErrUnknownFoodType, foodType)
}

// EnsureShadow writes the shadow for a freshly registered entity.
func (s *Service) EnsureShadow(ctx context.Context, shadow *domain.Stock) error {
	st, err := shadowType(shadow.FoodType)
	if err != nil {
		return err
	}
	shadow.FoodType = st
	shadow.IsActive = true
	return s.repo.PutStock(ctx, shadow)
}

// RefreshShadow re-syncs the descriptive fields of an existing shadow after
// its entity was updated, preserving recorded amounts. A missing shadow is
// not an error; entities registered before stock tracking have none.
func (s *Service) RefreshShadow(ctx context.Context, shopName string, foodType domain.FoodType, id int, name string, units domain.Stock) error {
	st, err := shadowType(foodType)
	if err != nil {
		return err
	}

	shadow, err := s.repo.GetStock(ctx, shopName, st, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	shadow.Name = name
	shadow.Order.OrderUnit = units.Order.OrderUnit
	shadow.Count.CountUnit = units.Count.CountUnit
	shadow.Measure.MeasureUnit = units.Measure.MeasureUnit
	shadow.Prepare.PrepareUnit = units.Prepare.PrepareUnit
	shadow.Minimum = units.Minimum
	shadow.Proper = units.Proper
	return s.repo.PutStock(ctx, shadow)
}

// FindAll lists the shadows of one entity kind.
func (s *Service) FindAll(ctx context.Context, shopName string, foodType domain.FoodType) ([]*domain.Stock, error) {
	st, err := shadowType(foodType)
	if err != nil {
		return nil, err
	}
	return s.repo.ListStocks(ctx, shopName, st)
}

// RecordEntry stores one stock count. The amount arrives in a single unit
// kind; the equivalents in the other kinds are derived through the entity's
// basis amounts: derived = amount * targetBase / inputBase. When any of the
// three is zero the derived amount is unset rather than misleading.
func (s *Service) RecordEntry(ctx context.Context, shopName string, entry Entry) (*domain.Stock, error) {
	log := logger.FromContext(ctx)

	st, err := shadowType(entry.FoodType)
	if err != nil {
		return nil, err
	}
	shadow, err := s.repo.GetStock(ctx, shopName, st, entry.ID)
	if err != nil {
		return nil, err
	}

	var applied bool
	switch entry.FoodType {
	case domain.FoodTypeMaterial:
		applied, err = s.applyMaterialEntry(ctx, shopName, shadow, entry)
	case domain.FoodTypeIngredient:
		applied, err = s.applyIngredientEntry(ctx, shopName, shadow, entry)
	}
	if err != nil {
		return nil, err
	}
	if !applied {
		log.Warn("stock entry skipped, entity has no basis amount for the submitted kind",
			"food_type", entry.FoodType, "id", entry.ID, "kind", entry.Kind)
		return shadow, nil
	}

	if err := s.repo.PutStock(ctx, shadow); err != nil {
		return nil, err
	}
	log.Info("stock entry recorded", "food_type", entry.FoodType, "id", entry.ID, "kind", entry.Kind)
	return shadow, nil
}

func (s *Service) applyMaterialEntry(ctx context.Context, shopName string, shadow *domain.Stock, entry Entry) (bool, error) {
	m, err := s.repo.GetMaterial(ctx, shopName, entry.ID)
	if err != nil {
		return false, err
	}

	amount := domain.Num(entry.Amount)
	switch entry.Kind {
	case EntryKindOrder:
		base := domain.Num(m.Order.AmountPerOrder)
		if base.IsZero() {
			return false, nil
		}
		shadow.Order.AmountPerOrder = entry.Amount
		shadow.Count.CountPerOrder = convertAmount(base, amount, domain.Num(m.Count.CountPerOrder))
		shadow.Measure.MeasurePerOrder = convertAmount(base, amount, domain.Num(m.Measure.MeasurePerOrder))
	case EntryKindCount:
		base := domain.Num(m.Count.CountPerOrder)
		if base.IsZero() {
			return false, nil
		}
		shadow.Count.CountPerOrder = entry.Amount
		shadow.Order.AmountPerOrder = convertAmount(base, amount, domain.Num(m.Order.AmountPerOrder))
		shadow.Measure.MeasurePerOrder = convertAmount(base, amount, domain.Num(m.Measure.MeasurePerOrder))
	case EntryKindMeasure:
		base := domain.Num(m.Measure.MeasurePerOrder)
		if base.IsZero() {
			return false, nil
		}
		shadow.Measure.MeasurePerOrder = entry.Amount
		shadow.Order.AmountPerOrder = convertAmount(base, amount, domain.Num(m.Order.AmountPerOrder))
		shadow.Count.CountPerOrder = convertAmount(base, amount, domain.Num(m.Count.CountPerOrder))
	default:
		return false, fmt.Errorf("%w: kind %q for material stock", domain.ErrInvalidInput, entry.Kind)
	}
	return true, nil
}

func (s *Service) applyIngredientEntry(ctx context.Context, shopName string, shadow *domain.Stock, entry Entry) (bool, error) {
	i, err := s.repo.GetIngredient(ctx, shopName, entry.ID)
	if err != nil {
		return false, err
	}

	amount := domain.Num(entry.Amount)
	switch entry.Kind {
	case EntryKindPrepare:
		base := domain.Num(i.Prepare.AmountPerPrepare)
		if base.IsZero() {
			return false, nil
		}
		shadow.Prepare.AmountPerPrepare = entry.Amount
		shadow.Measure.MeasurePerPrepare = convertAmount(base, amount, domain.Num(i.Measure.MeasurePerPrepare))
	case EntryKindMeasure:
		base := domain.Num(i.Measure.MeasurePerPrepare)
		if base.IsZero() {
			return false, nil
		}
		shadow.Measure.MeasurePerPrepare = entry.Amount
		shadow.Prepare.AmountPerPrepare = convertAmount(base, amount, domain.Num(i.Prepare.AmountPerPrepare))
	default:
		return false, fmt.Errorf("%w: kind %q for ingredient stock", domain.ErrInvalidInput, entry.Kind)
	}
	return true, nil
}

// convertAmount derives the on-hand amount in another unit kind. Any zero
// operand makes the conversion meaningless, so the field is unset instead.
func convertAmount(inputBase, amount, targetBase decimal.Decimal) string {
	if inputBase.IsZero() || amount.IsZero() || targetBase.IsZero() {
		return ""
	}
	return domain.Str(amount.Mul(targetBase).Div(inputBase))
}
