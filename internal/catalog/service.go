// Package catalog implements the register, update and findAll operations
// for every entity tier: pricing submitted recipes, diffing them against the
// persisted ones, keeping child back-references in step and kicking off cost
// propagation when a cost basis moved.
package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/neo0222/ftf-backoffice/internal/backref"
	"github.com/neo0222/ftf-backoffice/internal/costing"
	"github.com/neo0222/ftf-backoffice/internal/domain"
	"github.com/neo0222/ftf-backoffice/internal/propagation"
)

// Repository is the storage surface the catalog needs.
type Repository interface {
	GetMaterial(ctx context.Context, shopName string, id int) (*domain.Material, error)
	PutMaterial(ctx context.Context, m *domain.Material) error
	ListMaterials(ctx context.Context, shopName string) ([]*domain.Material, error)

	GetIngredient(ctx context.Context, shopName string, id int) (*domain.Ingredient, error)
	PutIngredient(ctx context.Context, i *domain.Ingredient) error
	ListIngredients(ctx context.Context, shopName string) ([]*domain.Ingredient, error)

	GetBaseItem(ctx context.Context, shopName string, id int) (*domain.BaseItem, error)
	PutBaseItem(ctx context.Context, b *domain.BaseItem) error
	ListBaseItems(ctx context.Context, shopName string) ([]*domain.BaseItem, error)

	GetProduct(ctx context.Context, shopName string, id int) (*domain.Product, error)
	PutProduct(ctx context.Context, p *domain.Product) error
	ListProducts(ctx context.Context, shopName string) ([]*domain.Product, error)

	GetWholesaler(ctx context.Context, shopName string, id int) (*domain.Wholesaler, error)
	PutWholesaler(ctx context.Context, w *domain.Wholesaler) error
	ListWholesalers(ctx context.Context, shopName string) ([]*domain.Wholesaler, error)

	NextSequence(ctx context.Context, shopName string, foodType domain.FoodType) (int, error)
	AdvanceSequence(ctx context.Context, shopName string, foodType domain.FoodType) error
}

// Reconciler keeps child back-reference lists in step with parent recipes.
type Reconciler interface {
	Reconcile(ctx context.Context, shopName string, childType domain.FoodType, parent backref.Parent, unspent, submitted []domain.RecipeLine) error
}

// Propagator walks a persisted cost change up the BOM.
type Propagator interface {
	PropagateMaterialChange(ctx context.Context, m *domain.Material) (*propagation.Result, error)
	PropagateIngredientChange(ctx context.Context, i *domain.Ingredient) (*propagation.Result, error)
	PropagateBaseItemChange(ctx context.Context, b *domain.BaseItem) (*propagation.Result, error)
}

// Shadows maintains the stock shadow records of materials and ingredients.
type Shadows interface {
	EnsureShadow(ctx context.Context, shadow *domain.Stock) error
	RefreshShadow(ctx context.Context, shopName string, foodType domain.FoodType, id int, name string, units domain.Stock) error
}

type Service struct {
	repo       Repository
	reconciler Reconciler
	propagator Propagator
	shadows    Shadows
}

func NewService(repo Repository, reconciler Reconciler, propagator Propagator, shadows Shadows) *Service {
	return &Service{
		repo:       repo,
		reconciler: reconciler,
		propagator: propagator,
		shadows:    shadows,
	}
}

// priceLines fills in the cost of each submitted line from its child's
// current basis. Children are fetched concurrently; each goroutine writes
// only its own line.
func (s *Service) priceLines(ctx context.Context, shopName string, childType domain.FoodType, lines []domain.RecipeLine) error {
	g, gctx := errgroup.WithContext(ctx)
	for idx := range lines {
		g.Go(func() error {
			basis, err := s.childBasis(gctx, shopName, childType, lines[idx].ID)
			if err != nil {
				return err
			}
			lines[idx].Cost = costing.PriceLine(lines[idx], basis)
			return nil
		})
	}
	return g.Wait()
}

func (s *Service) childBasis(ctx context.Context, shopName string, childType domain.FoodType, id int) (domain.CostBasis, error) {
	switch childType {
	case domain.FoodTypeMaterial:
		m, err := s.repo.GetMaterial(ctx, shopName, id)
		if err != nil {
			return domain.CostBasis{}, err
		}
		return m.CostBasis(), nil
	case domain.FoodTypeIngredient:
		i, err := s.repo.GetIngredient(ctx, shopName, id)
		if err != nil {
			return domain.CostBasis{}, err
		}
		return i.CostBasis(), nil
	case domain.FoodTypeBaseItem:
		b, err := s.repo.GetBaseItem(ctx, shopName, id)
		if err != nil {
			return domain.CostBasis{}, err
		}
		return b.CostBasis(), nil
	}
	return domain.CostBasis{}, fmt.Errorf("%w: %q has no cost basis", domain.ErrUnknownFoodType, childType)
}
