package catalog

import (
	"context"

	"github.com/neo0222/ftf-backoffice/internal/backref"
	"github.com/neo0222/ftf-backoffice/internal/costing"
	"github.com/neo0222/ftf-backoffice/internal/domain"
	"github.com/neo0222/ftf-backoffice/internal/logger"
)

// Product recipes mix ingredient and base item lines, discriminated by
// food_type; untagged lines count as ingredients.

// RegisterProduct stores a new product with its recipe priced and summed
// into cost, and back-references written to both child tiers.
func (s *Service) RegisterProduct(ctx context.Context, cmd domain.ProductCommand) (*domain.Product, error) {
	log := logger.FromContext(ctx)

	id, err := s.repo.NextSequence(ctx, cmd.ShopName, domain.FoodTypeProduct)
	if err != nil {
		return nil, err
	}

	p := cmd.Info.Entity(cmd.ShopName)
	p.ID = id

	ingLines := costing.SplitByFoodType(cmd.Recipe, domain.FoodTypeIngredient, domain.FoodTypeIngredient)
	baseLines := costing.SplitByFoodType(cmd.Recipe, domain.FoodTypeBaseItem, domain.FoodTypeIngredient)
	costing.ForceActive(ingLines)
	costing.ForceActive(baseLines)
	if err := s.priceLines(ctx, cmd.ShopName, domain.FoodTypeIngredient, ingLines); err != nil {
		return nil, err
	}
	if err := s.priceLines(ctx, cmd.ShopName, domain.FoodTypeBaseItem, baseLines); err != nil {
		return nil, err
	}
	p.RequiredIngredientList = ingLines
	p.RequiredBaseItemList = baseLines
	p.Cost = domain.Str(costing.TotalActiveCost(ingLines, baseLines))

	if err := s.repo.PutProduct(ctx, p); err != nil {
		return nil, err
	}

	parent := backref.Parent{Tier: domain.TierProduct, ID: id, Name: p.Name}
	if err := s.reconciler.Reconcile(ctx, cmd.ShopName, domain.FoodTypeIngredient, parent, nil, ingLines); err != nil {
		return nil, err
	}
	if err := s.reconciler.Reconcile(ctx, cmd.ShopName, domain.FoodTypeBaseItem, parent, nil, baseLines); err != nil {
		return nil, err
	}

	if err := s.repo.AdvanceSequence(ctx, cmd.ShopName, domain.FoodTypeProduct); err != nil {
		return nil, err
	}

	log.Info("product registered", "shop_name", cmd.ShopName, "id", id, "name", p.Name)
	return p, nil
}

// UpdateProduct overwrites a product and recomputes its cost. Products are
// the top tier, so nothing propagates further.
func (s *Service) UpdateProduct(ctx context.Context, cmd domain.ProductCommand) (*domain.Product, error) {
	log := logger.FromContext(ctx)

	old, err := s.repo.GetProduct(ctx, cmd.ShopName, cmd.Info.ID)
	if err != nil {
		return nil, err
	}

	p := cmd.Info.Entity(cmd.ShopName)
	p.IsDeleted = old.IsDeleted

	ingLines := costing.SplitByFoodType(cmd.Recipe, domain.FoodTypeIngredient, domain.FoodTypeIngredient)
	baseLines := costing.SplitByFoodType(cmd.Recipe, domain.FoodTypeBaseItem, domain.FoodTypeIngredient)
	if err := s.priceLines(ctx, cmd.ShopName, domain.FoodTypeIngredient, ingLines); err != nil {
		return nil, err
	}
	if err := s.priceLines(ctx, cmd.ShopName, domain.FoodTypeBaseItem, baseLines); err != nil {
		return nil, err
	}

	unspentIng := costing.Unspent(old.RequiredIngredientList, ingLines)
	unspentBase := costing.Unspent(old.RequiredBaseItemList, baseLines)
	p.RequiredIngredientList = costing.Merge(unspentIng, ingLines)
	p.RequiredBaseItemList = costing.Merge(unspentBase, baseLines)
	p.Cost = domain.Str(costing.TotalActiveCost(p.RequiredIngredientList, p.RequiredBaseItemList))

	if err := s.repo.PutProduct(ctx, p); err != nil {
		return nil, err
	}

	parent := backref.Parent{Tier: domain.TierProduct, ID: p.ID, Name: p.Name}
	if err := s.reconciler.Reconcile(ctx, cmd.ShopName, domain.FoodTypeIngredient, parent, unspentIng, ingLines); err != nil {
		return p, err
	}
	if err := s.reconciler.Reconcile(ctx, cmd.ShopName, domain.FoodTypeBaseItem, parent, unspentBase, baseLines); err != nil {
		return p, err
	}

	log.Info("product updated", "shop_name", cmd.ShopName, "id", p.ID, "cost", p.Cost)
	return p, nil
}

func (s *Service) FindAllProducts(ctx context.Context, shopName string) ([]*domain.Product, error) {
	return s.repo.ListProducts(ctx, shopName)
}
