package catalog

import (
	"context"

	"github.com/neo0222/ftf-backoffice/internal/backref"
	"github.com/neo0222/ftf-backoffice/internal/costing"
	"github.com/neo0222/ftf-backoffice/internal/domain"
	"github.com/neo0222/ftf-backoffice/internal/logger"
	"github.com/neo0222/ftf-backoffice/internal/propagation"
)

// Base item recipes mix ingredient and material lines in one submission,
// discriminated by food_type; untagged lines count as ingredients.

// RegisterBaseItem stores a new base item with its mixed recipe priced and
// summed, and back-references written to both child tiers.
func (s *Service) RegisterBaseItem(ctx context.Context, cmd domain.BaseItemCommand) (*domain.BaseItem, error) {
	log := logger.FromContext(ctx)

	id, err := s.repo.NextSequence(ctx, cmd.ShopName, domain.FoodTypeBaseItem)
	if err != nil {
		return nil, err
	}

	b := cmd.Info.Entity(cmd.ShopName)
	b.ID = id

	ingLines := costing.SplitByFoodType(cmd.Recipe, domain.FoodTypeIngredient, domain.FoodTypeIngredient)
	matLines := costing.SplitByFoodType(cmd.Recipe, domain.FoodTypeMaterial, domain.FoodTypeIngredient)
	costing.ForceActive(ingLines)
	costing.ForceActive(matLines)
	if err := s.priceLines(ctx, cmd.ShopName, domain.FoodTypeIngredient, ingLines); err != nil {
		return nil, err
	}
	if err := s.priceLines(ctx, cmd.ShopName, domain.FoodTypeMaterial, matLines); err != nil {
		return nil, err
	}
	b.RequiredIngredientList = ingLines
	b.RequiredMaterialList = matLines
	b.PricePerPrepare = domain.Str(costing.TotalActiveCost(ingLines, matLines))

	if err := s.repo.PutBaseItem(ctx, b); err != nil {
		return nil, err
	}

	parent := backref.Parent{Tier: domain.TierBaseItem, ID: id, Name: b.Name}
	if err := s.reconciler.Reconcile(ctx, cmd.ShopName, domain.FoodTypeIngredient, parent, nil, ingLines); err != nil {
		return nil, err
	}
	if err := s.reconciler.Reconcile(ctx, cmd.ShopName, domain.FoodTypeMaterial, parent, nil, matLines); err != nil {
		return nil, err
	}

	if err := s.repo.AdvanceSequence(ctx, cmd.ShopName, domain.FoodTypeBaseItem); err != nil {
		return nil, err
	}

	log.Info("base item registered", "shop_name", cmd.ShopName, "id", id, "name", b.Name)
	return b, nil
}

// UpdateBaseItem overwrites a base item, reprices both recipe lists with
// dropped lines kept as inactive history, and propagates to products when
// the cost basis moved.
func (s *Service) UpdateBaseItem(ctx context.Context, cmd domain.BaseItemCommand) (*domain.BaseItem, *propagation.Result, error) {
	log := logger.FromContext(ctx)

	old, err := s.repo.GetBaseItem(ctx, cmd.ShopName, cmd.Info.ID)
	if err != nil {
		return nil, nil, err
	}

	b := cmd.Info.Entity(cmd.ShopName)
	if b.RelatedProductList == nil {
		b.RelatedProductList = old.RelatedProductList
	}
	b.IsDeleted = old.IsDeleted

	ingLines := costing.SplitByFoodType(cmd.Recipe, domain.FoodTypeIngredient, domain.FoodTypeIngredient)
	matLines := costing.SplitByFoodType(cmd.Recipe, domain.FoodTypeMaterial, domain.FoodTypeIngredient)
	if err := s.priceLines(ctx, cmd.ShopName, domain.FoodTypeIngredient, ingLines); err != nil {
		return nil, nil, err
	}
	if err := s.priceLines(ctx, cmd.ShopName, domain.FoodTypeMaterial, matLines); err != nil {
		return nil, nil, err
	}

	unspentIng := costing.Unspent(old.RequiredIngredientList, ingLines)
	unspentMat := costing.Unspent(old.RequiredMaterialList, matLines)
	b.RequiredIngredientList = costing.Merge(unspentIng, ingLines)
	b.RequiredMaterialList = costing.Merge(unspentMat, matLines)
	b.PricePerPrepare = domain.Str(costing.TotalActiveCost(b.RequiredIngredientList, b.RequiredMaterialList))

	if err := s.repo.PutBaseItem(ctx, b); err != nil {
		return nil, nil, err
	}

	parent := backref.Parent{Tier: domain.TierBaseItem, ID: b.ID, Name: b.Name}
	if err := s.reconciler.Reconcile(ctx, cmd.ShopName, domain.FoodTypeIngredient, parent, unspentIng, ingLines); err != nil {
		return b, nil, err
	}
	if err := s.reconciler.Reconcile(ctx, cmd.ShopName, domain.FoodTypeMaterial, parent, unspentMat, matLines); err != nil {
		return b, nil, err
	}

	if old.CostBasis().Equal(b.CostBasis()) {
		log.Info("base item updated, cost basis unchanged", "shop_name", cmd.ShopName, "id", b.ID)
		return b, &propagation.Result{}, nil
	}

	res, err := s.propagator.PropagateBaseItemChange(ctx, b)
	if err != nil {
		return b, res, err
	}
	log.Info("base item updated", "shop_name", cmd.ShopName, "id", b.ID, "products", len(res.Products))
	return b, res, nil
}

func (s *Service) FindAllBaseItems(ctx context.Context, shopName string) ([]*domain.BaseItem, error) {
	return s.repo.ListBaseItems(ctx, shopName)
}
