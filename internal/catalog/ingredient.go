package catalog

import (
	"context"

	"github.com/neo0222/ftf-backoffice/internal/backref"
	"github.com/neo0222/ftf-backoffice/internal/costing"
	"github.com/neo0222/ftf-backoffice/internal/domain"
	"github.com/neo0222/ftf-backoffice/internal/logger"
	"github.com/neo0222/ftf-backoffice/internal/propagation"
)

// RegisterIngredient stores a new ingredient. Only process_material
// ingredients carry a recipe: their submitted lines are forced active,
// priced against the referenced materials and summed into price_per_prepare,
// and each material gains a back-reference.
func (s *Service) RegisterIngredient(ctx context.Context, cmd domain.IngredientCommand) (*domain.Ingredient, error) {
	log := logger.FromContext(ctx)

	id, err := s.repo.NextSequence(ctx, cmd.ShopName, domain.FoodTypeIngredient)
	if err != nil {
		return nil, err
	}

	i := cmd.Info.Entity(cmd.ShopName)
	i.ID = id

	recipe := cmd.Recipe
	processed := i.PreparationType == domain.PreparationTypeProcessMaterial
	if processed {
		costing.ForceActive(recipe)
		if err := s.priceLines(ctx, cmd.ShopName, domain.FoodTypeMaterial, recipe); err != nil {
			return nil, err
		}
		i.RequiredMaterialList = recipe
		i.PricePerPrepare = domain.Str(costing.TotalActiveCost(recipe))
	}

	if err := s.repo.PutIngredient(ctx, i); err != nil {
		return nil, err
	}

	if processed {
		parent := backref.Parent{Tier: domain.TierIngredient, ID: id, Name: i.Name, PreparationType: i.PreparationType}
		if err := s.reconciler.Reconcile(ctx, cmd.ShopName, domain.FoodTypeMaterial, parent, nil, recipe); err != nil {
			return nil, err
		}
	}

	if err := s.shadows.EnsureShadow(ctx, ingredientShadow(i)); err != nil {
		return nil, err
	}
	if err := s.repo.AdvanceSequence(ctx, cmd.ShopName, domain.FoodTypeIngredient); err != nil {
		return nil, err
	}

	log.Info("ingredient registered", "shop_name", cmd.ShopName, "id", id, "name", i.Name, "preparation_type", i.PreparationType)
	return i, nil
}

// UpdateIngredient overwrites an ingredient, reprices its recipe, carries
// dropped lines as inactive history and propagates upward when the cost
// basis moved.
func (s *Service) UpdateIngredient(ctx context.Context, cmd domain.IngredientCommand) (*domain.Ingredient, *propagation.Result, error) {
	log := logger.FromContext(ctx)

	old, err := s.repo.GetIngredient(ctx, cmd.ShopName, cmd.Info.ID)
	if err != nil {
		return nil, nil, err
	}

	i := cmd.Info.Entity(cmd.ShopName)
	if i.RelatedBaseItemList == nil {
		i.RelatedBaseItemList = old.RelatedBaseItemList
	}
	if i.RelatedProductList == nil {
		i.RelatedProductList = old.RelatedProductList
	}
	i.IsDeleted = old.IsDeleted

	recipe := cmd.Recipe
	var unspent []domain.RecipeLine
	processed := i.PreparationType == domain.PreparationTypeProcessMaterial
	if processed {
		if err := s.priceLines(ctx, cmd.ShopName, domain.FoodTypeMaterial, recipe); err != nil {
			return nil, nil, err
		}
		unspent = costing.Unspent(old.RequiredMaterialList, recipe)
		i.RequiredMaterialList = costing.Merge(unspent, recipe)
		i.PricePerPrepare = domain.Str(costing.TotalActiveCost(i.RequiredMaterialList))
	} else {
		i.RequiredMaterialList = old.RequiredMaterialList
		i.PricePerPrepare = old.PricePerPrepare
	}

	if err := s.repo.PutIngredient(ctx, i); err != nil {
		return nil, nil, err
	}

	if processed {
		parent := backref.Parent{Tier: domain.TierIngredient, ID: i.ID, Name: i.Name, PreparationType: i.PreparationType}
		if err := s.reconciler.Reconcile(ctx, cmd.ShopName, domain.FoodTypeMaterial, parent, unspent, recipe); err != nil {
			return i, nil, err
		}
	}
	if err := s.shadows.RefreshShadow(ctx, cmd.ShopName, domain.FoodTypeIngredient, i.ID, i.Name, *ingredientShadow(i)); err != nil {
		return i, nil, err
	}

	if old.CostBasis().Equal(i.CostBasis()) {
		log.Info("ingredient updated, cost basis unchanged", "shop_name", cmd.ShopName, "id", i.ID)
		return i, &propagation.Result{}, nil
	}

	res, err := s.propagator.PropagateIngredientChange(ctx, i)
	if err != nil {
		return i, res, err
	}
	log.Info("ingredient updated",
		"shop_name", cmd.ShopName,
		"id", i.ID,
		"base_items", len(res.BaseItems),
		"products", len(res.Products))
	return i, res, nil
}

func (s *Service) FindAllIngredients(ctx context.Context, shopName string) ([]*domain.Ingredient, error) {
	return s.repo.ListIngredients(ctx, shopName)
}

func ingredientShadow(i *domain.Ingredient) *domain.Stock {
	return &domain.Stock{
		ID:       i.ID,
		ShopName: i.ShopName,
		FoodType: domain.FoodTypeIngredient,
		Name:     i.Name,
		Prepare:  domain.PrepareBasis{PrepareUnit: i.Prepare.PrepareUnit},
		Measure:  domain.StockMeasure{MeasureUnit: i.Measure.MeasureUnit},
		Minimum:  i.Minimum,
		Proper:   i.Proper,
	}
}
