package catalog

import (
	"context"

	"github.com/neo0222/ftf-backoffice/internal/domain"
	"github.com/neo0222/ftf-backoffice/internal/logger"
	"github.com/neo0222/ftf-backoffice/internal/propagation"
)

// RegisterMaterial stores a new material under the next free id and creates
// its empty stock shadow. The sequence is advanced only after the record
// landed, so a failed write leaves the id free for the retry.
func (s *Service) RegisterMaterial(ctx context.Context, cmd domain.MaterialCommand) (*domain.Material, error) {
	log := logger.FromContext(ctx)

	id, err := s.repo.NextSequence(ctx, cmd.ShopName, domain.FoodTypeMaterial)
	if err != nil {
		return nil, err
	}

	m := cmd.Item.Entity(cmd.ShopName)
	m.ID = id
	if err := s.repo.PutMaterial(ctx, m); err != nil {
		return nil, err
	}

	if err := s.shadows.EnsureShadow(ctx, materialShadow(m)); err != nil {
		return nil, err
	}
	if err := s.repo.AdvanceSequence(ctx, cmd.ShopName, domain.FoodTypeMaterial); err != nil {
		return nil, err
	}

	log.Info("material registered", "shop_name", cmd.ShopName, "id", id, "name", m.Name)
	return m, nil
}

// UpdateMaterial overwrites a material and, when its cost basis moved,
// propagates the change through every recipe referencing it.
func (s *Service) UpdateMaterial(ctx context.Context, cmd domain.MaterialCommand) (*domain.Material, *propagation.Result, error) {
	log := logger.FromContext(ctx)

	old, err := s.repo.GetMaterial(ctx, cmd.ShopName, cmd.Item.ID)
	if err != nil {
		return nil, nil, err
	}

	m := cmd.Item.Entity(cmd.ShopName)
	if m.RelatedIngredientList == nil {
		m.RelatedIngredientList = old.RelatedIngredientList
	}
	if m.RelatedBaseItemList == nil {
		m.RelatedBaseItemList = old.RelatedBaseItemList
	}
	m.IsDeleted = old.IsDeleted

	if err := s.repo.PutMaterial(ctx, m); err != nil {
		return nil, nil, err
	}
	if err := s.shadows.RefreshShadow(ctx, cmd.ShopName, domain.FoodTypeMaterial, m.ID, m.Name, *materialShadow(m)); err != nil {
		return nil, nil, err
	}

	if old.CostBasis().Equal(m.CostBasis()) {
		log.Info("material updated, cost basis unchanged", "shop_name", cmd.ShopName, "id", m.ID)
		return m, &propagation.Result{}, nil
	}

	res, err := s.propagator.PropagateMaterialChange(ctx, m)
	if err != nil {
		return m, res, err
	}
	log.Info("material updated",
		"shop_name", cmd.ShopName,
		"id", m.ID,
		"ingredients", len(res.Ingredients),
		"base_items", len(res.BaseItems),
		"products", len(res.Products))
	return m, res, nil
}

func (s *Service) FindAllMaterials(ctx context.Context, shopName string) ([]*domain.Material, error) {
	return s.repo.ListMaterials(ctx, shopName)
}

func materialShadow(m *domain.Material) *domain.Stock {
	return &domain.Stock{
		ID:       m.ID,
		ShopName: m.ShopName,
		FoodType: domain.FoodTypeMaterial,
		Name:     m.Name,
		Order:    domain.OrderBasis{OrderUnit: m.Order.OrderUnit},
		Count:    domain.CountBasis{CountUnit: m.Count.CountUnit},
		Measure:  domain.StockMeasure{MeasureUnit: m.Measure.MeasureUnit},
		Minimum:  m.Minimum,
		Proper:   m.Proper,
	}
}
