package catalog

import (
	"context"

	"github.com/neo0222/ftf-backoffice/internal/domain"
	"github.com/neo0222/ftf-backoffice/internal/logger"
)

// Wholesalers are a plain registry; they take no part in costing.

func (s *Service) RegisterWholesaler(ctx context.Context, cmd domain.WholesalerCommand) (*domain.Wholesaler, error) {
	log := logger.FromContext(ctx)

	id, err := s.repo.NextSequence(ctx, cmd.ShopName, domain.FoodTypeWholesaler)
	if err != nil {
		return nil, err
	}

	w := cmd.Info.Entity(cmd.ShopName)
	w.ID = id
	if err := s.repo.PutWholesaler(ctx, w); err != nil {
		return nil, err
	}
	if err := s.repo.AdvanceSequence(ctx, cmd.ShopName, domain.FoodTypeWholesaler); err != nil {
		return nil, err
	}

	log.Info("wholesaler registered", "shop_name", cmd.ShopName, "id", id, "name", w.Name)
	return w, nil
}

func (s *Service) UpdateWholesaler(ctx context.Context, cmd domain.WholesalerCommand) (*domain.Wholesaler, error) {
	old, err := s.repo.GetWholesaler(ctx, cmd.ShopName, cmd.Info.ID)
	if err != nil {
		return nil, err
	}

	w := cmd.Info.Entity(cmd.ShopName)
	w.IsDeleted = old.IsDeleted
	if err := s.repo.PutWholesaler(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) FindAllWholesalers(ctx context.Context, shopName string) ([]*domain.Wholesaler, error) {
	return s.repo.ListWholesalers(ctx, shopName)
}
