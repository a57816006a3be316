// Package propagation walks cost changes up the BOM. A material write fans
// out to the ingredients and base items referencing it, then to the base
// items and products referencing those, tier by tier with a barrier between
// waves. Parents whose recomputed total is unchanged stop the walk early.
package propagation

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/neo0222/ftf-backoffice/internal/costing"
	"github.com/neo0222/ftf-backoffice/internal/domain"
	"github.com/neo0222/ftf-backoffice/internal/logger"
	"github.com/neo0222/ftf-backoffice/internal/metrics"
)

// Repository is the storage surface the propagator needs.
type Repository interface {
	GetIngredient(ctx context.Context, shopName string, id int) (*domain.Ingredient, error)
	PutIngredient(ctx context.Context, i *domain.Ingredient) error
	GetBaseItem(ctx context.Context, shopName string, id int) (*domain.BaseItem, error)
	PutBaseItem(ctx context.Context, b *domain.BaseItem) error
	GetProduct(ctx context.Context, shopName string, id int) (*domain.Product, error)
	PutProduct(ctx context.Context, p *domain.Product) error
}

// Result lists the entities persisted with a recomputed cost, per tier.
// It is filled even when a run fails partway: there are no transactions,
// so writes that landed before the failure stand and are reported.
type Result struct {
	Ingredients []int
	BaseItems   []int
	Products    []int
}

// update is one repriced child feeding a parent recompute.
type update struct {
	childID int
	tier    domain.Tier
	basis   domain.CostBasis
}

// descriptor is a parent persisted with a changed cost basis, carrying the
// ids of the entities one tier up that must be recomputed next.
type descriptor struct {
	id        int
	basis     domain.CostBasis
	baseItems []int
	products  []int
}

// outcome reports what happened to one entity during a wave.
type outcome struct {
	persisted bool
	desc      *descriptor
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// PropagateMaterialChange recomputes every entity transitively referencing
// the material, which must already be persisted with its new cost basis.
func (s *Service) PropagateMaterialChange(ctx context.Context, m *domain.Material) (*Result, error) {
	return s.run(ctx, "material", func(ctx context.Context, res *Result) error {
		u := update{childID: m.ID, tier: domain.TierMaterial, basis: m.CostBasis()}
		ingGroups := groupRefs(m.RelatedIngredientList, u)
		directBaseGroups := groupRefs(m.RelatedBaseItemList, u)

		// First wave: ingredients and directly referencing base items run
		// concurrently; they never touch the same records.
		var (
			ingDescs, directBaseDescs []descriptor
			ingIDs, directBaseIDs     []int
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			ingDescs, ingIDs, err = s.updateIngredients(gctx, m.ShopName, ingGroups)
			return err
		})
		g.Go(func() error {
			var err error
			directBaseDescs, directBaseIDs, err = s.updateBaseItems(gctx, m.ShopName, directBaseGroups)
			return err
		})
		waveErr := g.Wait()
		res.Ingredients = ingIDs
		res.BaseItems = directBaseIDs
		if waveErr != nil {
			return waveErr
		}

		return s.cascade(ctx, m.ShopName, res, ingDescs, directBaseDescs)
	})
}

// PropagateIngredientChange recomputes the base items and products
// referencing the ingredient, which must already be persisted.
func (s *Service) PropagateIngredientChange(ctx context.Context, i *domain.Ingredient) (*Result, error) {
	return s.run(ctx, "ingredient", func(ctx context.Context, res *Result) error {
		desc := descriptor{
			id:        i.ID,
			basis:     i.CostBasis(),
			baseItems: activeRefIDs(i.RelatedBaseItemList),
			products:  activeRefIDs(i.RelatedProductList),
		}
		return s.cascade(ctx, i.ShopName, res, []descriptor{desc}, nil)
	})
}

// PropagateBaseItemChange recomputes the products referencing the base
// item, which must already be persisted.
func (s *Service) PropagateBaseItemChange(ctx context.Context, b *domain.BaseItem) (*Result, error) {
	return s.run(ctx, "base-item", func(ctx context.Context, res *Result) error {
		desc := descriptor{
			id:       b.ID,
			basis:    b.CostBasis(),
			products: activeRefIDs(b.RelatedProductList),
		}
		return s.cascade(ctx, b.ShopName, res, nil, []descriptor{desc})
	})
}

// cascade runs the upper waves: base items and products referencing the
// changed ingredients, a barrier, then products referencing the changed
// base items. A base item touched both directly and through an ingredient
// is persisted in each wave; the later wave re-reads it, so the final
// descriptor reflects every applied reprice.
func (s *Service) cascade(ctx context.Context, shopName string, res *Result, ingDescs, baseDescs []descriptor) error {
	baseGroups := make(map[int][]update)
	prodGroups := make(map[int][]update)
	for _, d := range ingDescs {
		u := update{childID: d.id, tier: domain.TierIngredient, basis: d.basis}
		for _, id := range d.baseItems {
			baseGroups[id] = append(baseGroups[id], u)
		}
		for _, id := range d.products {
			prodGroups[id] = append(prodGroups[id], u)
		}
	}

	var (
		waveBaseDescs    []descriptor
		baseIDs, prodIDs []int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		waveBaseDescs, baseIDs, err = s.updateBaseItems(gctx, shopName, baseGroups)
		return err
	})
	g.Go(func() error {
		var err error
		_, prodIDs, err = s.updateProducts(gctx, shopName, prodGroups)
		return err
	})
	waveErr := g.Wait()
	res.BaseItems = dedupInts(append(res.BaseItems, baseIDs...))
	res.Products = append(res.Products, prodIDs...)
	if waveErr != nil {
		return waveErr
	}

	finalGroups := make(map[int][]update)
	for _, d := range mergeDescriptors(baseDescs, waveBaseDescs) {
		u := update{childID: d.id, tier: domain.TierBaseItem, basis: d.basis}
		for _, id := range d.products {
			finalGroups[id] = append(finalGroups[id], u)
		}
	}
	_, finalProdIDs, err := s.updateProducts(ctx, shopName, finalGroups)
	res.Products = dedupInts(append(res.Products, finalProdIDs...))
	return err
}

func (s *Service) updateIngredients(ctx context.Context, shopName string, groups map[int][]update) ([]descriptor, []int, error) {
	return runWave(ctx, sortedKeys(groups), func(ctx context.Context, id int) (*outcome, error) {
		return s.updateOneIngredient(ctx, shopName, id, groups[id])
	})
}

func (s *Service) updateOneIngredient(ctx context.Context, shopName string, id int, updates []update) (*outcome, error) {
	i, err := s.repo.GetIngredient(ctx, shopName, id)
	if err != nil {
		return nil, err
	}

	changed := false
	for _, u := range updates {
		if costing.RepriceLines(i.RequiredMaterialList, u.childID, u.basis) {
			changed = true
		}
	}
	oldTotal := domain.Num(i.PricePerPrepare)
	total := costing.TotalActiveCost(i.RequiredMaterialList)
	if !changed && total.Equal(oldTotal) {
		return &outcome{}, nil
	}

	i.PricePerPrepare = domain.Str(total)
	if err := s.repo.PutIngredient(ctx, i); err != nil {
		return nil, err
	}

	out := &outcome{persisted: true}
	if !total.Equal(oldTotal) {
		out.desc = &descriptor{
			id:        i.ID,
			basis:     i.CostBasis(),
			baseItems: activeRefIDs(i.RelatedBaseItemList),
			products:  activeRefIDs(i.RelatedProductList),
		}
	}
	return out, nil
}

func (s *Service) updateBaseItems(ctx context.Context, shopName string, groups map[int][]update) ([]descriptor, []int, error) {
	return runWave(ctx, sortedKeys(groups), func(ctx context.Context, id int) (*outcome, error) {
		return s.updateOneBaseItem(ctx, shopName, id, groups[id])
	})
}

func (s *Service) updateOneBaseItem(ctx context.Context, shopName string, id int, updates []update) (*outcome, error) {
	b, err := s.repo.GetBaseItem(ctx, shopName, id)
	if err != nil {
		return nil, err
	}

	changed := false
	for _, u := range updates {
		switch u.tier {
		case domain.TierMaterial:
			if costing.RepriceLines(b.RequiredMaterialList, u.childID, u.basis) {
				changed = true
			}
		case domain.TierIngredient:
			if costing.RepriceLines(b.RequiredIngredientList, u.childID, u.basis) {
				changed = true
			}
		}
	}
	oldTotal := domain.Num(b.PricePerPrepare)
	total := costing.TotalActiveCost(b.RequiredIngredientList, b.RequiredMaterialList)
	if !changed && total.Equal(oldTotal) {
		return &outcome{}, nil
	}

	b.PricePerPrepare = domain.Str(total)
	if err := s.repo.PutBaseItem(ctx, b); err != nil {
		return nil, err
	}

	out := &outcome{persisted: true}
	if !total.Equal(oldTotal) {
		out.desc = &descriptor{
			id:       b.ID,
			basis:    b.CostBasis(),
			products: activeRefIDs(b.RelatedProductList),
		}
	}
	return out, nil
}

func (s *Service) updateProducts(ctx context.Context, shopName string, groups map[int][]update) ([]descriptor, []int, error) {
	return runWave(ctx, sortedKeys(groups), func(ctx context.Context, id int) (*outcome, error) {
		return s.updateOneProduct(ctx, shopName, id, groups[id])
	})
}

func (s *Service) updateOneProduct(ctx context.Context, shopName string, id int, updates []update) (*outcome, error) {
	p, err := s.repo.GetProduct(ctx, shopName, id)
	if err != nil {
		return nil, err
	}

	changed := false
	for _, u := range updates {
		switch u.tier {
		case domain.TierIngredient:
			if costing.RepriceLines(p.RequiredIngredientList, u.childID, u.basis) {
				changed = true
			}
		case domain.TierBaseItem:
			if costing.RepriceLines(p.RequiredBaseItemList, u.childID, u.basis) {
				changed = true
			}
		}
	}
	oldTotal := domain.Num(p.Cost)
	total := costing.TotalActiveCost(p.RequiredIngredientList, p.RequiredBaseItemList)
	if !changed && total.Equal(oldTotal) {
		return &outcome{}, nil
	}

	p.Cost = domain.Str(total)
	if err := s.repo.PutProduct(ctx, p); err != nil {
		return nil, err
	}
	return &outcome{persisted: true}, nil
}

// runWave recomputes a set of entities concurrently. Each goroutine writes
// only its own slot; persisted ids are collected afterwards, so a failing
// wave still reports what landed before the failure.
func runWave(ctx context.Context, ids []int, fn func(ctx context.Context, id int) (*outcome, error)) ([]descriptor, []int, error) {
	outcomes := make([]*outcome, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for idx, id := range ids {
		g.Go(func() error {
			out, err := fn(gctx, id)
			if err != nil {
				return err
			}
			outcomes[idx] = out
			return nil
		})
	}
	err := g.Wait()

	var descs []descriptor
	var persisted []int
	for idx, out := range outcomes {
		if out == nil {
			continue
		}
		if out.persisted {
			persisted = append(persisted, ids[idx])
		}
		if out.desc != nil {
			descs = append(descs, *out.desc)
		}
	}
	return descs, persisted, err
}

func (s *Service) run(ctx context.Context, origin string, fn func(context.Context, *Result) error) (*Result, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	res := &Result{}
	err := fn(ctx, res)

	metrics.PropagationDuration.Observe(time.Since(start).Seconds())
	metrics.PropagationUpdatedEntities.WithLabelValues("ingredient").Add(float64(len(res.Ingredients)))
	metrics.PropagationUpdatedEntities.WithLabelValues("base-item").Add(float64(len(res.BaseItems)))
	metrics.PropagationUpdatedEntities.WithLabelValues("product").Add(float64(len(res.Products)))

	if err != nil {
		metrics.PropagationRuns.WithLabelValues(origin, "error").Inc()
		log.Error("cost propagation failed",
			"origin", origin,
			"error", err,
			"ingredients", len(res.Ingredients),
			"base_items", len(res.BaseItems),
			"products", len(res.Products))
		return res, err
	}

	metrics.PropagationRuns.WithLabelValues(origin, "success").Inc()
	log.Info("cost propagation complete",
		"origin", origin,
		"ingredients", len(res.Ingredients),
		"base_items", len(res.BaseItems),
		"products", len(res.Products),
		"duration", time.Since(start))
	return res, nil
}

func activeRefIDs(refs []domain.BackReference) []int {
	var ids []int
	for _, ref := range refs {
		if ref.IsActive {
			ids = append(ids, ref.ID)
		}
	}
	return ids
}

func groupRefs(refs []domain.BackReference, u update) map[int][]update {
	groups := make(map[int][]update)
	for _, id := range activeRefIDs(refs) {
		groups[id] = append(groups[id], u)
	}
	return groups
}

// mergeDescriptors combines two waves' descriptors by id; the later wave
// re-read the record after the earlier wave's write, so it wins.
func mergeDescriptors(earlier, later []descriptor) []descriptor {
	byID := make(map[int]descriptor, len(earlier)+len(later))
	for _, d := range earlier {
		byID[d.id] = d
	}
	for _, d := range later {
		byID[d.id] = d
	}

	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]descriptor, 0, len(ids))
	for _, id := range ids {
		out = append(out, byID[id])
	}
	return out
}

func sortedKeys(m map[int][]update) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func dedupInts(ids []int) []int {
	if len(ids) == 0 {
		return ids
	}
	sort.Ints(ids)
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}
