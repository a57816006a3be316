// Package backref keeps child back-reference lists in step with parent
// recipes. Every active recipe line (parent -> child) must be mirrored by
// exactly one active entry carrying the parent's id in the child's
// related_<parent>_list; this is what lets cost changes walk upward.
package backref

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/neo0222/ftf-backoffice/internal/domain"
	"github.com/neo0222/ftf-backoffice/internal/repository"
)

// Parent identifies the entity whose recipe is being reconciled into its
// children's back-reference lists.
type Parent struct {
	Tier            domain.Tier
	ID              int
	Name            string
	PreparationType string
}

type Reconciler struct {
	store repository.Store
}

func NewReconciler(store repository.Store) *Reconciler {
	return &Reconciler{store: store}
}

// childLists mirrors only the back-reference lists of a child record.
type childLists struct {
	RelatedIngredientList []domain.BackReference `json:"related_ingredient_list"`
	RelatedBaseItemList   []domain.BackReference `json:"related_base_item_list"`
	RelatedProductList    []domain.BackReference `json:"related_product_list"`
}

func (c *childLists) list(field string) []domain.BackReference {
	switch field {
	case repository.FieldRelatedIngredientList:
		return c.RelatedIngredientList
	case repository.FieldRelatedBaseItemList:
		return c.RelatedBaseItemList
	case repository.FieldRelatedProductList:
		return c.RelatedProductList
	}
	return nil
}

// Reconcile updates every referenced child of one tier: unspent children get
// their matching active entry deactivated, submitted children get theirs
// overwritten or appended. Each child is persisted through a partial update
// of the single list field named by the parent's tier, so concurrent writes
// to other fields of the child are never clobbered.
func (r *Reconciler) Reconcile(ctx context.Context, shopName string, childType domain.FoodType, parent Parent, unspent, submitted []domain.RecipeLine) error {
	field := repository.RelatedListField(parent.Tier)
	if field == "" {
		return fmt.Errorf("%w: tier %q has no back-reference list", domain.ErrInvalidInput, parent.Tier)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, line := range unspent {
		g.Go(func() error {
			return r.deactivate(ctx, shopName, childType, field, parent.ID, line.ID)
		})
	}
	for _, line := range submitted {
		g.Go(func() error {
			return r.upsert(ctx, shopName, childType, field, parent, line)
		})
	}
	return g.Wait()
}

func (r *Reconciler) loadList(ctx context.Context, shopName string, childType domain.FoodType, childID int, field string) ([]domain.BackReference, error) {
	record, err := r.store.Get(ctx, shopName, childType, childID)
	if err != nil {
		return nil, err
	}
	var lists childLists
	if err := json.Unmarshal(record, &lists); err != nil {
		return nil, fmt.Errorf("decode %s %d: %w", childType, childID, err)
	}
	return lists.list(field), nil
}

func (r *Reconciler) deactivate(ctx context.Context, shopName string, childType domain.FoodType, field string, parentID, childID int) error {
	list, err := r.loadList(ctx, shopName, childType, childID, field)
	if err != nil {
		return err
	}

	changed := false
	for i := range list {
		if list[i].ID == parentID && list[i].IsActive {
			list[i].IsActive = false
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return repository.UpdateListField(ctx, r.store, shopName, childType, childID, field, list)
}

func (r *Reconciler) upsert(ctx context.Context, shopName string, childType domain.FoodType, field string, parent Parent, line domain.RecipeLine) error {
	list, err := r.loadList(ctx, shopName, childType, line.ID, field)
	if err != nil {
		return err
	}

	entry := domain.BackReference{
		ID:              parent.ID,
		Name:            parent.Name,
		Amount:          line.Amount,
		MeasureUnit:     line.MeasureUnit,
		PreparationType: parent.PreparationType,
		IsActive:        line.IsActive,
	}

	found := false
	for i := range list {
		if list[i].ID == parent.ID {
			list[i] = entry
			found = true
		}
	}
	if !found {
		list = append(list, entry)
	}
	return repository.UpdateListField(ctx, r.store, shopName, childType, line.ID, field, list)
}
