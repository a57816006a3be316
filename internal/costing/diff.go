package costing

import "github.com/neo0222/ftf-backoffice/internal/domain"

// Unspent returns the previously persisted lines whose child id is absent
// from the submission, each forced inactive. They stay on the record as
// history instead of being dropped.
func Unspent(previous, submitted []domain.RecipeLine) []domain.RecipeLine {
	submittedIDs := make(map[int]struct{}, len(submitted))
	for _, line := range submitted {
		submittedIDs[line.ID] = struct{}{}
	}

	var unspent []domain.RecipeLine
	for _, line := range previous {
		if _, ok := submittedIDs[line.ID]; ok {
			continue
		}
		line.IsActive = false
		unspent = append(unspent, line)
	}
	return unspent
}

// Merge concatenates unspent history ahead of the submitted lines, yielding
// the recipe list to persist.
func Merge(unspent, submitted []domain.RecipeLine) []domain.RecipeLine {
	merged := make([]domain.RecipeLine, 0, len(unspent)+len(submitted))
	merged = append(merged, unspent...)
	merged = append(merged, submitted...)
	return merged
}

// ForceActive marks every line active, in place. Registration treats all
// submitted lines as live regardless of the flag the client sent.
func ForceActive(lines []domain.RecipeLine) {
	for i := range lines {
		lines[i].IsActive = true
	}
}

// SplitByFoodType partitions a mixed submission into the lines of one child
// tier. Lines without a food_type belong to the tier the caller treats as
// default; pass defaultType equal to want for them to match.
func SplitByFoodType(lines []domain.RecipeLine, want, defaultType domain.FoodType) []domain.RecipeLine {
	var out []domain.RecipeLine
	for _, line := range lines {
		ft := line.FoodType
		if ft == "" {
			ft = defaultType
		}
		if ft == want {
			out = append(out, line)
		}
	}
	return out
}
