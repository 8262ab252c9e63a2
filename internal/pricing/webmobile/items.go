package webmobile

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/Simplici0/estimator/internal/pricing"
)

var (
	ErrItemNotFound    = errors.New("third-party item not found")
	ErrDuplicateItemID = errors.New("duplicate third-party item id")
)

// newItemID is swapped in tests.
var newItemID = func() string { return uuid.NewString() }

// AddThirdPartyItem appends an empty item with a fresh id and returns it.
func (in *Inputs) AddThirdPartyItem() ThirdPartyItem {
	item := ThirdPartyItem{ID: newItemID()}
	for in.findItem(item.ID) >= 0 {
		item.ID = newItemID()
	}

	items := slices.Clone(in.ThirdPartyItems)
	in.ThirdPartyItems = append(items, item)
	return item
}

// SetThirdPartyItems replaces the item list. Items without an id get a fresh
// one; a repeated id rejects the whole list and leaves in unchanged.
func (in *Inputs) SetThirdPartyItems(items []ThirdPartyItem) error {
	taken := make(map[string]bool, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		if taken[item.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateItemID, item.ID)
		}
		taken[item.ID] = true
	}

	next := make([]ThirdPartyItem, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			item.ID = newItemID()
			for taken[item.ID] {
				item.ID = newItemID()
			}
			taken[item.ID] = true
		}
		item.Cost = pricing.Clamp(item.Cost)
		next = append(next, item)
	}
	in.ThirdPartyItems = next
	return nil
}

// ThirdPartyPatch carries the fields of an item update; nil fields are kept.
type ThirdPartyPatch struct {
	Name *string
	Cost *float64
}

// UpdateThirdPartyItem applies patch to the item with the given id.
func (in *Inputs) UpdateThirdPartyItem(id string, patch ThirdPartyPatch) (ThirdPartyItem, error) {
	idx := in.findItem(id)
	if idx < 0 {
		return ThirdPartyItem{}, fmt.Errorf("%w: %q", ErrItemNotFound, id)
	}

	items := slices.Clone(in.ThirdPartyItems)
	if patch.Name != nil {
		items[idx].Name = *patch.Name
	}
	if patch.Cost != nil {
		items[idx].Cost = pricing.Clamp(*patch.Cost)
	}
	in.ThirdPartyItems = items
	return items[idx], nil
}

// RemoveThirdPartyItem drops the item with the given id.
func (in *Inputs) RemoveThirdPartyItem(id string) error {
	if in.findItem(id) < 0 {
		return fmt.Errorf("%w: %q", ErrItemNotFound, id)
	}
	in.ThirdPartyItems = slices.DeleteFunc(slices.Clone(in.ThirdPartyItems), func(item ThirdPartyItem) bool {
		return item.ID == id
	})
	return nil
}

func checkUniqueIDs(items []ThirdPartyItem) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateItemID, item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

func (in *Inputs) findItem(id string) int {
	return slices.IndexFunc(in.ThirdPartyItems, func(item ThirdPartyItem) bool {
		return item.ID == id
	})
}
