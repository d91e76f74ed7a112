package content

import (
	"errors"
	"fmt"
	"sort"
)

var ErrItemNotFound = errors.New("item not found")

// ItemValidator checks a batch of items before they are served.
type ItemValidator interface {
	ValidateItems(items []ItemContent) error
}

// Catalog indexes the stimulus items available to new sessions.
type Catalog struct {
	items map[string]ItemContent
}

// NewCatalog validates items and indexes them by ItemID.
func NewCatalog(items []ItemContent, validator ItemValidator) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("stimulus catalog is empty")
	}
	if validator != nil {
		if err := validator.ValidateItems(items); err != nil {
			return nil, fmt.Errorf("invalid stimulus catalog: %w", err)
		}
	}

	indexed := make(map[string]ItemContent, len(items))
	for _, item := range items {
		if _, exists := indexed[item.ItemID]; exists {
			return nil, fmt.Errorf("duplicate item_id %q in stimulus catalog", item.ItemID)
		}
		indexed[item.ItemID] = item
	}

	return &Catalog{items: indexed}, nil
}

// Lookup returns the store for itemID.
func (c *Catalog) Lookup(itemID string) (Store, error) {
	item, ok := c.items[itemID]
	if !ok {
		return nil, fmt.Errorf("item_id %q: %w", itemID, ErrItemNotFound)
	}
	return NewStore(item), nil
}

// IDs lists the catalog's item identifiers in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Catalog) Len() int {
	return len(c.items)
}
