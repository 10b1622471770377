package category

import (
	"strings"

	"medcast/internal/models"
)

// SelectOption is a category reduced to what a picker needs.
type SelectOption struct {
	ID    string               `json:"id"`
	Name  string               `json:"name"`
	Level models.CategoryLevel `json:"level"`
}

// Categories returns a copy of the flat snapshot.
func (c *Coordinator) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Get returns the snapshot entry with the given id.
func (c *Coordinator) Get(id string) (models.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return findByID(c.categories, id)
}

// Tree returns the derived two-level tree, inactive nodes included.
func (c *Coordinator) Tree() []TreeNode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tree
}

// PublicTree returns the tree visible to public browsing surfaces:
// active categories only.
func (c *Coordinator) PublicTree() []TreeNode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ActiveTree(c.categories)
}

// Stats derives aggregate counts from the current snapshot.
func (c *Coordinator) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ComputeStats(c.categories)
}

// Options lists active categories as picker options, optionally filtered to
// one level, ordered like the tree.
func (c *Coordinator) Options(level *models.CategoryLevel) []SelectOption {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var ordered []models.Category
	for _, node := range BuildTree(c.categories) {
		ordered = append(ordered, node.Category)
		for _, child := range node.Children {
			ordered = append(ordered, child.Category)
		}
	}

	opts := make([]SelectOption, 0, len(ordered))
	for _, cat := range ordered {
		if !cat.IsActive {
			continue
		}
		if level != nil && models.LevelFor(cat.ParentID) != *level {
			continue
		}
		opts = append(opts, SelectOption{ID: cat.ID, Name: cat.Name, Level: models.LevelFor(cat.ParentID)})
	}
	return opts
}

// SubcategoryOptions lists the active children of a primary category,
// ordered by sort order.
func (c *Coordinator) SubcategoryOptions(parentID string) []SelectOption {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var children []models.Category
	for _, cat := range c.categories {
		if cat.ParentID != nil && *cat.ParentID == parentID && cat.IsActive {
			children = append(children, cat)
		}
	}
	sortCategories(children)

	opts := make([]SelectOption, 0, len(children))
	for _, cat := range children {
		opts = append(opts, SelectOption{ID: cat.ID, Name: cat.Name, Level: models.LevelSecondary})
	}
	return opts
}

// Path renders the display path for a category and optional subcategory,
// e.g. "Cardiology / Arrhythmia". Unknown ids yield an empty string.
func (c *Coordinator) Path(categoryID, subcategoryID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	primary, ok := findByID(c.categories, categoryID)
	if !ok {
		return ""
	}
	if subcategoryID == "" {
		return primary.Name
	}
	sub, ok := findByID(c.categories, subcategoryID)
	if !ok || sub.ParentID == nil || *sub.ParentID != primary.ID {
		return ""
	}
	return strings.Join([]string{primary.Name, sub.Name}, " / ")
}

// Loading reports whether a refresh is in flight.
func (c *Coordinator) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Degraded reports whether the snapshot is the built-in seed set served
// because the backing store could not be reached.
func (c *Coordinator) Degraded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.degraded
}

// LastError returns the most recent store failure, cleared by the next
// successful operation.
func (c *Coordinator) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}
