package category

import (
	"sort"

	"medcast/internal/models"
)

// TreeNode is a primary category together with its ordered secondary
// children. Children of children never exist; the hierarchy is exactly two
// levels deep.
type TreeNode struct {
	models.Category
	Children []TreeNode `json:"children"`
}

// BuildTree assembles the flat collection into an ordered two-level tree.
// Primaries and children are both ordered by ascending SortOrder, ties
// broken by ID, so identical input yields identical output regardless of
// input order. Inactive categories are included; callers filter separately.
// A secondary category whose declared parent is absent (an orphan) is
// dropped from the tree but remains in the flat collection.
func BuildTree(flat []models.Category) []TreeNode {
	childrenByParent := make(map[string][]models.Category)
	var primaries []models.Category

	for _, c := range flat {
		if c.IsPrimary() {
			primaries = append(primaries, c)
		} else {
			childrenByParent[*c.ParentID] = append(childrenByParent[*c.ParentID], c)
		}
	}

	sortCategories(primaries)

	tree := make([]TreeNode, 0, len(primaries))
	for _, p := range primaries {
		children := childrenByParent[p.ID]
		sortCategories(children)

		node := TreeNode{Category: p, Children: make([]TreeNode, 0, len(children))}
		for _, child := range children {
			node.Children = append(node.Children, TreeNode{Category: child, Children: []TreeNode{}})
		}
		tree = append(tree, node)
	}
	return tree
}

// ActiveTree builds the tree visible on public browsing surfaces: inactive
// primaries are omitted along with their entire subtree, and inactive
// children are omitted from active primaries.
func ActiveTree(flat []models.Category) []TreeNode {
	full := BuildTree(flat)
	tree := make([]TreeNode, 0, len(full))
	for _, node := range full {
		if !node.IsActive {
			continue
		}
		kept := make([]TreeNode, 0, len(node.Children))
		for _, child := range node.Children {
			if child.IsActive {
				kept = append(kept, child)
			}
		}
		node.Children = kept
		tree = append(tree, node)
	}
	return tree
}

// sortCategories orders siblings by SortOrder ascending, ties broken by ID.
func sortCategories(cats []models.Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].SortOrder != cats[j].SortOrder {
			return cats[i].SortOrder < cats[j].SortOrder
		}
		return cats[i].ID < cats[j].ID
	})
}
