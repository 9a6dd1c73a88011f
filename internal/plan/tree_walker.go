package plan

import (
	"fmt"
	"strings"
)

// WalkTree recursively walks the plan tree, calling visitor for each node
func WalkTree(node Node, visitor func(Node) error) error {
	if node == nil {
		return nil
	}

	// Visit current node
	if err := visitor(node); err != nil {
		return err
	}

	// Recursively visit children
	for _, child := range node.Children() {
		if err := WalkTree(child, visitor); err != nil {
			return err
		}
	}

	return nil
}

// ReplaceChild returns a new parent with the child at index swapped for
// newChild. The other children are shared by reference, never copied, and
// the new parent is re-validated the same way the constructors validate.
func ReplaceChild(parent Node, index int, newChild Node) (Node, error) {
	switch n := parent.(type) {
	case *Filter:
		if index != 0 {
			return nil, fmt.Errorf("FILTER has one child, index %d out of range", index)
		}
		return NewFilter(n.Predicate, newChild)
	case *Project:
		if index != 0 {
			return nil, fmt.Errorf("PROJECT has one child, index %d out of range", index)
		}
		return NewProject(n.Exprs, newChild)
	case *Join:
		switch index {
		case 0:
			return NewJoin(n.Kind, n.Condition, newChild, n.Right)
		case 1:
			return NewJoin(n.Kind, n.Condition, n.Left, newChild)
		default:
			return nil, fmt.Errorf("JOIN has two children, index %d out of range", index)
		}
	case *Scan:
		return nil, fmt.Errorf("SCAN has no children to replace")
	}
	return nil, fmt.Errorf("unknown node type %T", parent)
}

// Describe renders one node with its interesting attributes
func Describe(node Node) string {
	switch n := node.(type) {
	case *Scan:
		return fmt.Sprintf("SCAN %s %s", n.Relation, n.Cols)
	case *Filter:
		return fmt.Sprintf("FILTER %s", n.Predicate)
	case *Project:
		parts := make([]string, len(n.Exprs))
		for i, e := range n.Exprs {
			parts[i] = e.String()
		}
		return fmt.Sprintf("PROJECT [%s]", strings.Join(parts, ", "))
	case *Join:
		return fmt.Sprintf("%s ON %s", n.Kind, n.Condition)
	}
	return node.NodeType()
}

// PrintTree prints the plan tree with indentation
func PrintTree(node Node) string {
	result := ""
	printTreeHelper(node, 0, &result)
	return result
}

func printTreeHelper(node Node, depth int, result *string) {
	if node == nil {
		return
	}

	// Print current node with indentation
	indent := strings.Repeat("  ", depth)
	*result += fmt.Sprintf("%s%s\n", indent, Describe(node))

	// Recursively print children
	for _, child := range node.Children() {
		printTreeHelper(child, depth+1, result)
	}
}

// CountNodes counts the total number of nodes in the tree
func CountNodes(node Node) int {
	if node == nil {
		return 0
	}

	count := 1 // Count current node
	for _, child := range node.Children() {
		count += CountNodes(child)
	}

	return count
}
