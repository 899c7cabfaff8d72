package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

func sliceContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := int(node.StartByte())
	end := int(node.EndByte())
	if start < 0 || end < start || end > len(source) {
		return ""
	}
	return string(source[start:end])
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child != nil && !isIgnorableNode(child) {
			return child
		}
	}
	return nil
}

// operatorText returns the leading unnamed token of a unary expression.
func operatorText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.IsNamed() {
			continue
		}
		return sliceContent(child, source)
	}
	return ""
}

func hasMutableSpecifier(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child != nil && child.Kind() == "mutable_specifier" {
			return true
		}
	}
	return false
}

func isIgnorableNode(node *sitter.Node) bool {
	switch node.Kind() {
	case "line_comment", "block_comment":
		return true
	default:
		return false
	}
}
