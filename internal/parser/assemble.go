package parser

// blockNode is one assembled outline node before inline parsing.
type blockNode struct {
	block    rawBlock
	children []*blockNode
}

// assemble attaches each block to the most recent block with strictly lower
// depth, producing one tree per indentation run. Equal depths become
// siblings; a depth that drops by more than one level attaches to the
// nearest ancestor with lower depth.
//
// The walk keeps an explicit ancestor stack instead of recursing, so
// document depth is bounded only by memory.
func assemble(blocks []rawBlock) []*blockNode {
	var roots []*blockNode
	var stack []*blockNode

	for i := range blocks {
		node := &blockNode{block: blocks[i]}

		for len(stack) > 0 && stack[len(stack)-1].block.depth >= node.block.depth {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, node)
		}
		stack = append(stack, node)
	}

	return roots
}
