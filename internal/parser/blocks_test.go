package parser

import "testing"

func TestSplitBlocks(t *testing.T) {
	t.Run("flat blocks", func(t *testing.T) {
		blocks := splitBlocks("- first\n- second\n")
		if len(blocks) != 2 {
			t.Fatalf("expected 2 blocks, got %d", len(blocks))
		}
		if blocks[0].content != "first" {
			t.Errorf("expected 'first', got %q", blocks[0].content)
		}
		if blocks[1].content != "second\n" {
			t.Errorf("expected 'second\\n', got %q", blocks[1].content)
		}
	})

	t.Run("tab nesting depth", func(t *testing.T) {
		blocks := splitBlocks("- a\n\t- b\n\t\t- c\n")
		depths := []int{0, 1, 2}
		if len(blocks) != 3 {
			t.Fatalf("expected 3 blocks, got %d", len(blocks))
		}
		for i, d := range depths {
			if blocks[i].depth != d {
				t.Errorf("block %d: expected depth %d, got %d", i, d, blocks[i].depth)
			}
		}
	})

	t.Run("space nesting depth", func(t *testing.T) {
		blocks := splitBlocks("- a\n    - b\n")
		if blocks[1].depth != 1 {
			t.Errorf("expected depth 1 for 4-space indent, got %d", blocks[1].depth)
		}
	})

	t.Run("continuation lines dedent", func(t *testing.T) {
		blocks := splitBlocks("- first\n  more text\n")
		if len(blocks) != 1 {
			t.Fatalf("expected 1 block, got %d", len(blocks))
		}
		if blocks[0].content != "first\nmore text\n" {
			t.Errorf("got %q", blocks[0].content)
		}
	})

	t.Run("dash inside text is no boundary", func(t *testing.T) {
		blocks := splitBlocks("- well-known name\n")
		if len(blocks) != 1 {
			t.Fatalf("expected 1 block, got %d", len(blocks))
		}
	})

	t.Run("dash without following space at line start is a boundary", func(t *testing.T) {
		blocks := splitBlocks("- a\n-\n")
		if len(blocks) != 2 {
			t.Fatalf("expected 2 blocks, got %d", len(blocks))
		}
	})

	t.Run("leading text becomes bare block", func(t *testing.T) {
		blocks := splitBlocks("preamble\n- item\n")
		if len(blocks) != 2 {
			t.Fatalf("expected 2 blocks, got %d", len(blocks))
		}
		if !blocks[0].bare {
			t.Error("expected first block to be bare")
		}
		if blocks[0].content != "preamble" {
			t.Errorf("expected 'preamble', got %q", blocks[0].content)
		}
	})

	t.Run("blank-only input yields no blocks", func(t *testing.T) {
		if blocks := splitBlocks("\n\n  \n"); len(blocks) != 0 {
			t.Errorf("expected no blocks, got %d", len(blocks))
		}
	})

	t.Run("blank line inside block stays in content", func(t *testing.T) {
		blocks := splitBlocks("- a\n\n- b\n")
		if len(blocks) != 2 {
			t.Fatalf("expected 2 blocks, got %d", len(blocks))
		}
		if blocks[0].content != "a\n" {
			t.Errorf("expected 'a\\n', got %q", blocks[0].content)
		}
	})
}

func TestAssemble(t *testing.T) {
	t.Run("nesting and siblings", func(t *testing.T) {
		nodes := assemble(splitBlocks("- a\n\t- b\n\t- c\n- d\n"))
		if len(nodes) != 2 {
			t.Fatalf("expected 2 roots, got %d", len(nodes))
		}
		if len(nodes[0].children) != 2 {
			t.Fatalf("expected 2 children under first root, got %d", len(nodes[0].children))
		}
		if nodes[0].children[1].block.content != "c\n" {
			t.Errorf("got %q", nodes[0].children[1].block.content)
		}
	})

	t.Run("depth drop of two levels", func(t *testing.T) {
		nodes := assemble(splitBlocks("- a\n\t- b\n\t\t- c\n- d\n"))
		if len(nodes) != 2 {
			t.Fatalf("expected 2 roots, got %d", len(nodes))
		}
		if nodes[1].block.content != "d\n" {
			t.Errorf("expected 'd\\n' as second root, got %q", nodes[1].block.content)
		}
	})

	t.Run("orphan depth attaches to nearest lower ancestor", func(t *testing.T) {
		nodes := assemble(splitBlocks("- a\n\t\t- deep\n\t- b\n"))
		if len(nodes) != 1 {
			t.Fatalf("expected 1 root, got %d", len(nodes))
		}
		if len(nodes[0].children) != 2 {
			t.Fatalf("expected both nested blocks under the root, got %d", len(nodes[0].children))
		}
	})
}
