package model

// Section is a named structural node in the document hierarchy: a chapter
// at level 1, a subsection at level 2. Nesting depth is bounded at two
// levels; the chapter builder never produces deeper trees.
type Section struct {
	// Title is the section name, promoted from a heading line. Never
	// empty: sections created without a heading carry a synthetic title.
	Title string

	// Level is 1 for chapters, 2 for subsections
	Level int

	// Blocks are the section's own content blocks in document order
	Blocks []ContentBlock

	// Subsections are nested level-2 sections
	Subsections []*Section

	// Synthetic marks sections the builder fabricated because content
	// appeared with no owning heading
	Synthetic bool
}

// AddBlock appends a content block to the section.
func (s *Section) AddBlock(b ContentBlock) {
	s.Blocks = append(s.Blocks, b)
}

// AllBlocks returns the section's blocks followed by those of its
// subsections, in document order.
func (s *Section) AllBlocks() []*ContentBlock {
	var blocks []*ContentBlock
	for i := range s.Blocks {
		blocks = append(blocks, &s.Blocks[i])
	}
	for _, sub := range s.Subsections {
		blocks = append(blocks, sub.AllBlocks()...)
	}
	return blocks
}

// BlockCount returns the number of blocks in the section and its
// subsections.
func (s *Section) BlockCount() int {
	n := len(s.Blocks)
	for _, sub := range s.Subsections {
		n += sub.BlockCount()
	}
	return n
}
