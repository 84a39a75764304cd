package canvas

// Position represents graph-space coordinates for a node
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BlockKind identifies a palette block template (e.g., "blockA")
type BlockKind string

// Built-in block kinds offered by the default palette
const (
	BlockA BlockKind = "blockA"
	BlockB BlockKind = "blockB"
)

// Node represents a block instance placed on the canvas
type Node struct {
	ID       string    `json:"id"`       // Unique, assigned at creation
	Kind     BlockKind `json:"kind"`     // Block template, fixed at creation
	Position Position  `json:"position"` // Graph coordinates
	Label    string    `json:"label"`    // Derived from Kind
}

// Edge represents a directed connection between two nodes
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Connection is an edge candidate produced by a completed connect gesture
type Connection struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Block pairs a kind with its display label
type Block struct {
	Kind  BlockKind `json:"kind"  yaml:"kind"`
	Label string    `json:"label" yaml:"label"`
}

// DefaultFallbackLabel is used for kinds missing from the catalog.
// The default palette labels everything that is not Block A as Block B.
const DefaultFallbackLabel = "Block B"

// Catalog maps block kinds to display labels. Lookup never fails: unknown
// kinds resolve to the fallback label.
type Catalog struct {
	labels   map[BlockKind]string
	order    []BlockKind
	fallback string
}

// NewCatalog creates a catalog from blocks in palette order
func NewCatalog(fallback string, blocks ...Block) *Catalog {
	c := &Catalog{
		labels:   make(map[BlockKind]string, len(blocks)),
		fallback: fallback,
	}
	for _, b := range blocks {
		if _, exists := c.labels[b.Kind]; !exists {
			c.order = append(c.order, b.Kind)
		}
		c.labels[b.Kind] = b.Label
	}
	return c
}

// DefaultCatalog returns the two-block palette
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultFallbackLabel,
		Block{Kind: BlockA, Label: "Block A"},
		Block{Kind: BlockB, Label: "Block B"},
	)
}

// Label returns the display label for kind
func (c *Catalog) Label(kind BlockKind) string {
	if label, ok := c.labels[kind]; ok {
		return label
	}
	return c.fallback
}

// Known reports whether kind is part of the palette
func (c *Catalog) Known(kind BlockKind) bool {
	_, ok := c.labels[kind]
	return ok
}

// Blocks returns the palette in declaration order
func (c *Catalog) Blocks() []Block {
	blocks := make([]Block, 0, len(c.order))
	for _, kind := range c.order {
		blocks = append(blocks, Block{Kind: kind, Label: c.labels[kind]})
	}
	return blocks
}
