package canvas

import "strconv"

// Default identifier prefixes
const (
	NodeIDPrefix = "node_"
	EdgeIDPrefix = "edge_"
)

// IDGenerator issues identifiers from a monotonically increasing counter
// seeded at 0. It has a single-writer contract and is not safe for
// concurrent use.
type IDGenerator struct {
	prefix string
	next   uint64
}

// NewIDGenerator creates a generator producing "<prefix><n>"
func NewIDGenerator(prefix string) *IDGenerator {
	return &IDGenerator{prefix: prefix}
}

// Next returns a fresh identifier
func (g *IDGenerator) Next() string {
	id := g.prefix + strconv.FormatUint(g.next, 10)
	g.next++
	return id
}

// Reset rewinds the counter to 0. Only meant for starting a fresh session;
// identifiers issued before the reset may be produced again.
func (g *IDGenerator) Reset() {
	g.next = 0
}
