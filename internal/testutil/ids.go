package testutil

// FixedIDGenerator generates the same submission ID every time.
//
// This enables deterministic assertions on receipts and log output.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a new fixed ID generator.
// If id is empty, Generate() returns "test-submission".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-submission"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed ID.
//
// Implements intake.IDGenerator interface.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
