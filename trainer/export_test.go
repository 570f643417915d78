package trainer

// Test bridge for the unexported RNG helpers. Compiled only with the
// package's tests, so the production API stays unchanged.
var (
	ExportedRNGFromSeed  = rngFromSeed
	ExportedDeriveSeed   = deriveSeed
	ExportedShuffleEdges = shuffleEdges
)

// Exported stream identifiers for deriveSeed.
const (
	ExportedStreamInit  = streamInit
	ExportedStreamTrain = streamTrain
)
