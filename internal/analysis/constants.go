package analysis

// Detection parameters. These are fixed; the algorithm is not configurable.
const (
	// InferenceSampleSize is how many leading data rows are inspected to decide
	// whether a column is numeric.
	InferenceSampleSize = 10

	// NumericRatio is the minimum share of sampled cells that must parse as
	// numbers. The comparison is inclusive (7 of 10 qualifies).
	NumericRatio = 0.7

	// ZScoreThreshold is exceeded strictly: a value exactly 3 standard
	// deviations from the mean is not flagged.
	ZScoreThreshold = 3.0

	// NoiseProbability is the chance that a row not flagged by the Z-score
	// check is flagged anyway. Detection output is not deterministic.
	NoiseProbability = 0.01
)
