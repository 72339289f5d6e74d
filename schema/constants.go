package schema

// Custom string types for type safety.
type (
	// ComponentKey represents keys used in component scoring and weighting.
	ComponentKey string

	// Stage represents the PMF stage derived from the composite score.
	Stage string

	// QualityLabel represents the coarse data-quality bucket.
	QualityLabel string

	// DisplayMode represents how the score is presented to the end user.
	DisplayMode string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// Component keys used in scoring and weighting.
const (
	ComponentProblem   ComponentKey = "problem_score"
	ComponentPersona   ComponentKey = "persona_score"
	ComponentSolution  ComponentKey = "solution_score"
	ComponentMarket    ComponentKey = "market_score"
	ComponentRetention ComponentKey = "retention_score"
)

// All PMF stages, ordered from weakest to strongest signal.
const (
	StageProblemDiscovery   Stage = "Problem Discovery"
	StageProblemSolutionFit Stage = "Problem/Solution Fit"
	StagePMFInProgress      Stage = "Product/Market Fit (In Progress)"
	StagePMFAchieved        Stage = "PMF Achieved"
)

// All quality labels supported.
const (
	QualityVeryLow QualityLabel = "very_low"
	QualityMedium  QualityLabel = "medium"
	QualityHigh    QualityLabel = "high"
)

// All display modes supported.
const (
	DisplayNormal    DisplayMode = "normal"
	DisplayReference DisplayMode = "reference"
	DisplayInvalid   DisplayMode = "invalid"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllComponentKeys lists the five component keys in report order.
var AllComponentKeys = []ComponentKey{
	ComponentProblem,
	ComponentPersona,
	ComponentSolution,
	ComponentMarket,
	ComponentRetention,
}

// ValidQualityLabels lists all valid quality labels.
var ValidQualityLabels = map[QualityLabel]struct{}{
	QualityVeryLow: {},
	QualityMedium:  {},
	QualityHigh:    {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// DefaultWeights returns the default weight table. Callers receive a fresh
// copy so the defaults can never be mutated.
func DefaultWeights() WeightTable {
	return WeightTable{
		ComponentProblem:   0.20,
		ComponentPersona:   0.10,
		ComponentSolution:  0.25,
		ComponentMarket:    0.25,
		ComponentRetention: 0.20,
	}
}

// StageForScore maps a composite score to its stage. Boundary values belong
// to the lower-labeled bucket.
func StageForScore(score float64) Stage {
	switch {
	case score <= 40.0:
		return StageProblemDiscovery
	case score <= 60.0:
		return StageProblemSolutionFit
	case score <= 80.0:
		return StagePMFInProgress
	default:
		return StagePMFAchieved
	}
}

// LabelForQuality maps a quality score to its label.
func LabelForQuality(score int) QualityLabel {
	switch {
	case score < 25:
		return QualityVeryLow
	case score < 60:
		return QualityMedium
	default:
		return QualityHigh
	}
}
