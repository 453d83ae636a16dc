package models

// AnalysisResult is the outcome of an end-of-life threshold scan.
//
// When Reached is false the trajectory never dropped below the threshold and
// CrossingIndex is clamped to the last index. That value is a horizon, not a
// prediction, and must not be presented as one.
type AnalysisResult struct {
	CrossingIndex int     `json:"crossing_index"`
	CrossingCycle int     `json:"crossing_cycle"`
	CrossingValue float64 `json:"crossing_value"`
	Reached       bool    `json:"reached"`
}
