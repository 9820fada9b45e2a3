// internal/workers/dynamics/compute-state-distance/models.go
package computestatedistance

type Input struct {
	StateA string `json:"stateA"`
	StateB string `json:"stateB"`
}

// Output carries stateB minus stateA for every parameter.
type Output struct {
	StateA            string             `json:"stateA"`
	StateB            string             `json:"stateB"`
	EuclideanDistance float64            `json:"euclideanDistance"`
	Differences       map[string]float64 `json:"differences"`
	Semantics         map[string]string  `json:"parameterSemantics"`
}
