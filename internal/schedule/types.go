package schedule

// Schedule is the flat, controller-ready form of a validated recipe
type Schedule struct {
	RecipeID     string  `json:"recipe_id" yaml:"recipe_id"`
	Fingerprint  string  `json:"fingerprint" yaml:"fingerprint"`
	TotalSeconds float64 `json:"total_seconds" yaml:"total_seconds"`
	Steps        []Row   `json:"steps" yaml:"steps"`
}

// Row is one recipe step with its resolved timing
type Row struct {
	Index           int               `json:"index" yaml:"index"`
	Action          int16             `json:"action" yaml:"action"`
	Name            string            `json:"name" yaml:"name"`
	StartSeconds    float64           `json:"start_seconds" yaml:"start_seconds"`
	DurationSeconds float64           `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`
	LongLasting     bool              `json:"long_lasting,omitempty" yaml:"long_lasting,omitempty"`
	LoopDepth       int               `json:"loop_depth" yaml:"loop_depth"`
	Iterations      int               `json:"iterations,omitempty" yaml:"iterations,omitempty"` // loop openers only
	LoopEnd         *int              `json:"loop_end,omitempty" yaml:"loop_end,omitempty"`     // loop openers only
	Properties      map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}
