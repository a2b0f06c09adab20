package entity

// FieldStatus records whether one tracked field was populated, its value,
// and how much it counts towards the completeness score.
type FieldStatus struct {
	Present bool   `json:"present"`
	Value   any    `json:"value"`
	Weight  int    `json:"weight"`
}

// MissingField describes one tracked field that was not populated.
type MissingField struct {
	Field       string `json:"field"`
	Description string `json:"description"`
	Weight      int    `json:"weight"`
}

// ValidationReport is the weighted completeness and reconciliation summary
// of an extracted invoice. Score is achieved weight over total weight, as a
// rounded percentage in [0,100].
type ValidationReport struct {
	Complete          bool                   `json:"complete"`
	CompletenessScore int                    `json:"completeness_score"`
	MissingFields     []MissingField         `json:"missing_fields"`
	Warnings          []string               `json:"warnings"`
	FieldStatus       map[string]FieldStatus `json:"field_status"`
}
