package domain

type PercentageInput struct {
	Value   float64 `json:"value" form:"value"`
	Percent float64 `json:"percent" form:"percent"`
	From    float64 `json:"from" form:"from"`
	To      float64 `json:"to" form:"to"`
}

type PercentageResult struct {
	PercentOf     float64  `json:"percent_of"`
	PercentChange *float64 `json:"percent_change,omitempty"`
}
