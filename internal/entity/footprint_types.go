package entity

// FootprintQueryResponse wraps a Footprint Analytics card query result. Rows
// come back positionally, described by the cols header.
type FootprintQueryResponse struct {
	Data FootprintQueryData `json:"data"`
}

// FootprintQueryData holds the column headers and the raw row tuples.
type FootprintQueryData struct {
	Cols []FootprintColumn `json:"cols"`
	Rows [][]any           `json:"rows"`
}

// FootprintColumn describes one positional column of a card result.
type FootprintColumn struct {
	DisplayName string `json:"display_name"`
}

// FootprintReserveRow is a parsed row of the LayerBank reserves card:
// [latest_update, reserve, liquidityrate, variableborrowrate].
type FootprintReserveRow struct {
	LatestUpdate       string
	Reserve            string
	LiquidityRate      float64
	VariableBorrowRate float64
}
