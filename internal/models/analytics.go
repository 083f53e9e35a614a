package models

// StatusCount is the number of orders in one status
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// CakeSales is the number of orders placed for one cake name
type CakeSales struct {
	CakeName string `json:"cake_name"`
	Count    int    `json:"count"`
}

// Analytics holds the dashboard aggregates
type Analytics struct {
	StatusCounts []StatusCount `json:"status_counts"`
	CakeSales    []CakeSales   `json:"cake_sales"`
}

// Labels returns status names in query order, for charts
func (a *Analytics) Labels() []string {
	labels := make([]string, len(a.StatusCounts))
	for i, sc := range a.StatusCounts {
		labels[i] = sc.Status
	}
	return labels
}

// Values returns status counts aligned with Labels
func (a *Analytics) Values() []int {
	values := make([]int, len(a.StatusCounts))
	for i, sc := range a.StatusCounts {
		values[i] = sc.Count
	}
	return values
}
