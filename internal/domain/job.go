package domain

// Job is one scraped listing. Title, Company, Location, Source and
// ScrapedDate are set once at extraction time; only the salary fields
// may be filled in later by the estimator.
type Job struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	ScrapedDate string `json:"scraped_date"`
	URL         string `json:"url,omitempty"`

	EstimatedSalary float64 `json:"estimated_salary,omitempty"`
	EstimatedFee    float64 `json:"estimated_fee,omitempty"`
}
