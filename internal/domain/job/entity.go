package job

// Listing is one job tile extracted from a rendered search results page.
type Listing struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Rate        string   `json:"rate"`
	Experience  string   `json:"experience"`
	Duration    string   `json:"duration"`
	Tags        []string `json:"tags"`
}
