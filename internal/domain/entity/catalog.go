package entity

// CatalogProduct is one entry of the curated national showcase. The data
// is static editorial content, not user submitted, so there is no
// lifecycle beyond read access.
type CatalogProduct struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Origin       string   `json:"origin"`
	Price        string   `json:"price"`
	Description  string   `json:"description"`
	Highlight    string   `json:"highlight"`
	Badges       []string `json:"badges"`
	Features     []string `json:"features"`
	Logistics    []string `json:"logistics"`
	BannerImage  string   `json:"bannerImage"`
	ContactEmail string   `json:"contactEmail"`
	ContactPhone string   `json:"contactPhone"`
}
