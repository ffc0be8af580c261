package domain

// Statistics aggregates the catalogue.
type Statistics struct {
	TotalBooks        int `json:"totalBooks"`
	PublicDomainBooks int `json:"publicDomainBooks"`
	TotalDownloads    int `json:"totalDownloads"`
}
