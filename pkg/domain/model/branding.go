package model

// BrandingSettings carries the organization identity printed on reports
type BrandingSettings struct {
	Logo             string `json:"logo"`
	OrganizationName string `json:"organizationName"`
	Address          string `json:"address"`
	ContactInfo      string `json:"contactInfo"`
}

// HasHeader reports whether a report header should be rendered
func (b BrandingSettings) HasHeader() bool {
	return b.Logo != "" || b.OrganizationName != ""
}

// HasFooter reports whether a report footer should be rendered
func (b BrandingSettings) HasFooter() bool {
	return b.Address != "" || b.ContactInfo != ""
}
