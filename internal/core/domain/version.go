package domain

// CatalogVersion identifies one published catalog.
type CatalogVersion struct {
	ContentHash string `json:"contentHash"`
	BuildID     int64  `json:"buildId"`
}

// Equal reports whether two versions match. A nil version equals only another nil version.
func (v *CatalogVersion) Equal(other *CatalogVersion) bool {
	if v == nil || other == nil {
		return v == nil && other == nil
	}
	return v.ContentHash == other.ContentHash && v.BuildID == other.BuildID
}

// CatalogFileName returns the payload file name for this version.
func (v *CatalogVersion) CatalogFileName() string {
	return CatalogFileName(v.ContentHash)
}
