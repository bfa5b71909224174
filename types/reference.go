package types

// ReferenceType discriminates the variants of a reference record. The tags
// mirror the retrieval activity tags for the six source kinds.
type ReferenceType string

const (
	ReferenceSearchIndex       ReferenceType = "searchIndex"
	ReferenceAzureBlob         ReferenceType = "azureBlob"
	ReferenceWeb               ReferenceType = "web"
	ReferenceRemoteSharePoint  ReferenceType = "remoteSharePoint"
	ReferenceIndexedSharePoint ReferenceType = "indexedSharePoint"
	ReferenceIndexedOneLake    ReferenceType = "indexedOneLake"
)

// SensitivityLabel carries Microsoft Purview label info on remote SharePoint
// references.
type SensitivityLabel struct {
	DisplayName string `json:"displayName,omitempty"`
	Color       string `json:"color,omitempty"`
	IsEncrypted bool   `json:"isEncrypted,omitempty"`
	Tooltip     string `json:"tooltip,omitempty"`
}

// Reference is a citable source document or snippet returned by retrieval.
// ID doubles as the lookup key and the literal citation marker value.
// ActivitySource is the ID of the activity that fetched this reference
// (a back-reference, not an ownership link).
type Reference struct {
	ID             string         `json:"id"`
	Type           ReferenceType  `json:"type"`
	ActivitySource int            `json:"activitySource"`
	SourceData     map[string]any `json:"sourceData,omitempty"`
	RerankerScore  *float64       `json:"rerankerScore,omitempty"`

	// searchIndex.
	DocKey string `json:"docKey,omitempty"`

	// azureBlob.
	BlobURL string `json:"blobUrl,omitempty"`

	// web.
	URL   string `json:"url,omitempty"`
	Title string `json:"title,omitempty"`

	// remoteSharePoint.
	WebURL           string            `json:"webUrl,omitempty"`
	SensitivityLabel *SensitivityLabel `json:"sensitivityLabel,omitempty"`

	// indexedSharePoint and indexedOneLake.
	DocURL string `json:"docUrl,omitempty"`
}

// Snippet extracts a display snippet from SourceData, or "" when absent.
func (r *Reference) Snippet() string {
	for _, key := range []string{"snippet", "content", "terms", "text"} {
		if v, ok := r.SourceData[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// DisplayTitle picks the best human-readable name available on the variant,
// falling back to SourceData and finally to the reference ID.
func (r *Reference) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	if v, ok := r.SourceData["title"].(string); ok && v != "" {
		return v
	}
	switch {
	case r.DocKey != "":
		return r.DocKey
	case r.BlobURL != "":
		return r.BlobURL
	case r.WebURL != "":
		return r.WebURL
	case r.DocURL != "":
		return r.DocURL
	case r.URL != "":
		return r.URL
	}
	return r.ID
}
