package domain

// Connector is a named ingestion target.
// It is immutable once fetched from the connector directory.
type Connector struct {
	// ID is the opaque identifier used to select the connector.
	ID string `json:"id"`
	// Label is the human-readable display name.
	Label string `json:"label"`
	// SourceAPIName identifies the ingestion source on the remote side.
	SourceAPIName string `json:"source_api_name"`
	// ObjectAPIName identifies the object the rows land in.
	ObjectAPIName string `json:"object_api_name"`
}

// DisplayName returns the label, falling back to the ID.
func (c *Connector) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

// Blob is an uploaded file held in memory.
type Blob struct {
	// Name is the display name of the file (usually its base name).
	Name string
	// MIMEType is the detected or declared content type.
	// Empty means application/octet-stream.
	MIMEType string
	// Data is the raw file content.
	Data []byte
}

// Size returns the blob size in bytes.
func (b *Blob) Size() int {
	return len(b.Data)
}
