package dto

// ImportBackupResponse resultado de importar un backup.
type ImportBackupResponse struct {
	Settings    bool `json:"settings"`
	Collections bool `json:"collections"`
}

// AttachmentRequest metadatos de un adjunto de propiedad.
type AttachmentRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}
