package entity

import "time"

// Dataset todas las colecciones de un usuario, con las claves JSON del backup.
type Dataset struct {
	Tasks             []Task             `json:"tasks"`
	Products          []Product          `json:"products"`
	StockMovements    []StockMovement    `json:"stockMovements"`
	Clients           []Client           `json:"clients"`
	Suppliers         []Supplier         `json:"suppliers"`
	Collaborators     []Collaborator     `json:"collaborators"`
	Transactions      []Transaction      `json:"transactions"`
	Properties        []Property         `json:"properties"`
	Plots             []Plot             `json:"plots"`
	FieldApplications []FieldApplication `json:"fieldApplications"`
	Activities        []Activity         `json:"activities"`
	Settings          *Settings          `json:"settings,omitempty"`
}

// Backup documento de exportación manual.
type Backup struct {
	Settings  *Settings `json:"settings"`
	Timestamp string    `json:"timestamp"`
	Version   string    `json:"version"`
	Payload   *Dataset  `json:"payload,omitempty"`
}

// ImportedInvoice huella de una NFe ya importada.
type ImportedInvoice struct {
	Fingerprint string    `json:"fingerprint"`
	Number      string    `json:"number,omitempty"`
	ImportedAt  time.Time `json:"importedAt"`
}
