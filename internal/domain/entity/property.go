package entity

import "github.com/shopspring/decimal"

// PropertyAttachment metadatos de un archivo adjunto a la propiedad.
type PropertyAttachment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Type      string `json:"type"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"createdAt"`
}

// Property propiedad rural (fazenda o sitio).
type Property struct {
	ID             int64                `json:"id"`
	Name           string               `json:"name"`
	Location       string               `json:"location"`
	TotalArea      decimal.Decimal      `json:"totalArea"`
	CultivatedArea decimal.Decimal      `json:"cultivatedArea"`
	MainCrop       string               `json:"mainCrop"`
	Manager        string               `json:"manager"`
	Status         string               `json:"status"`
	Attachments    []PropertyAttachment `json:"attachments,omitempty"`
}

func (p *Property) GetID() int64   { return p.ID }
func (p *Property) SetID(id int64) { p.ID = id }
func (p *Property) Label() string  { return p.Name }

// Plot talhão dentro de una propiedad. PropertyID es una referencia blanda.
type Plot struct {
	ID         int64           `json:"id"`
	PropertyID int64           `json:"propertyId"`
	Name       string          `json:"name"`
	Area       decimal.Decimal `json:"area"`
	Crop       string          `json:"crop"`
}

func (p *Plot) GetID() int64   { return p.ID }
func (p *Plot) SetID(id int64) { p.ID = id }
func (p *Plot) Label() string  { return p.Name }
