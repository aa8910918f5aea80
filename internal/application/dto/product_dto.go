package dto

import "github.com/jhoicas/agrogest-api/pkg/numfmt"

// ProductRequest alta o reemplazo completo de un producto.
// Los campos numéricos aceptan número o texto con separador local ("2,50").
// El status no se recibe: se deriva de stock y minStock.
type ProductRequest struct {
	Name           string      `json:"name"`
	Category       string      `json:"category"`
	Stock          numfmt.Flex `json:"stock" swaggertype:"string"`
	Unit           string      `json:"unit"`
	UnitWeight     numfmt.Flex `json:"unitWeight" swaggertype:"string"`
	MinStock       numfmt.Flex `json:"minStock" swaggertype:"string"`
	Price          numfmt.Flex `json:"price" swaggertype:"string"`
	Location       string      `json:"location"`
	Batch          string      `json:"batch"`
	ExpirationDate string      `json:"expirationDate"`
}

// ProductQuery filtros del listado de productos. Las listas van separadas por coma.
type ProductQuery struct {
	Search     string `query:"search"`
	Categories string `query:"category"`
	Statuses   string `query:"status"`
	Locations  string `query:"location"`
}
