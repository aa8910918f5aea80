package bulkimport

import "strings"

// RawRow línea de importación tal como llegó (texto pegado, planilla o NFe).
type RawRow struct {
	Name           string `json:"name"`
	Category       string `json:"category"`
	Unit           string `json:"unit"`
	UnitWeight     string `json:"unitWeight"`
	Stock          string `json:"stock"`
	Price          string `json:"price"`
	MinStock       string `json:"minStock"`
	Batch          string `json:"batch"`
	ExpirationDate string `json:"expirationDate"`
	Location       string `json:"location"`
}

// FromColumns arma una fila con las columnas en el orden fijo de importación;
// las columnas que faltan quedan vacías.
func FromColumns(cols []string) RawRow {
	get := func(i int) string {
		if i < len(cols) {
			return strings.TrimSpace(cols[i])
		}
		return ""
	}
	return RawRow{
		Name:           get(0),
		Category:       get(1),
		Unit:           get(2),
		UnitWeight:     get(3),
		Stock:          get(4),
		Price:          get(5),
		MinStock:       get(6),
		Batch:          get(7),
		ExpirationDate: get(8),
		Location:       get(9),
	}
}

// ParseTabular interpreta texto separado por tabulaciones. Las líneas en blanco se ignoran.
func ParseTabular(text string) []RawRow {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var rows []RawRow
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, FromColumns(strings.Split(line, "\t")))
	}
	return rows
}

// IsHeader reconoce una fila de encabezado de planilla.
func IsHeader(cols []string) bool {
	if len(cols) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(cols[0])) {
	case "nome", "name", "produto":
		return true
	}
	return false
}

// Invoice ítems leídos de una nota fiscal y su huella.
type Invoice struct {
	// Number chave de acesso de la nota, vacío si no la trae.
	Number string
	// Fingerprint SHA-256 del infNFe canonicalizado; identifica la nota ante reimportaciones.
	Fingerprint string
	Rows        []RawRow
}
