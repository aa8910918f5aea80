package bulkimport

import "strings"

// SmartRule inferencia de categoría y unidad a partir de una palabra clave del nombre.
type SmartRule struct {
	Keyword      string
	Category     string
	Unit         string
	CapacityUnit string
	UnitWeight   string
}

// SmartMap reglas en orden de prioridad: gana la primera palabra clave encontrada.
var SmartMap = []SmartRule{
	{"FERTILIZANTE", "Fertilizantes", "kg", "kg", "1,00"},
	{"NPK", "Fertilizantes", "kg", "kg", "1,00"},
	{"UREIA", "Fertilizantes", "kg", "kg", "1,00"},
	{"SEMENTE", "Sementes", "sc (saco)", "kg", "50,00"},
	{"MILHO", "Sementes", "sc (saco)", "kg", "50,00"},
	{"SOJA", "Sementes", "sc (saco)", "kg", "50,00"},
	{"GLIFOSATO", "Defensivos", "L", "L", "1,00"},
	{"HERBICIDA", "Defensivos", "L", "L", "1,00"},
	{"DIESEL", "Combustível", "L", "L", "1,00"},
	{"ÓLEO", "Combustível", "L", "L", "1,00"},
	{"PEÇA", "Peças", "un", "un", "1,00"},
	{"FILTRO", "Peças", "un", "un", "1,00"},
}

// Detect busca la primera regla cuya palabra clave aparece en el nombre.
func Detect(name string) (SmartRule, bool) {
	upper := strings.ToUpper(name)
	for _, r := range SmartMap {
		if strings.Contains(upper, r.Keyword) {
			return r, true
		}
	}
	return SmartRule{}, false
}
