package bulkimport

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	"github.com/jhoicas/agrogest-api/pkg/numfmt"
	"github.com/shopspring/decimal"
)

// Tipos de conflicto que bloquean la confirmación del lote.
const (
	ConflictDuplicate = "duplicate_in_batch"
	ConflictExisting  = "already_registered"
)

// Defaults valores del lote cuando ni la columna ni la inferencia definen el campo.
type Defaults struct {
	Category   string
	Unit       string
	UnitWeight string
}

// DefaultDefaults valores iniciales del terminal de implantação.
var DefaultDefaults = Defaults{Category: "Fertilizantes", Unit: "kg", UnitWeight: "1,00"}

// Candidate producto propuesto a partir de una fila.
type Candidate struct {
	Row            int             `json:"row"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Unit           string          `json:"unit"`
	CapacityUnit   string          `json:"capacityUnit"`
	UnitWeight     string          `json:"unitWeight"`
	Stock          decimal.Decimal `json:"stock"`
	Price          decimal.Decimal `json:"price"`
	MinStock       decimal.Decimal `json:"minStock"`
	Batch          string          `json:"batch,omitempty"`
	ExpirationDate string          `json:"expirationDate,omitempty"`
	Location       string          `json:"location,omitempty"`
	Expired        bool            `json:"expired"`
	Conflict       string          `json:"conflict,omitempty"`
	Errors         []string        `json:"errors,omitempty"`
}

// Blocked indica si el candidato impide confirmar el lote.
func (c Candidate) Blocked() bool { return c.Conflict != "" || len(c.Errors) > 0 }

// Normalize convierte las filas en candidatos. Filas sin nombre se descartan.
// Prioridad de cada campo: valor explícito, inferencia por palabra clave, default del lote.
func Normalize(rows []RawRow, def Defaults, today time.Time) []Candidate {
	if def.Category == "" {
		def.Category = DefaultDefaults.Category
	}
	if def.Unit == "" {
		def.Unit = DefaultDefaults.Unit
	}
	if def.UnitWeight == "" {
		def.UnitWeight = DefaultDefaults.UnitWeight
	}

	out := make([]Candidate, 0, len(rows))
	for i, r := range rows {
		name := strings.ToUpper(strings.TrimSpace(r.Name))
		if name == "" {
			continue
		}
		smart, found := Detect(name)

		c := Candidate{
			Row:            i + 1,
			Name:           name,
			Category:       first(r.Category, pick(found, smart.Category), def.Category),
			Unit:           first(r.Unit, pick(found, smart.Unit), def.Unit),
			UnitWeight:     first(r.UnitWeight, pick(found, smart.UnitWeight), def.UnitWeight),
			Batch:          strings.ToUpper(strings.TrimSpace(r.Batch)),
			ExpirationDate: strings.TrimSpace(r.ExpirationDate),
			Location:       strings.ToUpper(strings.TrimSpace(r.Location)),
		}
		c.CapacityUnit = pick(found, smart.CapacityUnit)
		if c.CapacityUnit == "" {
			c.CapacityUnit = "kg"
			if strings.Contains(c.Unit, "L") {
				c.CapacityUnit = "L"
			}
		}

		c.Stock = c.number("stock", r.Stock)
		c.Price = c.number("price", r.Price)
		c.MinStock = c.number("minStock", r.MinStock)
		if _, err := numfmt.Parse(c.UnitWeight); err != nil {
			c.Errors = append(c.Errors, fmt.Sprintf("unitWeight: %v", err))
		}

		if c.ExpirationDate != "" {
			exp, ok := parseDate(c.ExpirationDate)
			if !ok {
				c.Errors = append(c.Errors, "expirationDate: data inválida")
			} else {
				c.ExpirationDate = exp.Format("2006-01-02")
				c.Expired = exp.Before(dateOnly(today))
			}
		}
		out = append(out, c)
	}
	return out
}

// number interpreta un campo numérico; vacío es cero y negativo es error.
func (c *Candidate) number(field, raw string) decimal.Decimal {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero
	}
	v, err := numfmt.Parse(raw)
	if err != nil {
		c.Errors = append(c.Errors, fmt.Sprintf("%s: %v", field, err))
		return decimal.Zero
	}
	if v.IsNegative() {
		c.Errors = append(c.Errors, fmt.Sprintf("%s: valor negativo", field))
		return decimal.Zero
	}
	return v
}

// DetectConflicts marca duplicados dentro del lote y nombres ya registrados.
// Devuelve la cantidad de candidatos marcados.
func DetectConflicts(cands []Candidate, existing []string) int {
	registered := make(map[string]bool, len(existing))
	for _, n := range existing {
		registered[key(n)] = true
	}
	seen := make(map[string]int, len(cands))
	for _, c := range cands {
		seen[key(c.Name)]++
	}

	n := 0
	for i := range cands {
		k := key(cands[i].Name)
		switch {
		case seen[k] > 1:
			cands[i].Conflict = ConflictDuplicate
		case registered[k]:
			cands[i].Conflict = ConflictExisting
		default:
			cands[i].Conflict = ""
			continue
		}
		n++
	}
	return n
}

// ToProduct construye el producto definitivo; el estado se deriva del stock.
func (c Candidate) ToProduct(id int64) entity.Product {
	weight := numfmt.ParseOr(c.UnitWeight, decimal.NewFromInt(1))
	if !weight.IsPositive() {
		weight = decimal.NewFromInt(1)
	}
	p := entity.Product{
		ID:             id,
		Name:           c.Name,
		Category:       c.Category,
		Stock:          c.Stock,
		Unit:           c.Unit,
		UnitWeight:     weight,
		MinStock:       c.MinStock,
		Price:          c.Price,
		Location:       c.Location,
		Batch:          c.Batch,
		ExpirationDate: c.ExpirationDate,
	}
	inventory.Refresh(&p)
	return p
}

func key(name string) string { return strings.ToUpper(strings.TrimSpace(name)) }

func first(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func pick(ok bool, v string) string {
	if ok {
		return v
	}
	return ""
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2006-01-02T15:04:05Z07:00"}

func parseDate(s string) (time.Time, bool) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
