package inventory

import (
	"strings"

	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// unitFactor factor de conversión a la unidad física base.
// byWeight indica que el factor es el UnitWeight del producto (sacos, galões, caixas...).
type unitFactor struct {
	factor   decimal.Decimal
	byWeight bool
}

func fixed(s string) unitFactor { return unitFactor{factor: decimal.RequireFromString(s)} }

var weight = unitFactor{byWeight: true}

var units = map[string]unitFactor{
	"kg":            fixed("1"),
	"g":             fixed("0.001"),
	"mg":            fixed("0.000001"),
	"ton":           fixed("1000"),
	"@ (arroba)":    fixed("15"),
	"L":             fixed("1"),
	"ml":            fixed("0.001"),
	"galão":         weight,
	"tambor":        weight,
	"bombona":       weight,
	"balde":         weight,
	"frasco":        weight,
	"ampola":        fixed("0.01"),
	"bisnaga":       fixed("0.1"),
	"un":            fixed("1"),
	"sc (saco)":     weight,
	"sc":            weight,
	"bag (big bag)": weight,
	"pacote":        weight,
	"caixa":         weight,
	"fardo":         weight,
	"palete":        weight,
	"kit":           fixed("1"),
	"par":           fixed("1"),
	"dúzia":         fixed("12"),
	"milheiro":      fixed("1000"),
	"metro":         fixed("1"),
	"cm":            fixed("0.01"),
	"mm":            fixed("0.001"),
	"m²":            fixed("1"),
	"m³":            fixed("1"),
	"rolo":          fixed("1"),
	"bobina":        fixed("1"),
	"barra":         fixed("1"),
	"tubo":          fixed("1"),
	"folha":         fixed("1"),
	"dose":          fixed("1"),
	"ha (hectare)":  fixed("1"),
	"alqueire":      fixed("2.42"),
}

// KnownUnit indica si la unidad está en la tabla de conversión.
func KnownUnit(u string) bool {
	_, ok := lookup(u)
	return ok
}

func lookup(u string) (unitFactor, bool) {
	u = strings.TrimSpace(u)
	if f, ok := units[u]; ok {
		return f, true
	}
	if f, ok := units[strings.ToLower(u)]; ok {
		return f, true
	}
	f, ok := units[strings.ToUpper(u)]
	return f, ok
}

// EffectiveUnitWeight UnitWeight del producto; cero o negativo vale 1.
func EffectiveUnitWeight(p *entity.Product) decimal.Decimal {
	if p.UnitWeight.IsPositive() {
		return p.UnitWeight
	}
	return decimal.NewFromInt(1)
}

func factorFor(p *entity.Product, u string) decimal.Decimal {
	if strings.TrimSpace(u) == "" {
		return decimal.NewFromInt(1)
	}
	f, ok := lookup(u)
	if !ok {
		if strings.TrimSpace(u) == p.Unit {
			return EffectiveUnitWeight(p)
		}
		return decimal.NewFromInt(1)
	}
	if f.byWeight {
		return EffectiveUnitWeight(p)
	}
	return f.factor
}

// Normalize convierte q expresado en unit a la unidad del producto.
// Sin unidad, o con la misma unidad del producto, devuelve q sin cambios.
func Normalize(p *entity.Product, q decimal.Decimal, unit string) decimal.Decimal {
	if unit == "" || unit == p.Unit {
		return q
	}
	base := factorFor(p, p.Unit)
	if base.IsZero() {
		return q
	}
	return q.Mul(factorFor(p, unit)).Div(base)
}
