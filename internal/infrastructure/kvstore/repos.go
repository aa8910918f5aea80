package kvstore

import (
	"strings"

	"github.com/jhoicas/agrogest-api/internal/domain/entity"
)

type productRepo struct {
	recordRepo[entity.Product, *entity.Product]
}

// FindByName busca por nombre ignorando mayúsculas y espacios laterales.
func (r *productRepo) FindByName(name string) *entity.Product {
	key := strings.ToUpper(strings.TrimSpace(name))
	for _, p := range r.l.items {
		if strings.ToUpper(strings.TrimSpace(p.Name)) == key {
			c := p
			return &c
		}
	}
	return nil
}

// movementRepo guarda el libro del más reciente al más antiguo.
type movementRepo struct {
	l *list[entity.StockMovement]
}

func (r *movementRepo) Append(m entity.StockMovement) {
	r.l.items = append([]entity.StockMovement{m}, r.l.items...)
	r.l.dirty = true
}

func (r *movementRepo) List() []entity.StockMovement { return r.l.snapshot() }

func (r *movementRepo) ListByProduct(productID int64) []entity.StockMovement {
	var out []entity.StockMovement
	for _, m := range r.l.items {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}

func (r *movementRepo) ListByApp(appID int64) []entity.StockMovement {
	var out []entity.StockMovement
	for _, m := range r.l.items {
		if m.AppID != nil && *m.AppID == appID {
			out = append(out, m)
		}
	}
	return out
}

func (r *movementRepo) Restore(items []entity.StockMovement) { r.l.restore(items) }

type activityRepo struct {
	l *list[entity.Activity]
}

func (r *activityRepo) Add(a entity.Activity) {
	r.l.items = entity.PrependActivity(r.l.items, a)
	r.l.dirty = true
}

func (r *activityRepo) List() []entity.Activity { return r.l.snapshot() }

func (r *activityRepo) Restore(items []entity.Activity) {
	if len(items) > entity.MaxActivities {
		items = items[:entity.MaxActivities]
	}
	r.l.restore(items)
}

type settingsRepo struct {
	o *object[entity.Settings]
}

func (r *settingsRepo) Get() *entity.Settings {
	if r.o.value == nil {
		return nil
	}
	c := *r.o.value
	return &c
}

func (r *settingsRepo) Save(s entity.Settings) {
	r.o.value = &s
	r.o.dirty = true
}

type importRepo struct {
	l *list[entity.ImportedInvoice]
}

func (r *importRepo) Has(fingerprint string) bool {
	for _, inv := range r.l.items {
		if inv.Fingerprint == fingerprint {
			return true
		}
	}
	return false
}

func (r *importRepo) Add(inv entity.ImportedInvoice) {
	r.l.items = append(r.l.items, inv)
	r.l.dirty = true
}
