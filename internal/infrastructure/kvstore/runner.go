package kvstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/jhoicas/agrogest-api/pkg/logger"
)

var _ repository.UnitOfWork = (*Runner)(nil)

// Runner implementa repository.UnitOfWork sobre cualquier repository.Store.
// Cada unidad de trabajo carga una copia de trabajo de las colecciones del usuario,
// la muta en memoria y confirma solo las colecciones modificadas en un único Commit.
type Runner struct {
	store repository.Store
	ids   *entity.IDSource
	log   *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRunner construye el runner. ids nil usa el reloj del sistema.
func NewRunner(store repository.Store, ids *entity.IDSource, log *logger.Logger) *Runner {
	if ids == nil {
		ids = entity.NewIDSource(nil)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{store: store, ids: ids, log: log, locks: make(map[string]*sync.Mutex)}
}

// Store expone el almacén subyacente (reportes que consultan directo).
func (r *Runner) Store() repository.Store { return r.store }

func (r *Runner) lock(userID string) func() {
	r.mu.Lock()
	l, ok := r.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[userID] = l
	}
	r.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Run ejecuta fn y confirma los cambios si fn no devuelve error.
func (r *Runner) Run(ctx context.Context, userID string, fn func(*repository.Repos) error) error {
	return r.run(ctx, userID, true, fn)
}

// View ejecuta fn sobre una copia consistente; los cambios se descartan.
func (r *Runner) View(ctx context.Context, userID string, fn func(*repository.Repos) error) error {
	return r.run(ctx, userID, false, fn)
}

func (r *Runner) run(ctx context.Context, userID string, commit bool, fn func(*repository.Repos) error) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("unit of work: user id vacío")
	}
	unlock := r.lock(userID)
	defer unlock()

	ws, err := r.load(ctx, userID)
	if err != nil {
		return err
	}
	if err := fn(ws.repos(r.ids)); err != nil {
		return err
	}
	if !commit {
		return nil
	}

	writes, err := ws.writes()
	if err != nil {
		return err
	}
	if len(writes) == 0 {
		return nil
	}
	if err := r.store.Commit(ctx, writes); err != nil {
		return fmt.Errorf("commit %s: %w", userID, err)
	}
	r.log.Debug().Str("user_id", userID).Int("keys", len(writes)).Msg("unidad de trabajo confirmada")
	return nil
}

// Purge borra todas las claves agrogest_*_<userID>.
func (r *Runner) Purge(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("purge: user id vacío")
	}
	unlock := r.lock(userID)
	defer unlock()

	keys, err := r.store.Keys(ctx, Prefix)
	if err != nil {
		return fmt.Errorf("listar claves: %w", err)
	}
	suffix := "_" + userID
	var writes []repository.Write
	for _, k := range keys {
		coll := strings.TrimSuffix(strings.TrimPrefix(k, Prefix), suffix)
		if strings.HasSuffix(k, suffix) && coll != "" && !strings.Contains(coll, "_") {
			writes = append(writes, repository.Write{Key: k, Delete: true})
		}
	}
	if len(writes) == 0 {
		return nil
	}
	if err := r.store.Commit(ctx, writes); err != nil {
		return fmt.Errorf("purge %s: %w", userID, err)
	}
	r.log.Info().Str("user_id", userID).Int("keys", len(writes)).Msg("datos del usuario eliminados")
	return nil
}

// workspace copia de trabajo de un usuario.
type workspace struct {
	userID string
	docs   map[string]document

	products      list[entity.Product]
	movements     list[entity.StockMovement]
	activities    list[entity.Activity]
	settings      object[entity.Settings]
	imports       list[entity.ImportedInvoice]
	clients       list[entity.Client]
	suppliers     list[entity.Supplier]
	collaborators list[entity.Collaborator]
	properties    list[entity.Property]
	plots         list[entity.Plot]
	applications  list[entity.FieldApplication]
	tasks         list[entity.Task]
	transactions  list[entity.Transaction]
}

func (r *Runner) load(ctx context.Context, userID string) (*workspace, error) {
	ws := &workspace{userID: userID}
	ws.docs = map[string]document{
		CollProducts:          &ws.products,
		CollMovements:         &ws.movements,
		CollActivities:        &ws.activities,
		CollSettings:          &ws.settings,
		CollImports:           &ws.imports,
		CollClients:           &ws.clients,
		CollSuppliers:         &ws.suppliers,
		CollCollaborators:     &ws.collaborators,
		CollProperties:        &ws.properties,
		CollPlots:             &ws.plots,
		CollFieldApplications: &ws.applications,
		CollTasks:             &ws.tasks,
		CollTransactions:      &ws.transactions,
	}

	keys := make([]string, 0, len(Collections))
	for _, c := range Collections {
		keys = append(keys, Key(c, userID))
	}
	raw, err := r.store.GetMany(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("cargar datos de %s: %w", userID, err)
	}
	for _, c := range Collections {
		if err := ws.docs[c].decode(raw[Key(c, userID)]); err != nil {
			return nil, fmt.Errorf("decodificar %s: %w", Key(c, userID), err)
		}
	}
	observe(r.ids, ws.products.items)
	observe(r.ids, ws.clients.items)
	observe(r.ids, ws.suppliers.items)
	observe(r.ids, ws.collaborators.items)
	observe(r.ids, ws.properties.items)
	observe(r.ids, ws.plots.items)
	observe(r.ids, ws.applications.items)
	observe(r.ids, ws.tasks.items)
	observe(r.ids, ws.transactions.items)
	for _, m := range ws.movements.items {
		r.ids.Observe(m.ID)
	}
	for _, a := range ws.activities.items {
		r.ids.Observe(a.ID)
	}
	return ws, nil
}

// observe registra los ids cargados para que el generador no los repita.
func observe[T any, PT entity.Record[T]](ids *entity.IDSource, items []T) {
	for i := range items {
		ids.Observe(PT(&items[i]).GetID())
	}
}

func (ws *workspace) repos(ids *entity.IDSource) *repository.Repos {
	return &repository.Repos{
		Products:          &productRepo{recordRepo[entity.Product, *entity.Product]{l: &ws.products}},
		Movements:         &movementRepo{l: &ws.movements},
		Activities:        &activityRepo{l: &ws.activities},
		Settings:          &settingsRepo{o: &ws.settings},
		Imports:           &importRepo{l: &ws.imports},
		Clients:           &recordRepo[entity.Client, *entity.Client]{l: &ws.clients},
		Suppliers:         &recordRepo[entity.Supplier, *entity.Supplier]{l: &ws.suppliers},
		Collaborators:     &recordRepo[entity.Collaborator, *entity.Collaborator]{l: &ws.collaborators},
		Properties:        &recordRepo[entity.Property, *entity.Property]{l: &ws.properties},
		Plots:             &recordRepo[entity.Plot, *entity.Plot]{l: &ws.plots},
		FieldApplications: &recordRepo[entity.FieldApplication, *entity.FieldApplication]{l: &ws.applications},
		Tasks:             &recordRepo[entity.Task, *entity.Task]{l: &ws.tasks},
		Transactions:      &recordRepo[entity.Transaction, *entity.Transaction]{l: &ws.transactions},
		IDs:               ids,
	}
}

func (ws *workspace) writes() ([]repository.Write, error) {
	var out []repository.Write
	for _, c := range Collections {
		doc := ws.docs[c]
		if !doc.isDirty() {
			continue
		}
		b, err := doc.encode()
		if err != nil {
			return nil, fmt.Errorf("codificar %s: %w", c, err)
		}
		out = append(out, repository.Write{Key: Key(c, ws.userID), Value: b})
	}
	return out, nil
}
