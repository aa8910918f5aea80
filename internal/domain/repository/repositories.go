package repository

import (
	"context"

	"github.com/jhoicas/agrogest-api/internal/domain/entity"
)

// RecordRepository colección CRUD de registros con id numérico.
// GetByID devuelve nil, nil si no existe.
type RecordRepository[T any] interface {
	List() []T
	GetByID(id int64) (*T, error)
	Create(rec *T) error
	Update(rec *T) error
	Delete(id int64) error
	// Restore reemplaza la colección completa (importación de backup).
	Restore(items []T)
}

// ProductRepository registro de productos.
type ProductRepository interface {
	RecordRepository[entity.Product]
	FindByName(name string) *entity.Product
}

// StockMovementRepository libro de movimientos: solo agrega, nunca edita ni borra.
// List devuelve los movimientos del más reciente al más antiguo.
type StockMovementRepository interface {
	Append(m entity.StockMovement)
	List() []entity.StockMovement
	ListByProduct(productID int64) []entity.StockMovement
	ListByApp(appID int64) []entity.StockMovement
	// Restore reemplaza el libro completo (importación de backup).
	Restore(items []entity.StockMovement)
}

// ActivityRepository feed de actividades, limitado a entity.MaxActivities.
type ActivityRepository interface {
	Add(a entity.Activity)
	List() []entity.Activity
	Restore(items []entity.Activity)
}

// SettingsRepository preferencias del usuario. Get devuelve nil si nunca se guardaron.
type SettingsRepository interface {
	Get() *entity.Settings
	Save(s entity.Settings)
}

// ImportRepository huellas de NFe ya importadas.
type ImportRepository interface {
	Has(fingerprint string) bool
	Add(inv entity.ImportedInvoice)
}

// IDGenerator genera ids numéricos derivados del reloj.
type IDGenerator interface {
	Next() int64
}

// Repos repositorios de un usuario atados a una unidad de trabajo.
type Repos struct {
	Products          ProductRepository
	Movements         StockMovementRepository
	Activities        ActivityRepository
	Settings          SettingsRepository
	Imports           ImportRepository
	Clients           RecordRepository[entity.Client]
	Suppliers         RecordRepository[entity.Supplier]
	Collaborators     RecordRepository[entity.Collaborator]
	Properties        RecordRepository[entity.Property]
	Plots             RecordRepository[entity.Plot]
	FieldApplications RecordRepository[entity.FieldApplication]
	Tasks             RecordRepository[entity.Task]
	Transactions      RecordRepository[entity.Transaction]
	IDs               IDGenerator
}

// Snapshot copia todas las colecciones del usuario.
func (r *Repos) Snapshot() entity.Dataset {
	return entity.Dataset{
		Tasks:             r.Tasks.List(),
		Products:          r.Products.List(),
		StockMovements:    r.Movements.List(),
		Clients:           r.Clients.List(),
		Suppliers:         r.Suppliers.List(),
		Collaborators:     r.Collaborators.List(),
		Transactions:      r.Transactions.List(),
		Properties:        r.Properties.List(),
		Plots:             r.Plots.List(),
		FieldApplications: r.FieldApplications.List(),
		Activities:        r.Activities.List(),
		Settings:          r.Settings.Get(),
	}
}

// Restore reemplaza todas las colecciones con las del dataset.
func (r *Repos) Restore(ds entity.Dataset) {
	r.Tasks.Restore(ds.Tasks)
	r.Products.Restore(ds.Products)
	r.Movements.Restore(ds.StockMovements)
	r.Clients.Restore(ds.Clients)
	r.Suppliers.Restore(ds.Suppliers)
	r.Collaborators.Restore(ds.Collaborators)
	r.Transactions.Restore(ds.Transactions)
	r.Properties.Restore(ds.Properties)
	r.Plots.Restore(ds.Plots)
	r.FieldApplications.Restore(ds.FieldApplications)
	r.Activities.Restore(ds.Activities)
	if ds.Settings != nil {
		r.Settings.Save(*ds.Settings)
	}
}

// UnitOfWork ejecuta fn con los repositorios de un usuario.
// Run confirma todos los cambios en un solo commit si fn no devuelve error; si no, los descarta.
// Las unidades de trabajo de un mismo usuario nunca se intercalan.
type UnitOfWork interface {
	Run(ctx context.Context, userID string, fn func(r *Repos) error) error
	View(ctx context.Context, userID string, fn func(r *Repos) error) error
	// Purge borra todas las claves del usuario.
	Purge(ctx context.Context, userID string) error
}

// UserRepository cuentas de acceso (clave global).
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
