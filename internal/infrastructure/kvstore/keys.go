package kvstore

import "fmt"

// Prefix prefijo común de todas las claves.
const Prefix = "agrogest_"

// UsersKey clave global con las cuentas de acceso.
const UsersKey = Prefix + "users"

// Nombres de colección; coinciden con las claves JSON del backup.
const (
	CollTasks             = "tasks"
	CollProducts          = "products"
	CollMovements         = "stockMovements"
	CollClients           = "clients"
	CollSuppliers         = "suppliers"
	CollCollaborators     = "collaborators"
	CollTransactions      = "transactions"
	CollProperties        = "properties"
	CollPlots             = "plots"
	CollFieldApplications = "fieldApplications"
	CollActivities        = "activities"
	CollSettings          = "settings"
	CollImports           = "nfeImports"
)

// Collections todas las colecciones de un usuario.
var Collections = []string{
	CollTasks, CollProducts, CollMovements, CollClients, CollSuppliers,
	CollCollaborators, CollTransactions, CollProperties, CollPlots,
	CollFieldApplications, CollActivities, CollSettings, CollImports,
}

// Key clave de una colección de usuario: agrogest_<colección>_<userID>.
func Key(collection, userID string) string {
	return fmt.Sprintf("%s%s_%s", Prefix, collection, userID)
}
