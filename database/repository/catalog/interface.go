package catalogRepo

import "dineflow/models"

// CatalogRepository exposes the restaurant catalog and its tables.
// Restaurants are always returned in catalog (id) order; the extractor and
// the recommendation engine both depend on that ordering for tie-breaks.
type CatalogRepository interface {
	ListRestaurants() ([]models.Restaurant, error)
	GetRestaurant(id int) (*models.Restaurant, error)
	// FreeTables returns available tables of a restaurant with capacity >= partySize,
	// smallest capacity first.
	FreeTables(restaurantID, partySize int) ([]models.Table, error)
	GetTable(id int) (*models.Table, error)
	SetTableAvailability(id int, available bool) error

	InsertRestaurant(r models.Restaurant) error
	InsertTable(t models.Table) error
	CountRestaurants() (int64, error)
}
