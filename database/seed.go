package database

import (
	"fmt"

	"dineflow/models"
)

// CatalogSeeder is the slice of the catalog repository that seeding needs.
// Declared here so the seeder does not depend on the repository package.
type CatalogSeeder interface {
	CountRestaurants() (int64, error)
	InsertRestaurant(r models.Restaurant) error
	InsertTable(t models.Table) error
}

// Sample catalog: five restaurants, each with the same spread of table sizes.
var sampleRestaurants = []models.Restaurant{
	{ID: 1, Name: "Spice Garden", Cuisine: "Indian", Location: "Downtown", Capacity: 40},
	{ID: 2, Name: "Pasta Palace", Cuisine: "Italian", Location: "Midtown", Capacity: 35},
	{ID: 3, Name: "Dragon Wok", Cuisine: "Chinese", Location: "Chinatown", Capacity: 50},
	{ID: 4, Name: "Le Bistro", Cuisine: "French", Location: "Uptown", Capacity: 30},
	{ID: 5, Name: "Taco Fiesta", Cuisine: "Mexican", Location: "Southside", Capacity: 45},
}

var sampleTableSizes = []int{2, 2, 4, 4, 4, 6, 6, 8, 10}

// SeedCatalog inserts the sample restaurants and their tables. It refuses to
// run against a non-empty catalog.
func SeedCatalog(repo CatalogSeeder) error {
	count, err := repo.CountRestaurants()
	if err != nil {
		return fmt.Errorf("seed: failed to inspect catalog: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("seed: catalog already has %d restaurants, refusing to reseed", count)
	}

	tableID := 1
	for _, r := range sampleRestaurants {
		if err := repo.InsertRestaurant(r); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		for _, size := range sampleTableSizes {
			t := models.Table{
				ID:           tableID,
				RestaurantID: r.ID,
				Capacity:     size,
				IsAvailable:  true,
			}
			if err := repo.InsertTable(t); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			tableID++
		}
	}
	return nil
}
