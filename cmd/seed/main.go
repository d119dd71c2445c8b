package main

import (
	"context"
	"fmt"
	"os"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/zatekoja/travelplanner/internal/adapters/cache"
	"github.com/zatekoja/travelplanner/internal/adapters/database"
	"github.com/zatekoja/travelplanner/internal/application/services"
	"github.com/zatekoja/travelplanner/internal/domain/entities"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/travelplanner/internal/infrastructure/clients/redis"
	"github.com/zatekoja/travelplanner/internal/infrastructure/observability"
	"github.com/zatekoja/travelplanner/pkg/config"
)

// Must match the prefix the API server caches under.
const cacheKeyPrefix = "travelplanner:"

// Accounts are provisioned outside this service, so the seeded admin gets a hash no password matches.
const lockedPasswordHash = "!"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("travel-planner-seed", cfg.Server.Env)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				trip_items,
				trips,
				payments,
				hotel_bookings,
				restaurant_cuisines,
				cuisines,
				restaurants,
				hotels,
				places,
				regions,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	// 1. Admin account
	adminEmail := getEnv("SEED_ADMIN_EMAIL", "admin@travelplanner.local")
	query, _, err := goqu.Dialect("postgres").Insert("users").
		Rows(goqu.Record{
			"email":         adminEmail,
			"password_hash": lockedPasswordHash,
			"full_name":     "Administrator",
			"role":          entities.RoleAdmin,
			"is_verified":   true,
		}).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build admin insert")
	}
	if _, err := pgClient.DB().ExecContext(ctx, query); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin user")
	}
	log.Info().Str("email", adminEmail).Msg("Admin user seeded")

	regionRepo := database.NewRegionAdapter(pgClient)
	hotelRepo := database.NewHotelAdapter(pgClient)
	cuisineRepo := database.NewCuisineAdapter(pgClient)
	restaurantRepo := database.NewRestaurantAdapter(pgClient)

	// 2. Regions
	regions := []*entities.Region{
		{Name: "Đà Lạt", Description: "Cool highland city of pine forests, lakes and flower gardens", Latitude: lo.ToPtr(11.9404), Longitude: lo.ToPtr(108.4583)},
		{Name: "Hội An", Description: "Lantern-lit ancient town on the Thu Bồn river", Latitude: lo.ToPtr(15.8801), Longitude: lo.ToPtr(108.3380)},
		{Name: "Hà Nội", Description: "Capital city with the Old Quarter and Hoàn Kiếm lake", Latitude: lo.ToPtr(21.0285), Longitude: lo.ToPtr(105.8542)},
	}
	for _, r := range regions {
		if err := regionRepo.Create(ctx, r); err != nil {
			log.Fatal().Err(err).Str("region", r.Name).Msg("Failed to create region")
		}
	}

	// 3. Hotels
	hotels := []*entities.Hotel{
		{RegionID: &regions[0].ID, Name: "Pine Hill Lodge", Description: "Wooden lodge overlooking Tuyền Lâm lake", Address: "Tuyền Lâm, Đà Lạt", PricePerNight: 1200000, Rating: lo.ToPtr(4.6), Tags: []string{"lake", "quiet"}, IsActive: true},
		{RegionID: &regions[0].ID, Name: "Xuân Hương Boutique", Description: "Small hotel a short walk from the night market", Address: "Đường 3 Tháng 2, Đà Lạt", PricePerNight: 850000, Rating: lo.ToPtr(4.2), Tags: []string{"central"}, IsActive: true},
		{RegionID: &regions[1].ID, Name: "Riverside Lantern Hotel", Description: "Courtyard rooms beside the river", Address: "Nguyễn Du, Hội An", PricePerNight: 1500000, Rating: lo.ToPtr(4.8), Tags: []string{"river", "pool"}, IsActive: true},
		{RegionID: &regions[2].ID, Name: "Old Quarter Residence", Description: "Renovated shophouse in the Old Quarter", Address: "Hàng Bạc, Hà Nội", PricePerNight: 950000, Rating: lo.ToPtr(4.4), Tags: []string{"central"}, IsActive: true},
	}
	for _, h := range hotels {
		if err := hotelRepo.Create(ctx, h); err != nil {
			log.Fatal().Err(err).Str("hotel", h.Name).Msg("Failed to create hotel")
		}
	}

	// 4. Cuisines and restaurants
	cuisines := map[string]*entities.Cuisine{}
	for _, name := range []string{"Vietnamese", "Street food", "Cafe"} {
		c := &entities.Cuisine{Name: name}
		if err := cuisineRepo.Create(ctx, c); err != nil {
			log.Fatal().Err(err).Str("cuisine", name).Msg("Failed to create cuisine")
		}
		cuisines[name] = c
	}

	restaurants := []*entities.RestaurantInput{
		{
			Restaurant: entities.Restaurant{RegionID: &regions[0].ID, Name: "Bánh Căn Nhà Chung", Description: "Clay-pot rice cakes cooked to order", Address: "Nhà Chung, Đà Lạt", Rating: lo.ToPtr(4.5), IsActive: true},
			Cuisines: []entities.RestaurantCuisine{
				{CuisineID: cuisines["Street food"].ID, Description: "Bánh căn with meatball broth", AveragePrice: lo.ToPtr(int64(40000)), PriceRange: "30.000 - 60.000", IsAvailable: true},
			},
		},
		{
			Restaurant: entities.Restaurant{RegionID: &regions[0].ID, Name: "Lake View Cafe", Description: "Coffee terrace over Xuân Hương lake", Address: "Hồ Xuân Hương, Đà Lạt", Rating: lo.ToPtr(4.3), IsActive: true},
			Cuisines: []entities.RestaurantCuisine{
				{CuisineID: cuisines["Cafe"].ID, Description: "Artichoke tea and egg coffee", AveragePrice: lo.ToPtr(int64(55000)), PriceRange: "40.000 - 80.000", IsAvailable: true},
			},
		},
		{
			Restaurant: entities.Restaurant{RegionID: &regions[1].ID, Name: "Cao Lầu Bà Bé", Description: "Market stall serving cao lầu since the nineties", Address: "Chợ Hội An", Rating: lo.ToPtr(4.7), IsActive: true},
			Cuisines: []entities.RestaurantCuisine{
				{CuisineID: cuisines["Vietnamese"].ID, Description: "Cao lầu noodles", AveragePrice: lo.ToPtr(int64(50000)), PriceRange: "40.000 - 70.000", IsAvailable: true},
			},
		},
		{
			Restaurant: entities.Restaurant{RegionID: &regions[2].ID, Name: "Phở Gánh", Description: "Early morning phở on a street corner", Address: "Hàng Chiếu, Hà Nội", Rating: lo.ToPtr(4.6), IsActive: true},
			Cuisines: []entities.RestaurantCuisine{
				{CuisineID: cuisines["Vietnamese"].ID, Description: "Phở bò", AveragePrice: lo.ToPtr(int64(60000)), PriceRange: "50.000 - 80.000", IsAvailable: true},
			},
		},
	}
	for _, r := range restaurants {
		if err := restaurantRepo.Create(ctx, r); err != nil {
			log.Fatal().Err(err).Str("restaurant", r.Name).Msg("Failed to create restaurant")
		}
	}

	log.Info().
		Int("regions", len(regions)).
		Int("hotels", len(hotels)).
		Int("restaurants", len(restaurants)).
		Msg("Seeding complete")

	invalidateCatalogCache(ctx, cfg)
}

// invalidateCatalogCache drops cached catalog reads so running API servers see the seeded rows.
func invalidateCatalogCache(ctx context.Context, cfg *config.Config) {
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, skipping cache invalidation")
		return
	}
	defer redisClient.Close()

	invalidation := services.NewCacheInvalidationService(cache.NewRedisAdapter(redisClient, cacheKeyPrefix), nil)
	if err := invalidation.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate catalog cache")
		return
	}
	log.Info().Msg("Catalog cache invalidated")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
