package main

import (
	"context"
	"flag"
	"log"
	"os"

	"ppe-tracker/pkg/config"
	"ppe-tracker/pkg/database/postgresql"
	"ppe-tracker/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("                 🌱 database seeders                  ")
	log.Println("======================================================")

	runMigrate := flag.Bool("migrate", false, "apply migrations before seeding")
	runDictionaries := flag.Bool("dictionaries", false, "seed inspection statuses and equipment types")
	runAdmin := flag.Bool("admin", false, "create the first administrator (SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD)")
	runEquipment := flag.Bool("equipment", false, "seed sample equipment")
	runAll := flag.Bool("all", false, "run every seeder (-dictionaries -admin -equipment)")

	flag.Parse()

	if !*runMigrate && !*runDictionaries && !*runAdmin && !*runEquipment && !*runAll {
		log.Println("❌ no seeder selected")
		log.Println("")
		log.Println("Flags:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Examples:")
		log.Println("  go run ./seeders/cmd/seed -migrate -dictionaries")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	ctx := context.Background()
	cfg := config.New()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ database: %v", err)
	}
	defer dbPool.Close()

	if *runMigrate || *runAll {
		if err := postgresql.Migrate(ctx, dbPool); err != nil {
			log.Fatalf("❌ migrations: %v", err)
		}
		log.Println("✅ migrations applied")
	}

	if *runAll || *runDictionaries {
		seeders.SeedDictionaries(ctx, dbPool)
		log.Println("======================================================")
	}

	if *runAll || *runAdmin {
		seeders.SeedAdmin(ctx, dbPool, seeders.AdminSeed{
			FullName: getEnv("SEED_ADMIN_NAME", "Administrator"),
			Email:    getEnv("SEED_ADMIN_EMAIL", "admin@example.com"),
			Password: getEnv("SEED_ADMIN_PASSWORD", "ChangeMe123"),
		})
		log.Println("======================================================")
	}

	if *runAll || *runEquipment {
		seeders.SeedSampleEquipment(ctx, dbPool)
		log.Println("======================================================")
	}

	log.Println("✅ seeding finished")
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
