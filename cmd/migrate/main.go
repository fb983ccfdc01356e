package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"gcc-market-sync/internal/entity"
	syncconfig "gcc-market-sync/internal/sync/config"
	"gcc-market-sync/internal/sync/repository"
	"gcc-market-sync/pkg/auth"
	pkgconfig "gcc-market-sync/pkg/config"
	"gcc-market-sync/pkg/postgres"
	"gcc-market-sync/pkg/utils"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var configPath string

func getDSN(dbConfig pkgconfig.Database) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.DBName,
		dbConfig.SSLMode)
}

func runMigrations(direction string) {
	cfg, err := syncconfig.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dsn := getDSN(cfg.Database)
	migrationsPath := "file://migrations"

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	var migrationErr error
	if direction == "up" {
		migrationErr = m.Up()
		fmt.Println("Applied migrations successfully.")
	} else if direction == "down" {
		migrationErr = m.Steps(-1)
		fmt.Println("Reverted last migration successfully.")
	}

	if migrationErr != nil && migrationErr != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", migrationErr)
	}

	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Printf("Migration source error on close: %v\n", srcErr)
	}
	if dbErr != nil {
		log.Printf("Migration database error on close: %v\n", dbErr)
	}
}

// runSeed loads a starter set of Saudi-market companies and one reported
// period each, so a fresh environment has something to refresh against.
func runSeed() {
	cfg, err := syncconfig.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := postgres.NewDB(postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	companies := []entity.Company{
		{Ticker: "2222.SR", NameEn: "Saudi Aramco", NameAr: utils.ToPointer("أرامكو السعودية"), Market: "saudi", Sector: utils.ToPointer("Energy"), IsActive: true},
		{Ticker: "1120.SR", NameEn: "Al Rajhi Bank", NameAr: utils.ToPointer("مصرف الراجحي"), Market: "saudi", Sector: utils.ToPointer("Banks"), IsActive: true},
		{Ticker: "2010.SR", NameEn: "SABIC", NameAr: utils.ToPointer("سابك"), Market: "saudi", Sector: utils.ToPointer("Materials"), IsActive: true},
		{Ticker: "7010.SR", NameEn: "stc", NameAr: utils.ToPointer("إس تي سي"), Market: "saudi", Sector: utils.ToPointer("Telecom"), IsActive: true},
	}

	ctx := context.Background()
	fundamentalsRepo := repository.NewFundamentalsRepository(db.DB)

	for i := range companies {
		if err := db.DB.WithContext(ctx).Where("ticker = ?", companies[i].Ticker).
			FirstOrCreate(&companies[i]).Error; err != nil {
			log.Fatalf("Failed to seed company %s: %v", companies[i].Ticker, err)
		}

		fundamental := &entity.Fundamental{
			CompanyID:  companies[i].ID,
			PeriodType: "annual",
			FiscalYear: 2025,
			Revenue:    utils.ToPointer(float64(1_000_000_000 * (i + 1))),
			NetIncome:  utils.ToPointer(float64(150_000_000 * (i + 1))),
			EPS:        utils.ToPointer(1.25 * float64(i+1)),
		}
		if err := fundamentalsRepo.Upsert(ctx, fundamental); err != nil {
			log.Fatalf("Failed to seed fundamentals for %s: %v", companies[i].Ticker, err)
		}
	}

	seedAdminUser(ctx, db.DB)

	fmt.Printf("Seeded %d companies.\n", len(companies))
}

// seedAdminUser bootstraps the admin account the manual trigger endpoint
// expects. Password comes from SEED_ADMIN_PASSWORD; without it the step is
// skipped so production seeds never get a default credential.
func seedAdminUser(ctx context.Context, db *gorm.DB) {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		fmt.Println("SEED_ADMIN_PASSWORD not set, skipping admin user.")
		return
	}

	usersRepo := repository.NewUsersRepository(db)
	if _, err := usersRepo.FindByEmail(ctx, "admin@example.com"); err == nil {
		fmt.Println("Admin user already exists.")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up admin user: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := entity.User{
		Email:        "admin@example.com",
		PasswordHash: hash,
		FullName:     "Platform Admin",
		Role:         auth.RoleAdmin,
		IsActive:     true,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	fmt.Println("Seeded admin user.")
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all available database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrations("up")
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the last database migration",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrations("down")
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed starter companies and fundamentals",
	Run: func(cmd *cobra.Command, args []string) {
		runSeed()
	},
}

func main() {
	rootCmd := &cobra.Command{Use: "migrate"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-sync.yaml", "Path to the configuration file")

	rootCmd.AddCommand(upCmd, downCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing migrate CLI: %s\n", err)
		os.Exit(1)
	}
}
