package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/config"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/infrastructure/auth"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/infrastructure/database"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/infrastructure/repositories"
)

type seedAccount struct {
	email     string
	password  string
	firstName string
	lastName  string
	role      domain.Role
}

// Demo accounts for local development. They go through the same login
// path as any other account; nothing in the server special-cases them.
var seedAccounts = []seedAccount{
	{"patient@demo.imo-mantap.id", "patient123", "Ani", "Wijaya", domain.RolePatient},
	{"nurse@demo.imo-mantap.id", "nurse123", "Sari", "Rahayu", domain.RoleNurse},
	{"admin@demo.imo-mantap.id", "admin123", "Budi", "Santoso", domain.RoleAdmin},
}

var seedMedicines = []domain.Medicine{
	{Name: "Amlodipine 5mg", Description: "Calcium channel blocker for hypertension"},
	{Name: "Metformin 500mg", Description: "First-line therapy for type 2 diabetes"},
	{Name: "Captopril 25mg", Description: "ACE inhibitor for hypertension"},
	{Name: "Simvastatin 20mg", Description: "Statin for cholesterol management"},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	medicineRepo := repositories.NewMedicineRepository(db)
	passwordSvc := auth.NewPasswordService()

	for _, acc := range seedAccounts {
		if _, err := userRepo.FindByEmail(ctx, acc.email); err == nil {
			fmt.Printf("= %s already exists, skipping\n", acc.email)
			continue
		} else if err != domain.ErrUserNotFound {
			log.Fatalf("lookup %s: %v", acc.email, err)
		}

		hash, err := passwordSvc.Hash(acc.password)
		if err != nil {
			log.Fatalf("hash password for %s: %v", acc.email, err)
		}

		user := &domain.User{
			ID:            uuid.NewString(),
			Email:         acc.email,
			PasswordHash:  hash,
			IsActive:      true,
			EmailVerified: true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("create user %s: %v", acc.email, err)
		}
		if err := profileRepo.Create(ctx, &domain.Profile{
			UserID:    user.ID,
			FirstName: acc.firstName,
			LastName:  acc.lastName,
		}); err != nil {
			log.Fatalf("create profile %s: %v", acc.email, err)
		}
		if err := roleRepo.Assign(ctx, &domain.RoleAssignment{UserID: user.ID, Role: acc.role}); err != nil {
			log.Fatalf("assign role %s: %v", acc.email, err)
		}
		fmt.Printf("+ seeded %s (%s)\n", acc.email, acc.role)
	}

	count, err := medicineRepo.Count(ctx)
	if err != nil {
		log.Fatalf("count medicines: %v", err)
	}
	if count == 0 {
		for _, m := range seedMedicines {
			m.ID = uuid.NewString()
			m.CreatedAt = time.Now()
			if err := medicineRepo.Create(ctx, &m); err != nil {
				log.Fatalf("create medicine %s: %v", m.Name, err)
			}
			fmt.Printf("+ seeded medicine %s\n", m.Name)
		}
	} else {
		fmt.Printf("= medicine catalog already has %d entries, skipping\n", count)
	}

	fmt.Println("done")
}
