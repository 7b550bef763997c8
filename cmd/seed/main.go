package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"worklink/internal/config"
	"worklink/internal/db"
	"worklink/internal/model"
	"worklink/internal/repository"
)

const seedPassword = "password123"

type seedUser struct {
	Username       string
	Email          string
	Role           model.Role
	Specialization string
}

var seedUsers = []seedUser{
	{Username: "alice", Email: "alice@example.com", Role: model.RoleCustomer},
	{Username: "bob", Email: "bob@example.com", Role: model.RoleExecutor, Specialization: "Backend development"},
	{Username: "carol", Email: "carol@example.com", Role: model.RoleExecutor, Specialization: "Web design"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Profile{}, &model.Order{}, &model.Bid{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	bidRepo := repository.NewBidRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := make(map[string]*model.User, len(seedUsers))
	for _, s := range seedUsers {
		existing, err := userRepo.FindByUsername(ctx, s.Username)
		if err == nil {
			log.Printf("User %s already exists, skipping", s.Username)
			users[s.Username] = existing
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check user %s: %v", s.Username, err)
		}

		user := &model.User{
			Username:     s.Username,
			Email:        s.Email,
			PasswordHash: string(hash),
		}
		profile := &model.Profile{Role: s.Role, Specialization: s.Specialization}
		if err := userRepo.CreateWithProfile(ctx, user, profile); err != nil {
			log.Fatalf("Failed to create user %s: %v", s.Username, err)
		}
		user.Profile = profile
		users[s.Username] = user
		log.Printf("Created %s %s", s.Role, s.Username)
	}

	existingOrders, err := orderRepo.ListByCustomer(ctx, users["alice"].ID)
	if err != nil {
		log.Fatalf("Failed to list orders: %v", err)
	}
	if len(existingOrders) > 0 {
		log.Printf("Customer already has %d orders, skipping order seed", len(existingOrders))
		return
	}

	deadline := time.Now().AddDate(0, 1, 0)
	order := &model.Order{
		Title:       "Build a landing page",
		Description: "Single page site with a contact form.",
		Status:      model.OrderStatusOpen,
		Deadline:    &deadline,
		Budget:      decimal.NullDecimal{Decimal: decimal.NewFromInt(15000), Valid: true},
		CustomerID:  users["alice"].ID,
	}
	if err := orderRepo.Create(ctx, order); err != nil {
		log.Fatalf("Failed to create order: %v", err)
	}
	log.Printf("Created order %q (%s)", order.Title, order.ID)

	for _, username := range []string{"bob", "carol"} {
		bid := &model.Bid{
			OrderID:       order.ID,
			ExecutorID:    users[username].ID,
			Message:       "Happy to take this on.",
			PriceProposal: decimal.NullDecimal{Decimal: decimal.NewFromInt(12000), Valid: true},
		}
		if err := bidRepo.Create(ctx, bid); err != nil {
			log.Fatalf("Failed to create bid for %s: %v", username, err)
		}
		log.Printf("Created bid by %s on order %s", username, order.ID)
	}

	log.Println("Seed completed")
}
