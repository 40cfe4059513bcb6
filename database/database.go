package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/tutorbridge/volunteer_tutor/configs"
	"github.com/tutorbridge/volunteer_tutor/models"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.TutorProfile{},
		&models.Subject{},
		&models.TutorSubject{},
		&models.Session{},
		&models.Review{},
		&models.Certificate{},
		&models.Conversation{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

// SeedSubjects loads a starter subject catalog on an empty database so
// tutors have something to attach to.
func SeedSubjects() {
	var count int64
	if err := DB.Model(&models.Subject{}).Count(&count).Error; err != nil {
		log.Printf("🔥 Failed to check subject catalog: %v", err)
		return
	}
	if count > 0 {
		return
	}

	subjects := []models.Subject{
		{Name: "Mathematics", Description: "Algebra, geometry, calculus", Category: "Academic"},
		{Name: "English", Description: "Reading, writing, essays", Category: "Academic"},
		{Name: "Science", Description: "Biology, chemistry, physics", Category: "Academic"},
		{Name: "French", Description: "Conversation and grammar", Category: "Languages"},
		{Name: "Computer Science", Description: "Programming fundamentals", Category: "Technology"},
	}
	if err := DB.Create(&subjects).Error; err != nil {
		log.Printf("🔥 Failed to seed subject catalog: %v", err)
		return
	}
	log.Println("✅ Subject catalog seeded successfully")
}
