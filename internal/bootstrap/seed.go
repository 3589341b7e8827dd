package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"judoacademy.app/hub/internal/model"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Group{},
		&model.Document{},
	)
}

// SeedGroups creates a starter set of training groups on an empty database.
func SeedGroups(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Group{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaultGroups := []model.Group{
		{Name: "Infantil", Description: stringPtr("Hasta 12 años"), Color: model.GroupColors[0]},
		{Name: "Juvenil", Description: stringPtr("De 13 a 17 años"), Color: model.GroupColors[1]},
		{Name: "Adultos", Description: stringPtr("18 años en adelante"), Color: model.GroupColors[2]},
	}

	for _, group := range defaultGroups {
		if err := db.Create(&group).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Default groups seeded successfully")
	return nil
}

func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@judoacademy.app").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := "admin123"
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Email:        "admin@judoacademy.app",
		PasswordHash: string(hashedPasswordBytes),
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	adminProfile := model.Profile{
		ID:       adminUser.ID,
		Email:    adminUser.Email,
		FullName: "Administrador",
		Role:     model.RoleAdmin,
	}

	if err := db.Create(&adminProfile).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Println("   Email: admin@judoacademy.app")
	log.Println("   Password: admin123")

	return nil
}

func stringPtr(s string) *string {
	return &s
}
