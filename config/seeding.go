package config

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"p9e.in/agrogreen/models"
)

// =====================================================
// Bank Master Seeding
// =====================================================

// SeedBanks loads a starter bank master so the state -> branch -> bank
// cascade works on a fresh database.
func SeedBanks() {
	banks := []models.Bank{
		{State: "Karnataka", Branch: "Bengaluru", BankName: "State Bank of India", IfscCode: "SBIN0000691"},
		{State: "Karnataka", Branch: "Bengaluru", BankName: "Canara Bank", IfscCode: "CNRB0000406"},
		{State: "Karnataka", Branch: "Hubballi", BankName: "Canara Bank", IfscCode: "CNRB0001157"},
		{State: "Maharashtra", Branch: "Pune", BankName: "Bank of Maharashtra", IfscCode: "MAHB0000001"},
		{State: "Maharashtra", Branch: "Nagpur", BankName: "State Bank of India", IfscCode: "SBIN0000432"},
		{State: "Telangana", Branch: "Hyderabad", BankName: "Union Bank of India", IfscCode: "UBIN0801003"},
		{State: "Telangana", Branch: "Warangal", BankName: "State Bank of India", IfscCode: "SBIN0020202"},
	}

	for _, bank := range banks {
		var existing models.Bank
		err := DB.Where("state = ? AND branch = ? AND bank_name = ?", bank.State, bank.Branch, bank.BankName).First(&existing).Error
		if err != nil {
			if err := DB.Create(&bank).Error; err != nil {
				log.Printf("Error creating bank %s (%s): %v", bank.BankName, bank.Branch, err)
			} else {
				log.Printf("Created bank: %s - %s, %s", bank.BankName, bank.Branch, bank.State)
			}
		}
	}
}

// =====================================================
// User Seeding
// =====================================================

// SeedUsers creates default users for each workflow role
func SeedUsers() {
	// Default password for all seeded users (should be changed on first login)
	defaultPassword := "Welcome@123"
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return
	}

	usersToSeed := []models.User{
		{Name: "Admin", Email: "admin@agrogreen.in", Phone: "9999999999", Role: "admin", Mode: models.ModeCreate},
		{Name: "Field Submitter", Email: "field@agrogreen.in", Phone: "9999999901", Role: "submitter", Mode: models.ModeCreate},
		{Name: "Checker", Email: "checker@agrogreen.in", Phone: "9999999902", Role: "checker", Mode: models.ModeEdit},
	}

	for _, userData := range usersToSeed {
		var existingUser models.User
		err := DB.Where("email = ?", userData.Email).First(&existingUser).Error
		if err == nil {
			continue
		}

		userData.PasswordHash = string(passwordHash)
		userData.IsActive = true
		if err := DB.Create(&userData).Error; err != nil {
			log.Printf("Error creating user %s: %v", userData.Name, err)
			continue
		}
		log.Printf("Created user: %s (%s) - role %s", userData.Name, userData.Email, userData.Role)
	}
}
