package schema

import (
	"database/sql"
	"log"

	"campusccms/utils"
)

// defaultCategories are the seed categories created on first start.
var defaultCategories = []struct {
	name        string
	description string
}{
	{"Academic Issues", "Problems related to courses, grades, or faculty"},
	{"Facility Problems", "Issues with classrooms, buildings, or equipment"},
	{"Administrative Concerns", "Problems with registration, records, or offices"},
	{"Security Issues", "Safety and security concerns"},
	{"Other", "Other types of complaints"},
}

// SeedReferenceData inserts the default complaint categories and the default
// admin account if they are missing. Safe to run on every start.
func SeedReferenceData(db *sql.DB, adminPassword string) {
	for _, c := range defaultCategories {
		_, err := db.Exec(
			`INSERT IGNORE INTO complaint_categories (name, description) VALUES (?, ?)`,
			c.name, c.description,
		)
		if err != nil {
			log.Fatalf("[SCHEMA] Failed to seed category %q: %v", c.name, err)
		}
	}
	log.Printf("[SCHEMA] categories seeded (%d)", len(defaultCategories))

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE username = 'admin'`).Scan(&count); err != nil {
		log.Fatalf("[SCHEMA] Failed to check default admin: %v", err)
	}
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("[SCHEMA] Failed to hash default admin password: %v", err)
	}
	_, err = db.Exec(
		`INSERT INTO users (username, password, email, full_name, role)
		 VALUES ('admin', ?, 'admin@campus.edu', 'System Administrator', 'admin')`,
		hash,
	)
	if err != nil {
		log.Fatalf("[SCHEMA] Failed to create default admin: %v", err)
	}
	log.Println("[SCHEMA] created default admin account")
}
