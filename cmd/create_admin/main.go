// create_admin creates or updates an admin account from flags.
// Usage: go run ./cmd/create_admin -username staff -password secret -email staff@campus.edu -name "Staff Member"
// Requires .env (or env) with DB_*.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	"campusccms/config"
	"campusccms/schema"
	"campusccms/utils"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

func main() {
	username := flag.String("username", "", "admin username (required)")
	password := flag.String("password", "", "admin password (required)")
	email := flag.String("email", "", "admin email (required)")
	fullName := flag.String("name", "", "admin full name (required)")
	flag.Parse()

	if *username == "" || *password == "" || *email == "" || *fullName == "" {
		flag.Usage()
		log.Fatal("username, password, email and name are all required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found")
	}
	cfg := config.LoadConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("DB open: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("DB ping: %v", err)
	}
	schema.InitializeDatabase(db)

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Hash password: %v", err)
	}

	// Create-or-update keyed on username+role so reruns are safe
	var adminID int64
	err = db.QueryRow(`SELECT user_id FROM users WHERE username = ? AND role = 'admin'`, *username).Scan(&adminID)
	switch {
	case err == sql.ErrNoRows:
		res, err := db.Exec(
			`INSERT INTO users (username, password, email, full_name, role) VALUES (?, ?, ?, ?, 'admin')`,
			*username, hash, *email, *fullName,
		)
		if err != nil {
			log.Fatalf("Insert admin: %v", err)
		}
		adminID, _ = res.LastInsertId()
		log.Printf("[create_admin] created admin '%s' (user_id=%d)", *username, adminID)
	case err != nil:
		log.Fatalf("Lookup admin: %v", err)
	default:
		_, err = db.Exec(
			`UPDATE users SET password = ?, email = ?, full_name = ? WHERE user_id = ?`,
			hash, *email, *fullName, adminID,
		)
		if err != nil {
			log.Fatalf("Update admin: %v", err)
		}
		log.Printf("[create_admin] updated admin '%s' (user_id=%d)", *username, adminID)
	}
}
