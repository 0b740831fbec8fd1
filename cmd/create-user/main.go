package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"lexium/config"
	"lexium/db"
	"lexium/models"
	"lexium/services"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	database, err := db.Open(cfg, zap.NewNop())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close(database)

	// Run migrations
	if err := db.AutoMigrate(database, models.All()...); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)
	prompt := func(label string) string {
		fmt.Print(label + ": ")
		value, _ := reader.ReadString('\n')
		return strings.TrimSpace(value)
	}

	fmt.Println("=== Create New User ===")
	fmt.Println()

	input := services.UserInput{
		Username:  prompt("Username"),
		LastName:  prompt("Last name"),
		FirstName: prompt("First name"),
	}

	user, err := services.CreateUser(database, input)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ User created successfully!")
	fmt.Printf("  ID: %d\n", user.ID)
	fmt.Printf("  Username: %s\n", user.Username)
	fmt.Printf("  Name: %s\n", user.FullName())
}
