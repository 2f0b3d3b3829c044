package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"pairchat/backend/internal/config"
	"pairchat/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin promote <username>")
			os.Exit(1)
		}
		username := os.Args[2]
		if err := storageSvc.SetOperator(username, true); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %s is now an operator.\n", username)
	case "demote":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin demote <username>")
			os.Exit(1)
		}
		username := os.Args[2]
		if err := storageSvc.SetOperator(username, false); err != nil {
			log.Fatalf("Error demoting user: %v", err)
		}
		fmt.Printf("User %s is no longer an operator.\n", username)
	case "history":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin history <user_id_a> <user_id_b>")
			os.Exit(1)
		}
		a, errA := strconv.ParseUint(os.Args[2], 10, 64)
		b, errB := strconv.ParseUint(os.Args[3], 10, 64)
		if errA != nil || errB != nil {
			fmt.Println("Invalid user id. Please provide integers.")
			os.Exit(1)
		}
		if err := dumpHistory(storageSvc, uint(a), uint(b)); err != nil {
			log.Fatalf("Error loading history: %v", err)
		}
	case "mark-read":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin mark-read <sender_id> <recipient_id>")
			os.Exit(1)
		}
		sender, errA := strconv.ParseUint(os.Args[2], 10, 64)
		recipient, errB := strconv.ParseUint(os.Args[3], 10, 64)
		if errA != nil || errB != nil {
			fmt.Println("Invalid user id. Please provide integers.")
			os.Exit(1)
		}
		if err := storageSvc.MarkMessagesRead(uint(sender), uint(recipient)); err != nil {
			log.Fatalf("Error marking messages read: %v", err)
		}
		fmt.Println("Messages marked as read.")
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func dumpHistory(s storage.Storage, userA, userB uint) error {
	messages, err := s.GetHistory(userA, userB)
	if err != nil {
		return err
	}
	for _, m := range messages {
		read := " "
		if m.IsRead {
			read = "✓"
		}
		fmt.Printf("[%s] %s %d -> %d: %s\n",
			m.CreatedAt.Format(time.RFC3339), read, m.SenderID, m.RecipientID, m.Text)
	}
	fmt.Printf("%d messages.\n", len(messages))
	return nil
}
