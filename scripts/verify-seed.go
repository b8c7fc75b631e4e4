package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/fitcheckapp/backend/internal/database"
	"github.com/fitcheckapp/backend/internal/models"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Initialize database connection
	if err := database.Initialize(); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	fmt.Println("🔍 Verifying seed data...")
	fmt.Println()

	// Count records
	var userCount, postCount, commentCount, imageCount, tagCount int64

	database.DB.Model(&models.User{}).Where("deleted_at IS NULL").Count(&userCount)
	database.DB.Model(&models.Post{}).Where("deleted_at IS NULL").Count(&postCount)
	database.DB.Model(&models.Comment{}).Where("deleted_at IS NULL").Count(&commentCount)
	database.DB.Model(&models.Image{}).Where("deleted_at IS NULL").Count(&imageCount)
	database.DB.Model(&models.Tag{}).Count(&tagCount)

	fmt.Println("📊 Record Counts:")
	fmt.Printf("  Users:    %d\n", userCount)
	fmt.Printf("  Posts:    %d\n", postCount)
	fmt.Printf("  Images:   %d\n", imageCount)
	fmt.Printf("  Tags:     %d\n", tagCount)
	fmt.Printf("  Comments: %d\n", commentCount)
	fmt.Println()

	// Sample data
	fmt.Println("📝 Sample Data:")
	fmt.Println()

	var users []models.User
	database.DB.Where("deleted_at IS NULL").Limit(3).Find(&users)
	fmt.Println("  Sample Users:")
	for _, u := range users {
		fmt.Printf("    - %s (@%s) - %d posts\n", u.DisplayName, u.Username, u.PostCount)
	}
	fmt.Println()

	var posts []models.Post
	database.DB.Preload("User").Preload("Tags").Where("deleted_at IS NULL").
		Order("created_at DESC").Limit(3).Find(&posts)
	fmt.Println("  Sample Posts:")
	for _, p := range posts {
		fmt.Printf("    - %q by @%s - %d likes, %d saves, %d tags, %d comments\n",
			p.Caption, p.User.Username, len(p.Likes), len(p.Saves), len(p.Tags), p.CommentCount)
	}
	fmt.Println()

	// Saved collections
	var savers []models.User
	database.DB.Where("saved_collections IS NOT NULL").Limit(3).Find(&savers)
	fmt.Println("  Sample Saved Collections:")
	for _, u := range savers {
		data, _ := json.Marshal(u.SavedCollections)
		fmt.Printf("    - @%s: %s\n", u.Username, string(data))
	}

	fmt.Println()
	fmt.Println("✅ Seed verification complete")
}
