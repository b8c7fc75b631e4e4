package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fitcheckapp/backend/internal/logger"
	"github.com/fitcheckapp/backend/internal/models"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

var outfitCaptions = []string{
	"Today's fit check",
	"Thrifted the whole look",
	"OOTD for the city",
	"Dressed for the weather, barely",
	"Old jacket, new energy",
	"Brunch fit",
	"Monochrome Monday",
	"Vintage find of the year",
}

var tagLabels = []string{
	"sneakers", "jacket", "jeans", "cap", "scarf",
	"boots", "sunglasses", "bag", "watch", "hoodie",
}

// SeedDev seeds the development database with realistic data
func (s *Seeder) SeedDev() error {
	log := func(msg string) {
		logger.Log.Info(msg)
	}

	log("Creating users...")
	users, err := s.seedUsers(50)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	log("Creating outfit posts...")
	posts, err := s.seedPosts(users, 200)
	if err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	log("Creating likes and saves...")
	if err := s.seedEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to seed engagement: %w", err)
	}

	log("Creating comments...")
	if err := s.seedComments(users, posts, 500); err != nil {
		return fmt.Errorf("failed to seed comments: %w", err)
	}

	return nil
}

// SeedTest seeds the test database with minimal, predictable data
func (s *Seeder) SeedTest() error {
	log := func(msg string) {
		logger.Log.Info(msg)
	}

	log("Creating test users...")
	testUserSpecs := []struct {
		username    string
		clerkUserID string
		displayName string
	}{
		{"alice", "user_alice", "Alice Smith"},
		{"bob", "user_bob", "Bob Johnson"},
		{"charlie", "user_charlie", "Charlie Brown"},
	}

	var users []models.User
	for _, spec := range testUserSpecs {
		var user models.User
		err := s.db.Where("username = ? OR clerk_user_id = ?", spec.username, spec.clerkUserID).First(&user).Error
		if err == nil {
			users = append(users, user)
			continue
		}

		user = models.User{
			ClerkUserID: spec.clerkUserID,
			Username:    spec.username,
			DisplayName: spec.displayName,
			AvatarURL:   fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/png?seed=%s", spec.username),
			Bio:         gofakeit.Sentence(8),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create test user %s: %w", spec.username, err)
		}
		users = append(users, user)
	}

	log("Creating test posts...")
	posts, err := s.seedPosts(users, 5)
	if err != nil {
		return fmt.Errorf("failed to seed posts: %w", err)
	}

	log("Creating test comments...")
	if err := s.seedComments(users, posts, 10); err != nil {
		return fmt.Errorf("failed to seed comments: %w", err)
	}

	return nil
}

// Clean removes all seeded data
func (s *Seeder) Clean() error {
	tables := []string{"comments", "tags", "posts", "images", "users"}
	for _, table := range tables {
		if err := s.db.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) seedUsers(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		user := models.User{
			ClerkUserID: fmt.Sprintf("user_%s", gofakeit.UUID()),
			Username:    username,
			DisplayName: gofakeit.Name(),
			Bio:         gofakeit.Sentence(10),
			AvatarURL:   fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/png?seed=%s", username),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedPosts(users []models.User, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]

		image := models.Image{
			UserID:      author.ID,
			S3Key:       fmt.Sprintf("outfits/seed/%s.jpg", gofakeit.UUID()),
			URL:         fmt.Sprintf("https://picsum.photos/seed/%d/600/800", rand.Intn(100000)),
			ContentType: "image/jpeg",
			Size:        int64(gofakeit.Number(50_000, 2_000_000)),
		}
		if err := s.db.Create(&image).Error; err != nil {
			return nil, err
		}

		post := models.Post{
			UserID:    author.ID,
			ImageID:   image.ID,
			Caption:   outfitCaptions[rand.Intn(len(outfitCaptions))],
			Likes:     models.StringArray{},
			Saves:     models.StringArray{},
			CreatedAt: gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now()),
		}

		for t := 0; t < rand.Intn(4); t++ {
			post.Tags = append(post.Tags, models.Tag{
				X:     gofakeit.Float64Range(0, 1),
				Y:     gofakeit.Float64Range(0, 1),
				Label: tagLabels[rand.Intn(len(tagLabels))],
			})
		}

		if err := s.db.Create(&post).Error; err != nil {
			return nil, err
		}

		if err := s.db.Model(&author).UpdateColumn("post_count", gorm.Expr("post_count + 1")).Error; err != nil {
			return nil, err
		}

		posts = append(posts, post)
	}
	return posts, nil
}

// seedEngagement gives each post a random set of likers and savers.
// Membership sets hold auth-provider IDs, each at most once, and every
// save is mirrored in that user's saved collection.
func (s *Seeder) seedEngagement(users []models.User, posts []models.Post) error {
	for i := range posts {
		post := &posts[i]

		likers := pickUsers(users, rand.Intn(len(users)/2+1))
		for _, u := range likers {
			post.Likes = append(post.Likes, u.ClerkUserID)
		}

		savers := pickUsers(users, rand.Intn(len(users)/5+1))
		for _, u := range savers {
			post.Saves = append(post.Saves, u.ClerkUserID)

			var saver models.User
			if err := s.db.First(&saver, "id = ?", u.ID).Error; err != nil {
				return err
			}
			cols := saver.SavedCollections
			if cols == nil {
				cols = models.SavedCollections{}
			}
			cols[models.DefaultCollection] = append(cols[models.DefaultCollection], post.ID)
			if err := s.db.Model(&saver).Update("saved_collections", cols).Error; err != nil {
				return err
			}
		}

		err := s.db.Model(post).Updates(map[string]interface{}{
			"likes": post.Likes,
			"saves": post.Saves,
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedComments(users []models.User, posts []models.Post, count int) error {
	for i := 0; i < count; i++ {
		post := posts[rand.Intn(len(posts))]
		author := users[rand.Intn(len(users))]

		comment := models.Comment{
			PostID:    post.ID,
			UserID:    &author.ID,
			Content:   gofakeit.Sentence(gofakeit.Number(3, 15)),
			CreatedAt: gofakeit.DateRange(post.CreatedAt, time.Now()),
		}
		if err := s.db.Create(&comment).Error; err != nil {
			return err
		}
		if err := s.db.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
			return err
		}
	}
	return nil
}

// pickUsers returns up to n distinct users
func pickUsers(users []models.User, n int) []models.User {
	if n >= len(users) {
		n = len(users)
	}
	perm := rand.Perm(len(users))
	picked := make([]models.User, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, users[idx])
	}
	return picked
}
