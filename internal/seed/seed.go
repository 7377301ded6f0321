// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var categories = []string{
	"Technology", "Programming", "Travel", "Food", "Music",
	"Books", "Science", "Fitness", "Finance", "Art",
}

// Seeder populates the database with demo users, posts and engagement.
type Seeder struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes seeded data. Order matters because of foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"notifications",
		"post_view_events", "post_like_events", "post_comment_events",
		"likes", "comments", "follows", "posts", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("cleared existing data")
	return nil
}

// Run seeds users, a follow mesh, posts and engagement history.
func (s *Seeder) Run(opts Options) error {
	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return err
	}
	if err := s.seedFollows(users); err != nil {
		return err
	}
	posts, err := s.seedPosts(users, opts.NumPosts)
	if err != nil {
		return err
	}
	if err := s.seedEngagement(users, posts); err != nil {
		return err
	}
	log.Printf("seeded %d users and %d posts", len(users), len(posts))
	return nil
}

func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	// One shared hash keeps seeding fast; every demo account logs in with
	// "password123".
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		user := &models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: string(hash),
			Bio:      gofakeit.Sentence(8),
			Avatar:   fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("creating user %s: %w", username, err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedFollows(users []*models.User) error {
	for _, follower := range users {
		count := s.rnd.Intn(6)
		for i := 0; i < count; i++ {
			followee := users[s.rnd.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			follow := &models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
			// Duplicate edges hit the unique index; ignore them.
			_ = s.db.Create(follow).Error
			if follow.ID != 0 {
				_ = s.db.Create(&models.Notification{
					RecipientID: followee.ID,
					Type:        models.NotificationFollow,
					ActorID:     follower.ID,
				}).Error
			}
		}
	}
	return nil
}

func (s *Seeder) seedPosts(users []*models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rnd.Intn(len(users))]
		post := &models.Post{
			Title:    gofakeit.Sentence(5),
			Content:  gofakeit.Paragraph(2, 4, 8, "\n"),
			UserID:   author.ID,
			Category: categories[s.rnd.Intn(len(categories))],
			Tags:     models.StringList{gofakeit.Word(), gofakeit.Word()},
		}
		// Spread creation over the last 90 days so time series look real.
		post.CreatedAt = time.Now().UTC().
			Add(-time.Duration(s.rnd.Intn(90*24)) * time.Hour)
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("creating post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// seedEngagement writes views, likes and comments together with their event
// log rows, keeping counters and logs consistent the way the live write
// paths do.
func (s *Seeder) seedEngagement(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		viewCount := s.rnd.Intn(50)
		for i := 0; i < viewCount; i++ {
			at := s.timeSince(post.CreatedAt)
			if err := s.db.Create(&models.PostViewEvent{PostID: post.ID, OccurredAt: at}).Error; err != nil {
				return err
			}
		}

		likers := s.rnd.Intn(8)
		likeCount := 0
		for i := 0; i < likers; i++ {
			user := users[s.rnd.Intn(len(users))]
			like := &models.Like{UserID: user.ID, PostID: post.ID}
			if err := s.db.Create(like).Error; err != nil {
				continue // duplicate liker
			}
			likeCount++
			at := s.timeSince(post.CreatedAt)
			if err := s.db.Create(&models.PostLikeEvent{PostID: post.ID, OccurredAt: at}).Error; err != nil {
				return err
			}
			_ = s.db.Create(&models.Notification{
				RecipientID: post.UserID,
				Type:        models.NotificationLike,
				ActorID:     user.ID,
				PostID:      &post.ID,
			}).Error
		}

		commentCount := s.rnd.Intn(5)
		for i := 0; i < commentCount; i++ {
			user := users[s.rnd.Intn(len(users))]
			comment := &models.Comment{
				Text:   gofakeit.Sentence(12),
				UserID: user.ID,
				PostID: post.ID,
			}
			comment.CreatedAt = s.timeSince(post.CreatedAt)
			if err := s.db.Create(comment).Error; err != nil {
				return err
			}
			if err := s.db.Create(&models.PostCommentEvent{PostID: post.ID, OccurredAt: comment.CreatedAt}).Error; err != nil {
				return err
			}
			_ = s.db.Create(&models.Notification{
				RecipientID: post.UserID,
				Type:        models.NotificationComment,
				ActorID:     user.ID,
				PostID:      &post.ID,
			}).Error
		}

		if err := s.db.Model(&models.Post{}).Where("id = ?", post.ID).UpdateColumns(map[string]interface{}{
			"view_count":    viewCount,
			"like_count":    likeCount,
			"comment_count": commentCount,
			"share_count":   s.rnd.Intn(10),
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// timeSince picks a random instant between `from` and now.
func (s *Seeder) timeSince(from time.Time) time.Time {
	window := time.Since(from)
	if window <= 0 {
		return time.Now().UTC()
	}
	return from.Add(time.Duration(s.rnd.Int63n(int64(window)))).UTC()
}
