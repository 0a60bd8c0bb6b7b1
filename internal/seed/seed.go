// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var categoryNames = []string{
	"Technology", "Programming", "Design", "Travel", "Food",
	"Science", "Opinion", "Tutorials", "News", "Reviews",
}

// Seeder populates the database with demo content.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a new seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded content. Join tables go first so foreign
// keys never block the deletes.
func (s *Seeder) ClearAll() error {
	tables := []string{
		"reactions", "post_images", "post_categories", "post_tags",
		"posts", "categories", "tags", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds users, taxonomies, posts, attachments and reactions.
func (s *Seeder) Run(opts Options) error {
	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return err
	}

	categories, err := s.seedCategories()
	if err != nil {
		return err
	}

	tags, err := s.seedTags(20)
	if err != nil {
		return err
	}

	staff := staffOnly(users)
	if len(staff) == 0 {
		return fmt.Errorf("no staff users seeded")
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		post, err := s.seedPost(staff[s.rand.Intn(len(staff))], categories, tags)
		if err != nil {
			return err
		}
		posts = append(posts, post)
	}

	if err := s.seedReactions(posts, users); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d categories, %d tags, %d posts",
		len(users), len(categories), len(tags), len(posts))
	return nil
}

func (s *Seeder) seedUsers(n int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password1234"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		user := &models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password: string(hash),
			// Every tenth account can author content.
			IsStaff: i%10 == 0,
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedCategories() ([]models.Category, error) {
	categories := make([]models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		category := models.Category{Name: name, Slug: slug.Make(name)}
		if err := s.db.Create(&category).Error; err != nil {
			return nil, fmt.Errorf("failed to seed category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (s *Seeder) seedTags(n int) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, n)
	seen := map[string]bool{}
	for len(tags) < n {
		name := gofakeit.HackerNoun()
		tagSlug := slug.Make(name)
		if seen[tagSlug] {
			continue
		}
		seen[tagSlug] = true

		tag := models.Tag{Name: name, Slug: tagSlug}
		if err := s.db.Create(&tag).Error; err != nil {
			return nil, fmt.Errorf("failed to seed tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (s *Seeder) seedPost(author *models.User, categories []models.Category, tags []models.Tag) (*models.Post, error) {
	title := strings.TrimSuffix(gofakeit.Sentence(6), ".")
	content := fmt.Sprintf("# %s\n\n%s\n\n## Details\n\n%s",
		title,
		gofakeit.Paragraph(2, 4, 8, "\n\n"),
		gofakeit.Paragraph(1, 3, 6, "\n\n"))

	post := &models.Post{
		Title:      title,
		Slug:       fmt.Sprintf("%s-%d", slug.Make(title), s.rand.Intn(100000)),
		Content:    content,
		Excerpt:    gofakeit.Sentence(15),
		AuthorID:   author.ID,
		Categories: pick(s.rand, categories, 1+s.rand.Intn(2)),
		Tags:       pick(s.rand, tags, s.rand.Intn(4)),
		Published:  s.rand.Intn(10) > 1,
		CreatedAt:  time.Now().Add(-time.Duration(s.rand.Intn(90*24)) * time.Hour),
	}

	if err := s.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("failed to seed post: %w", err)
	}
	return post, nil
}

func (s *Seeder) seedReactions(posts []*models.Post, users []*models.User) error {
	for _, post := range posts {
		for _, user := range users {
			if s.rand.Intn(5) != 0 {
				continue
			}
			reactionType := models.ReactionLike
			if s.rand.Intn(4) == 0 {
				reactionType = models.ReactionDislike
			}
			reaction := &models.Reaction{
				PostID:       post.ID,
				UserID:       user.ID,
				ReactionType: reactionType,
			}
			if err := s.db.Create(reaction).Error; err != nil {
				return fmt.Errorf("failed to seed reaction: %w", err)
			}
		}
	}
	return nil
}

func staffOnly(users []*models.User) []*models.User {
	var staff []*models.User
	for _, u := range users {
		if u.IsStaff {
			staff = append(staff, u)
		}
	}
	return staff
}

func pick[T any](r *rand.Rand, pool []T, n int) []T {
	if n > len(pool) {
		n = len(pool)
	}
	idx := r.Perm(len(pool))[:n]
	out := make([]T, 0, n)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}
