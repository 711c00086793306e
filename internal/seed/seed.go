package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"devlink/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with a connected set of users, profiles,
// posts, comments, and likes.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rand    *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Child tables go first to satisfy
// foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []string{"likes", "comments", "posts", "experiences", "educations", "profiles", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds the database according to opts.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	log.Printf("Seeding %d users...", opts.NumUsers)
	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)

		// Most but not all users have a profile, same as real traffic.
		if s.rand.Intn(10) < 8 {
			if _, err := s.factory.CreateProfile(user); err != nil {
				return err
			}
		}
	}

	log.Printf("Seeding %d posts...", opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[s.rand.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return err
		}

		for j := 0; j < s.rand.Intn(4); j++ {
			commenter := users[s.rand.Intn(len(users))]
			if _, err := s.factory.CreateComment(post, commenter); err != nil {
				return err
			}
		}

		for j := 0; j < s.rand.Intn(6); j++ {
			liker := users[s.rand.Intn(len(users))]
			if err := s.factory.CreateLike(post, liker); err != nil {
				return err
			}
		}
	}

	log.Println("Seeding complete")
	return nil
}
