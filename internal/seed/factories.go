// Package seed provides helpers to create development and demo data for the
// application database. Not intended for production use.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devlink/internal/gravatar"
	"devlink/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var devStatuses = []string{
	"Developer", "Senior Developer", "Junior Developer", "Student or Learning",
	"Instructor or Teacher", "Intern", "Engineering Manager",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust", "SQL", "HTML", "CSS",
	"React", "Vue", "Docker", "Kubernetes", "PostgreSQL", "Redis", "AWS", "Git",
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "password123".
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	email := gofakeit.Email()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: string(hashed),
		Avatar:   gravatar.URL(email),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CreateProfile builds a developer profile for a user, with a couple of
// experience and education entries.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	skills := f.pickSkills(2 + f.rand.Intn(5))

	profile := &models.Profile{
		UserID:        user.ID,
		Company:       gofakeit.Company(),
		Website:       gofakeit.URL(),
		Location:      fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Bio:           gofakeit.Sentence(12),
		Status:        devStatuses[f.rand.Intn(len(devStatuses))],
		GithubProfile: strings.ToLower(gofakeit.Username()),
		Skills:        skills,
		Socials: models.Socials{
			Twitter:  fmt.Sprintf("https://twitter.com/%s", strings.ToLower(gofakeit.Username())),
			Linkedin: fmt.Sprintf("https://linkedin.com/in/%s", strings.ToLower(gofakeit.Username())),
		},
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	for i := 0; i < 1+f.rand.Intn(3); i++ {
		exp := &models.Experience{
			ProfileID:   profile.ID,
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			StartDate:   f.pastDate(8),
			Current:     i == 0,
			Description: gofakeit.Sentence(15),
		}
		if !exp.Current {
			exp.EndDate = f.pastDate(2)
		}
		if err := f.db.Create(exp).Error; err != nil {
			return nil, fmt.Errorf("create experience: %w", err)
		}
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       fmt.Sprintf("%s University", gofakeit.City()),
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		StartDate:    f.pastDate(12),
		EndDate:      f.pastDate(8),
		Courses:      f.pickSkills(3),
	}
	if err := f.db.Create(edu).Error; err != nil {
		return nil, fmt.Errorf("create education: %w", err)
	}

	return profile, nil
}

// CreatePost constructs and persists a post for the given author, with the
// author's name and avatar snapshotted onto it.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID: user.ID,
		Text:   gofakeit.Paragraph(1, 2, 8, " "),
		Name:   user.Name,
		Avatar: user.Avatar,
	}

	// spread posts over the last 60 days so the feed looks lived-in
	daysBack := f.rand.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(f.rand.Intn(24))*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// CreateComment adds a comment by the given user to a post.
func (f *Factory) CreateComment(post *models.Post, user *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   gofakeit.Sentence(10),
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// CreateLike records a like; duplicate likes are silently skipped.
func (f *Factory) CreateLike(post *models.Post, user *models.User) error {
	err := f.db.Exec(
		"INSERT INTO likes (user_id, post_id, created_at) VALUES (?, ?, CURRENT_TIMESTAMP) ON CONFLICT (user_id, post_id) DO NOTHING",
		user.ID, post.ID,
	).Error
	if err != nil {
		return fmt.Errorf("create like: %w", err)
	}
	return nil
}

func (f *Factory) pickSkills(n int) []string {
	picked := make([]string, 0, n)
	seen := map[int]bool{}
	for len(picked) < n && len(seen) < len(skillPool) {
		i := f.rand.Intn(len(skillPool))
		if !seen[i] {
			seen[i] = true
			picked = append(picked, skillPool[i])
		}
	}
	return picked
}

func (f *Factory) pastDate(maxYearsBack int) string {
	yearsBack := 1 + f.rand.Intn(maxYearsBack)
	t := time.Now().AddDate(-yearsBack, -f.rand.Intn(12), 0)
	return t.Format("2006-01-02")
}
