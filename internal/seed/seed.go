// Package seed populates a development database with realistic fake data.
package seed

import (
	"fmt"
	"strings"

	"devconnect/internal/gravatar"
	"devconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
}

// DefaultOptions is a small but browsable data set.
var DefaultOptions = Options{
	Users:           10,
	PostsPerUser:    3,
	CommentsPerPost: 2,
}

// Password is the login password every seeded user gets.
const Password = "password123"

var skillPool = []string{
	"Go", "TypeScript", "React", "PostgreSQL", "Redis", "Docker",
	"Kubernetes", "GraphQL", "Terraform", "Python",
}

// NewUser builds a fake user with a hashed password and gravatar avatar.
func NewUser() (*models.User, error) {
	email := strings.ToLower(gofakeit.Email())
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: string(hash),
		Avatar:   gravatar.URL(email),
	}, nil
}

// NewProfile builds a fake profile for the given user.
func NewProfile(userID uint, handle string) *models.Profile {
	pool := make([]string, len(skillPool))
	copy(pool, skillPool)
	gofakeit.ShuffleStrings(pool)
	skills := pool[:gofakeit.Number(2, 5)]

	return &models.Profile{
		UserID:         userID,
		Handle:         handle,
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		Bio:            gofakeit.Sentence(12),
		Status:         gofakeit.JobTitle(),
		GithubUsername: gofakeit.Username(),
		Skills:         skills,
		Social: models.SocialLinks{
			Twitter: "https://twitter.com/" + gofakeit.Username(),
		},
		Experience: []models.Experience{
			{
				Title:       gofakeit.JobTitle(),
				Company:     gofakeit.Company(),
				Location:    gofakeit.City(),
				From:        gofakeit.Date().Format("2006-01-02"),
				Current:     true,
				Description: gofakeit.Sentence(10),
			},
		},
		Education: []models.Education{
			{
				School:       gofakeit.Company() + " University",
				Degree:       "BSc",
				FieldOfStudy: "Computer Science",
				From:         "2015-09-01",
				To:           "2019-06-30",
				Description:  gofakeit.Sentence(8),
			},
		},
	}
}

// NewPost builds a fake post authored by the given user.
func NewPost(user *models.User) *models.Post {
	return &models.Post{
		UserID: user.ID,
		Text:   gofakeit.Sentence(gofakeit.Number(10, 30)),
		Name:   user.Name,
		Avatar: user.Avatar,
	}
}

// Run fills the database with fake users, profiles, and posts with comments
// and likes. Safe to run repeatedly; every run adds new rows.
func Run(db *gorm.DB, opts Options) error {
	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := NewUser()
		if err != nil {
			return err
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)

		handle := fmt.Sprintf("%s-%d", strings.ToLower(gofakeit.Username()), user.ID)
		if err := db.Omit("User").Create(NewProfile(user.ID, handle)).Error; err != nil {
			return fmt.Errorf("seed profile: %w", err)
		}
	}

	for _, author := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post := NewPost(author)
			if err := db.Create(post).Error; err != nil {
				return fmt.Errorf("seed post: %w", err)
			}

			for j := 0; j < opts.CommentsPerPost; j++ {
				commenter := users[gofakeit.Number(0, len(users)-1)]
				comment := &models.Comment{
					PostID: post.ID,
					UserID: commenter.ID,
					Text:   gofakeit.Sentence(gofakeit.Number(10, 20)),
					Name:   commenter.Name,
					Avatar: commenter.Avatar,
				}
				if err := db.Create(comment).Error; err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
			}

			// A subset of users likes each post; the unique index keeps the
			// pairs distinct.
			for _, liker := range users {
				if gofakeit.Bool() {
					like := &models.Like{PostID: post.ID, UserID: liker.ID}
					if err := db.Create(like).Error; err != nil {
						return fmt.Errorf("seed like: %w", err)
					}
				}
			}
		}
	}

	return nil
}
