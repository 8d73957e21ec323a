package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"article-api/internal/adapter/db/postgres"
	"article-api/pkg/security"
)

// Defaults for the demo dataset
const (
	DefaultAdminName     = "Administrator"
	DefaultAdminEmail    = "admin@test.com"
	DefaultPassword      = "toptal"
	DefaultUserCount     = 10
	DefaultArticleCount  = 50
	defaultInsertBatchSz = 100
)

// Options controls how much data Run generates.
type Options struct {
	Users         int
	Articles      int
	AdminEmail    string
	AdminPassword string
}

// DefaultOptions returns the stock dataset: one admin, ten users and fifty articles.
func DefaultOptions() Options {
	return Options{
		Users:         DefaultUserCount,
		Articles:      DefaultArticleCount,
		AdminEmail:    DefaultAdminEmail,
		AdminPassword: DefaultPassword,
	}
}

// Result reports what Run inserted.
type Result struct {
	AdminCreated bool
	Users        int
	Articles     int
}

// Seeder fills the database with demo users and articles.
type Seeder struct {
	db     *gorm.DB
	hasher security.PasswordHasher
	log    *zap.Logger
	rng    *rand.Rand
}

// New creates a Seeder. Generated content is random unless a seeded rng is set with WithRand.
func New(db *gorm.DB, hasher security.PasswordHasher, log *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		hasher: hasher,
		log:    log,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithRand replaces the random source, making generated titles and names repeatable.
func (s *Seeder) WithRand(rng *rand.Rand) *Seeder {
	s.rng = rng
	return s
}

// Run inserts the admin account (once) plus the requested users and articles in one transaction.
// Every generated account shares the admin password.
func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Users < 0 || opts.Articles < 0 {
		return Result{}, errors.New("seed counts cannot be negative")
	}
	if opts.AdminEmail == "" {
		opts.AdminEmail = DefaultAdminEmail
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = DefaultPassword
	}

	hash, err := s.hasher.Hash(opts.AdminPassword)
	if err != nil {
		return Result{}, fmt.Errorf("failed to hash seed password: %w", err)
	}

	var res Result
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		admin := postgres.UserSchema{Name: DefaultAdminName, Email: strings.ToLower(opts.AdminEmail), Password: hash}
		created := tx.Where(postgres.UserSchema{Email: admin.Email}).FirstOrCreate(&admin)
		if created.Error != nil {
			return fmt.Errorf("failed to seed admin: %w", created.Error)
		}
		res.AdminCreated = created.RowsAffected == 1

		if opts.Users > 0 {
			users := make([]postgres.UserSchema, opts.Users)
			for i := range users {
				users[i] = s.user(hash)
			}
			if err := tx.CreateInBatches(&users, defaultInsertBatchSz).Error; err != nil {
				return fmt.Errorf("failed to seed users: %w", err)
			}
			res.Users = len(users)
		}

		if opts.Articles > 0 {
			articles := make([]postgres.ArticleSchema, opts.Articles)
			for i := range articles {
				articles[i] = s.article()
			}
			if err := tx.CreateInBatches(&articles, defaultInsertBatchSz).Error; err != nil {
				return fmt.Errorf("failed to seed articles: %w", err)
			}
			res.Articles = len(articles)
		}

		return nil
	})
	if err != nil {
		s.log.Error("seeding failed", zap.Error(err))
		return Result{}, err
	}

	s.log.Info("database seeded",
		zap.Bool("admin_created", res.AdminCreated),
		zap.Int("users", res.Users),
		zap.Int("articles", res.Articles),
	)
	return res, nil
}

var (
	firstNames = []string{"Ada", "Alan", "Barbara", "Dennis", "Edsger", "Frances", "Grace", "Ken", "Linus", "Margaret", "Niklaus", "Rob"}
	lastNames  = []string{"Allen", "Hamilton", "Hopper", "Kernighan", "Knuth", "Liskov", "Lovelace", "Pike", "Ritchie", "Thompson", "Turing", "Wirth"}
	words      = []string{
		"api", "article", "build", "cache", "client", "deploy", "design", "error", "framework", "handler",
		"request", "migration", "model", "query", "release", "response", "route", "schema", "server", "token",
		"tutorial", "validation", "version", "worker",
	}
)

func (s *Seeder) user(hash string) postgres.UserSchema {
	first := firstNames[s.rng.IntN(len(firstNames))]
	last := lastNames[s.rng.IntN(len(lastNames))]
	// A uuid fragment keeps emails unique across repeated runs
	email := fmt.Sprintf("%s.%s.%s@example.com", strings.ToLower(first), strings.ToLower(last), uuid.NewString()[:8])

	return postgres.UserSchema{
		Name:     first + " " + last,
		Email:    email,
		Password: hash,
	}
}

func (s *Seeder) article() postgres.ArticleSchema {
	title := s.sentence(4 + s.rng.IntN(5))

	paragraphs := make([]string, 2+s.rng.IntN(3))
	for i := range paragraphs {
		sentences := make([]string, 3+s.rng.IntN(4))
		for j := range sentences {
			sentences[j] = s.sentence(6 + s.rng.IntN(8))
		}
		paragraphs[i] = strings.Join(sentences, " ")
	}

	return postgres.ArticleSchema{
		Title: strings.TrimSuffix(title, "."),
		Body:  strings.Join(paragraphs, "\n\n"),
	}
}

// sentence joins n random words, capitalised and terminated with a period.
func (s *Seeder) sentence(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[s.rng.IntN(len(words))]
	}
	out := strings.Join(parts, " ")
	return strings.ToUpper(out[:1]) + out[1:] + "."
}
