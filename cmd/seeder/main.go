package main

import (
	"context"
	"fmt"
	"time"

	"github.com/quocanhngo/travelmate/internal/config"
	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/repository"
	"github.com/quocanhngo/travelmate/migrations"
	"github.com/quocanhngo/travelmate/pkg/auth"
	applog "github.com/quocanhngo/travelmate/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const seedUsers = 5

func main() {
	cfg, _ := config.Load()
	log := applog.Must(cfg.App.Env)
	defer func() { _ = log.Sync() }()

	if cfg.App.Production() {
		log.Fatal("refusing to seed a production database")
	}

	// Force DB logging off to avoid noise
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := migrations.Run(cfg.DB.URL(), log); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	posts := repository.NewPostRepository(db)
	itineraries := repository.NewItineraryRepository(db)

	if err := posts.EnsureCategories(ctx, model.DefaultCategories); err != nil {
		log.Fatal("failed to seed post categories", zap.Error(err))
	}

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)

	log.Info("seeding users", zap.Int("count", seedUsers))
	var first string
	for i := 1; i <= seedUsers; i++ {
		uid := fmt.Sprintf("dev-user-%d", i)
		email := fmt.Sprintf("traveler%d@travelmate.local", i)

		if err := seedUser(ctx, users, profiles, uid, email, fmt.Sprintf("traveler%d", i)); err != nil {
			log.Error("failed to seed user", zap.String("email", email), zap.Error(err))
			continue
		}
		if first == "" {
			first = email
		}

		token, err := tokens.GenerateToken(uid, email)
		if err != nil {
			log.Error("failed to mint dev token", zap.String("email", email), zap.Error(err))
			continue
		}
		fmt.Printf("%s\tBearer %s\n", email, token)
	}

	if first != "" {
		if err := seedContent(ctx, posts, itineraries, first); err != nil {
			log.Error("failed to seed sample content", zap.Error(err))
		}
	}

	log.Info("seeding completed", zap.String("authMode", cfg.Auth.Mode))
	if cfg.Auth.Mode != config.AuthModeLocal {
		log.Warn("dev tokens are only accepted with AUTH_MODE=local")
	}
}

func seedUser(ctx context.Context, users *repository.UserRepository, profiles *repository.ProfileRepository, uid, email, nickname string) error {
	if _, err := users.FindByFirebaseUID(ctx, uid); repository.IsNotFound(err) {
		if err := users.Create(ctx, &model.User{FirebaseUID: uid, Email: email}); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if _, err := profiles.FindByEmail(ctx, email); !repository.IsNotFound(err) {
		return err
	}
	p := model.NewUserProfile(email, nickname)
	p.Bio = "Seeded traveler account"
	p.TravelStyles = model.StringList{"backpacking"}
	p.Interests = model.StringList{"food", "hiking"}
	return profiles.Create(ctx, p)
}

func seedContent(ctx context.Context, posts *repository.PostRepository, itineraries *repository.ItineraryRepository, author string) error {
	existing, _, err := posts.List(ctx, repository.PostFilter{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	category, err := posts.FindCategoryByName(ctx, "General")
	if err != nil {
		return err
	}
	if err := posts.Create(ctx, &model.Post{
		AuthorID:   author,
		CategoryID: category.ID,
		Title:      "Welcome to TravelMate",
		Content:    "Share your trips, find companions and plan together.",
		ImageURLs:  model.StringList{},
	}); err != nil {
		return err
	}

	start := time.Now().UTC().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	return itineraries.Create(ctx, &model.Itinerary{
		AuthorID:    author,
		Title:       "Weekend in Da Lat",
		Description: "Two relaxed days in the highlands.",
		StartDate:   model.Date{Time: start},
		EndDate:     model.Date{Time: start.AddDate(0, 0, 1)},
		ImageURLs:   model.StringList{},
		Days: []model.ItineraryDay{
			{DayNumber: 1, Date: model.Date{Time: start}, Activities: []model.ItineraryActivity{
				{Time: "09:00", Description: "Coffee by Xuan Huong lake", Location: "Xuan Huong Lake"},
			}},
			{DayNumber: 2, Date: model.Date{Time: start.AddDate(0, 0, 1)}, Activities: []model.ItineraryActivity{
				{Time: "08:00", Description: "Langbiang hike", Location: "Langbiang"},
			}},
		},
	})
}
