package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/feedbackboard/backend/config"
	"github.com/feedbackboard/backend/internal/database"
	"github.com/feedbackboard/backend/internal/logging"
	"github.com/feedbackboard/backend/internal/models"
	"github.com/feedbackboard/backend/internal/store"
)

// demo password shared by every seeded account
const password = "testpassword123"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg)

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg, log); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	users := store.NewUserStore(db, cfg.BcryptCost)
	feedbacks := store.NewFeedbackStore(db)
	votes := store.NewVoteStore(db)

	emails := []string{"john.doe@example.com", "jane.smith@example.com", "test.user@example.com"}
	var seeded []*models.User
	for _, email := range emails {
		u, err := users.Create(ctx, email, password, nil)
		if errors.Is(err, store.ErrDuplicateEmail) {
			if u, err = users.FindByEmail(ctx, email); err != nil {
				log.Fatalf("Failed to load existing user %s: %v", email, err)
			}
			log.Infof("User %s already exists", email)
		} else if err != nil {
			log.Fatalf("Failed to create user %s: %v", email, err)
		} else {
			log.Infof("Created user %s", email)
		}
		seeded = append(seeded, u)
	}

	items := []struct {
		title    string
		content  string
		category models.Category
		author   int
	}{
		{"Dark mode", "Please add a dark theme for late-night sessions.", models.CategoryFeatureRequest, 0},
		{"Login button misaligned", "The login button overlaps the footer on small screens.", models.CategoryUIUX, 1},
		{"Crash when saving", "Saving an empty draft crashes the editor.", models.CategoryBugReport, 2},
		{"Faster search", "Search results take several seconds to appear.", models.CategoryImprovement, 0},
	}
	for i, item := range items {
		fb, err := feedbacks.Create(ctx, item.title, item.content, item.category, seeded[item.author].ID)
		if err != nil {
			log.Fatalf("Failed to create feedback %q: %v", item.title, err)
		}
		// Everyone but the author votes for the first half
		if i < len(items)/2 {
			for j, u := range seeded {
				if j == item.author {
					continue
				}
				if _, err := votes.Add(ctx, u.ID, fb.ID); err != nil && !errors.Is(err, store.ErrDuplicateVote) {
					log.Fatalf("Failed to vote: %v", err)
				}
			}
		}
		log.Infof("Created feedback %q", item.title)
	}

	log.Infof("Seeding complete. Every account uses the password %q", password)
}
