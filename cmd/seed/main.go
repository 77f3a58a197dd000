// Command seed inserts the reference catalog records. Safe to run more
// than once: books whose isbn already exists are skipped.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/bookvault/catalog-api/internal/core/domain"
	mongodb "github.com/bookvault/catalog-api/internal/infrastructure/db/mongo"
	"github.com/bookvault/catalog-api/internal/pkg/config"
	"github.com/bookvault/catalog-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	repo := mongodb.NewBookRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("book index creation failed")
	}

	now := time.Now().UTC()
	books := []*domain.Book{
		{
			Title:     "1984",
			Author:    "George Orwell",
			Summary:   "Roman dystopique décrivant une société totalitaire contrôlée par Big Brother.",
			ISBN:      "9780451524935",
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			Title:     "Dune",
			Author:    "Frank Herbert",
			Summary:   "Épopée de science-fiction centrée sur la planète Arrakis et les enjeux autour de l'épice.",
			ISBN:      "9780441013593",
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			Title:     "Le Seigneur des Anneaux",
			Author:    "J.R.R. Tolkien",
			Summary:   "Trilogie racontant la quête pour détruire l'Anneau unique et vaincre Sauron.",
			ISBN:      "9780544003415",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for _, b := range books {
		created, err := repo.Create(ctx, b)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateISBN) {
				log.Info().Str("isbn", b.ISBN).Msg("book already seeded, skipping")
				continue
			}
			log.Fatal().Err(err).Str("isbn", b.ISBN).Msg("seed insert failed")
		}
		log.Info().Str("book_id", created.ID).Str("title", created.Title).Msg("book seeded")
	}
}
