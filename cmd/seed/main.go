// Package main provides a tool to seed the database with a demo catalog.
//
// This creates a handful of users, books, and user-book relations so list
// filtering, search, and rating features have data to work against.
//
// Usage:
//
//	DATA_PATH=~/Inkwell/data go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/auth"
	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/store/sqlite"
)

var password = flag.String("password", "reading is fundamental", "Password for the seeded users")

type seedBook struct {
	title  string
	author string
	price  string
}

var catalog = []seedBook{
	{"Wuthering Heights", "Emily Bronte", "9.99"},
	{"Jane Eyre", "Charlotte Bronte", "12.50"},
	{"Dune", "Frank Herbert", "25.00"},
	{"Dune Messiah", "Frank Herbert", "18.00"},
	{"Neuromancer", "William Gibson", "20.00"},
	{"Solaris", "Stanislaw Lem", "15.50"},
	{"The Left Hand of Darkness", "Ursula K. Le Guin", "16.00"},
	{"A Wizard of Earthsea", "Ursula K. Le Guin", "11.00"},
	{"Roadside Picnic", "Arkady Strugatsky", "14.25"},
	{"The Master and Margarita", "Mikhail Bulgakov", "13.75"},
}

var userEmails = []string{
	"alice@example.com",
	"bob@example.com",
	"carol@example.com",
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Inkwell/data")
	}
	dbPath := filepath.Join(dataPath, "inkwell.db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, slog.Default())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Create users
	passwordHash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := make([]*domain.User, 0, len(userEmails))
	for _, email := range userEmails {
		if existing, err := s.GetUserByEmail(ctx, email); err == nil {
			fmt.Printf("User %s already exists, reusing\n", email)
			users = append(users, existing)
			continue
		}

		user := &domain.User{
			ID:           id.MustGenerate("user"),
			Email:        email,
			PasswordHash: passwordHash,
			DisplayName:  email,
		}
		user.InitTimestamps()

		if err := s.CreateUser(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", email, err)
		}
		fmt.Printf("Created user %s (%s)\n", email, user.ID)
		users = append(users, user)
	}

	// Create books, each owned by a random seeded user
	books := make([]*domain.Book, 0, len(catalog))
	for _, entry := range catalog {
		price, err := domain.ParsePrice(entry.price)
		if err != nil {
			log.Fatalf("Bad seed price %q: %v", entry.price, err)
		}

		owner := users[rng.Intn(len(users))]
		book := &domain.Book{
			ID:         id.MustGenerate("book"),
			Title:      entry.title,
			Price:      price,
			AuthorName: entry.author,
			OwnerID:    &owner.ID,
		}
		book.InitTimestamps()

		if err := s.CreateBook(ctx, book); err != nil {
			log.Fatalf("Failed to create book %q: %v", entry.title, err)
		}
		books = append(books, book)
	}
	fmt.Printf("Created %d books\n", len(books))

	// Create relations: each user likes, bookmarks, and rates a few books
	relationsCreated := 0
	for _, user := range users {
		for _, book := range books {
			if rng.Float32() > 0.5 {
				continue
			}

			relation, err := s.GetOrCreateRelation(ctx, user.ID, book.ID)
			if err != nil {
				log.Fatalf("Failed to create relation: %v", err)
			}

			relation.Like = rng.Float32() < 0.7
			relation.InBookmarks = rng.Float32() < 0.4
			if rng.Float32() < 0.6 {
				rate := domain.MinRate + rng.Intn(domain.MaxRate-domain.MinRate+1)
				relation.Rate = &rate
			}
			relation.Touch()

			if err := s.UpdateRelation(ctx, relation); err != nil {
				log.Fatalf("Failed to update relation: %v", err)
			}
			relationsCreated++
		}
	}
	fmt.Printf("Created %d relations\n", relationsCreated)

	fmt.Println("\nDone. Seeded users log in with the configured password.")
}
