// Command main runs the database seeder for Loomline.
package main

import (
	"context"
	"flag"
	"log"

	"loomline/internal/config"
	"loomline/internal/database"
	"loomline/internal/observability"
	"loomline/internal/seed"
)

func main() {
	numProfiles := flag.Int("profiles", 25, "Number of profiles to create")
	numPosts := flag.Int("posts", 120, "Number of posts to create")
	followsEach := flag.Int("follows", 5, "Follow edges per profile")
	likesPerPost := flag.Int("likes", 3, "Likes per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d profiles, %d posts, clean=%v\n", *numProfiles, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Run(context.Background(), db, logger, seed.Options{
		NumProfiles:  *numProfiles,
		NumPosts:     *numPosts,
		FollowsEach:  *followsEach,
		LikesPerPost: *likesPerPost,
		ShouldClean:  *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
}
