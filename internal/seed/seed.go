package seed

import (
	"fmt"
	"log"
	"math/rand"

	"inkstream/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumGroups   int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with demo users, groups, posts, comments
// and a follow graph.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users, %d groups and %d posts...",
		opts.NumUsers, opts.NumGroups, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d users created", len(users))

	groups := make([]*models.Group, 0, opts.NumGroups)
	for i := 0; i < opts.NumGroups; i++ {
		group, err := f.CreateGroup()
		if err != nil {
			return fmt.Errorf("failed to create groups: %w", err)
		}
		groups = append(groups, group)
	}
	log.Printf("✓ %d groups created", len(groups))

	posts, err := createPosts(f, users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := createComments(f, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	follows, err := createFollowGraph(f, users)
	if err != nil {
		return fmt.Errorf("failed to create follow graph: %w", err)
	}
	log.Printf("✓ %d follow edges created", follows)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, follows, posts, groups, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

// createPosts spreads posts over the users. Roughly two thirds land in
// a group; the rest stay ungrouped.
func createPosts(f *Factory, users []*models.User, groups []*models.Group, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]

		var group *models.Group
		if len(groups) > 0 && rand.Intn(3) != 0 {
			group = groups[rand.Intn(len(groups))]
		}
		posts = append(posts, f.BuildPost(author, group, 90))
	}
	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func createComments(f *Factory, users []*models.User, posts []*models.Post) (int, error) {
	total := 0
	for _, post := range posts {
		for i := rand.Intn(4); i > 0; i-- {
			author := users[rand.Intn(len(users))]
			if _, err := f.CreateComment(author, post); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

// createFollowGraph gives every user a handful of random authors to
// follow. Self edges and duplicates are skipped by the factory.
func createFollowGraph(f *Factory, users []*models.User) (int, error) {
	total := 0
	for _, user := range users {
		for i := rand.Intn(5) + 1; i > 0; i-- {
			author := users[rand.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			if err := f.CreateFollow(user, author); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}
