package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"scrawl/app/cache"
	"scrawl/app/config"
	"scrawl/app/repositories"
	"scrawl/app/routes"
	"scrawl/app/services"

	"github.com/dgraph-io/badger/v4"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("scrawl version %s\n", cliVersion)
	case "serve":
		serve()
	case "group":
		groupCmd()
	case "user":
		userCmd()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: scrawl <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the blog server.
  group create <title> <slug> [description]
                                 Create a topic group.
  group delete <slug>            Delete a group; its posts are unlinked.
  user delete <username>         Delete a user and cascade their content.
`
	fmt.Println(helpText)
}

// serve runs the HTTP server with the configured page cache backend.
func serve() {
	cfg := config.Load()

	db := openDB(cfg)
	defer db.Close()

	var store cache.PageStore
	if cfg.RedisAddr != "" {
		redisStore := cache.NewRedis(cfg.RedisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisStore.Ping(ctx)
		cancel()
		if err != nil {
			// The page cache must never take the site down with it.
			log.Printf("redis unavailable (%v), using in-memory page cache", err)
			store = cache.NewMemory()
		} else {
			log.Printf("using redis page cache at %s", cfg.RedisAddr)
			store = redisStore
		}
	} else {
		store = cache.NewMemory()
	}

	router := routes.Setup(db, store, cfg)
	log.Printf("scrawl listening on %s", cfg.Addr)
	if err := routes.StartServer(cfg.Addr, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// groupCmd is the admin workflow for topic groups; end users cannot
// create groups through the web surface.
func groupCmd() {
	if len(os.Args) < 3 {
		printHelp()
		os.Exit(1)
	}

	cfg := config.Load()
	db := openDB(cfg)
	defer db.Close()

	groupRepo := repositories.NewBadgerGroupRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)
	groupService := services.NewGroupService(groupRepo, postRepo)

	switch os.Args[2] {
	case "create":
		if len(os.Args) < 5 {
			fmt.Println("Error: group create needs a title and a slug")
			os.Exit(1)
		}
		description := ""
		if len(os.Args) > 5 {
			description = os.Args[5]
		}
		group, err := groupService.CreateGroup(os.Args[3], os.Args[4], description)
		if err != nil {
			log.Fatalf("failed to create group: %v", err)
		}
		fmt.Printf("created group %q (/group/%s)\n", group.Title, group.Slug)
	case "delete":
		if len(os.Args) < 4 {
			fmt.Println("Error: group delete needs a slug")
			os.Exit(1)
		}
		group, err := groupService.GetBySlug(os.Args[3])
		if err != nil {
			log.Fatalf("unknown group %q: %v", os.Args[3], err)
		}
		if err := groupService.DeleteGroup(group.ID); err != nil {
			log.Fatalf("failed to delete group: %v", err)
		}
		fmt.Printf("deleted group %q; its posts were unlinked\n", group.Title)
	default:
		printHelp()
		os.Exit(1)
	}
}

// userCmd removes an account and everything it owns.
func userCmd() {
	if len(os.Args) < 4 || os.Args[2] != "delete" {
		printHelp()
		os.Exit(1)
	}

	cfg := config.Load()
	db := openDB(cfg)
	defer db.Close()

	userRepo := repositories.NewBadgerUserRepository(db)
	groupRepo := repositories.NewBadgerGroupRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	followRepo := repositories.NewBadgerFollowRepository(db)
	postService := services.NewPostService(postRepo, commentRepo, userRepo, groupRepo)
	userService := services.NewUserService(userRepo, followRepo, postService)

	user, err := userRepo.GetByUsername(os.Args[3])
	if err != nil {
		log.Fatalf("unknown user %q: %v", os.Args[3], err)
	}
	if err := userService.DeleteUser(user.ID); err != nil {
		log.Fatalf("failed to delete user: %v", err)
	}
	fmt.Printf("deleted user %q and their posts, comments and follows\n", user.Username)
}

func openDB(cfg *config.Config) *badger.DB {
	opts := badger.DefaultOptions(cfg.DBPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("failed to open badger db at %s: %v", cfg.DBPath, err)
	}
	return db
}
