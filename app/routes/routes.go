package routes

import (
	"net/http"

	"scrawl/app/auth"
	"scrawl/app/cache"
	"scrawl/app/config"
	"scrawl/app/controllers"
	"scrawl/app/middleware"
	"scrawl/app/repositories"
	"scrawl/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// Setup wires repositories, services and controllers onto a router.
func Setup(db *badger.DB, store cache.PageStore, cfg *config.Config) *mux.Router {
	userRepo := repositories.NewBadgerUserRepository(db)
	groupRepo := repositories.NewBadgerGroupRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	followRepo := repositories.NewBadgerFollowRepository(db)

	media := services.NewMediaStore(cfg.MediaRoot)
	postService := services.NewPostService(postRepo, commentRepo, userRepo, groupRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	followService := services.NewFollowService(followRepo, userRepo)
	userService := services.NewUserService(userRepo, followRepo, postService)
	groupService := services.NewGroupService(groupRepo, postRepo)
	feedService := services.NewFeedService(postRepo, userRepo, groupRepo, followRepo, cfg.PostsPerPage)

	sessions := auth.NewSessions(cfg.SessionSecret)
	renderer := controllers.NewRenderer(cfg.ViewsPath)

	feedController := controllers.NewFeedController(feedService, renderer)
	postController := controllers.NewPostController(postService, groupService, media, renderer)
	commentController := controllers.NewCommentController(commentService, renderer)
	followController := controllers.NewFollowController(followService)
	authController := controllers.NewAuthController(userService, sessions, renderer)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.CurrentUser(sessions))

	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireLogin(h)
	}

	// The global index is the only cached view.
	cached := middleware.CachePage(store, cfg.IndexCacheTTL)
	router.Handle("/", cached(http.HandlerFunc(feedController.Index))).Methods("GET")

	// Feed views
	router.HandleFunc("/group/{slug}", feedController.Group).Methods("GET")
	router.HandleFunc("/profile/{username}", feedController.Profile).Methods("GET")
	router.Handle("/follow", authed(feedController.FollowIndex)).Methods("GET")

	// Posts
	router.Handle("/create", authed(postController.New)).Methods("GET")
	router.Handle("/create", authed(postController.Create)).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}", postController.Show).Methods("GET")
	router.Handle("/posts/{id:[0-9]+}/edit", authed(postController.EditForm)).Methods("GET")
	router.Handle("/posts/{id:[0-9]+}/edit", authed(postController.Edit)).Methods("POST")

	// Comments
	router.Handle("/posts/{id:[0-9]+}/comment", authed(commentController.Create)).Methods("POST")
	router.Handle("/comments/{id:[0-9]+}/delete", authed(commentController.Delete)).Methods("POST")

	// Follow graph
	router.Handle("/profile/{username}/follow", authed(followController.Follow)).Methods("GET")
	router.Handle("/profile/{username}/unfollow", authed(followController.Unfollow)).Methods("GET")

	// Auth
	router.HandleFunc("/auth/signup", authController.SignupForm).Methods("GET")
	router.HandleFunc("/auth/signup", authController.Signup).Methods("POST")
	router.HandleFunc("/auth/login", authController.LoginForm).Methods("GET")
	router.HandleFunc("/auth/login", authController.Login).Methods("POST")
	router.HandleFunc("/auth/logout", authController.Logout).Methods("GET")

	// Static assets and uploaded media
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	router.PathPrefix("/media/").Handler(http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaRoot))))

	// JSON API mirror of the read surface plus authenticated writes
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/posts", feedController.Index).Methods("GET")
	api.Handle("/posts", authed(postController.Create)).Methods("POST")
	api.HandleFunc("/posts/{id:[0-9]+}", postController.Show).Methods("GET")
	api.Handle("/posts/{id:[0-9]+}/edit", authed(postController.Edit)).Methods("POST")
	api.Handle("/posts/{id:[0-9]+}/comment", authed(commentController.Create)).Methods("POST")
	api.HandleFunc("/group/{slug}", feedController.Group).Methods("GET")
	api.HandleFunc("/profile/{username}", feedController.Profile).Methods("GET")
	api.Handle("/follow", authed(feedController.FollowIndex)).Methods("GET")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
