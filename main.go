package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"manzafir/database"
	"manzafir/handlers"
	"manzafir/llm"
	"manzafir/matching"
	"manzafir/routes"
	"manzafir/store"
)

func main() {
	log.Println("Starting Manzafir Travel API...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI must be set")
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "manzafir"
	}

	// ===== CONNECT TO MONGODB WITH RETRY =====
	log.Println("Connecting to MongoDB...")

	var db *database.DB
	var dbErr error
	for i := 1; i <= 3; i++ {
		db, dbErr = database.Connect(context.Background(), mongoURI, dbName)
		if dbErr != nil {
			log.Printf("MongoDB connection attempt %d failed: %v", i, dbErr)
			time.Sleep(2 * time.Second)
			continue
		}
		break
	}
	if dbErr != nil {
		log.Fatal("Failed to connect to MongoDB: ", dbErr)
	}
	log.Println("MongoDB connected successfully")

	// ===== STORES & CORE =====
	users := store.NewUsers(db)
	profiles := store.NewProfiles(db)
	sessions := store.NewSessions(db)
	matches := store.NewMatches(db)
	packages := store.NewPackages(db)
	pushSubs := store.NewPushSubs(db)

	api := &handlers.API{
		Users:    users,
		Profiles: profiles,
		Sessions: sessions,
		Matches:  matches,
		Packages: packages,
		PushSubs: pushSubs,

		Matcher:  matching.NewService(profiles, users, matches),
		Recorder: matching.NewRecorder(matches),
		Recommender: llm.New(llm.Config{
			APIKey:  os.Getenv("LLM_API_KEY"),
			BaseURL: os.Getenv("LLM_BASE_URL"),
			Model:   os.Getenv("LLM_MODEL"),
		}),

		IdentityBaseURL: identityBaseURL(),
		HTTPClient:      &http.Client{Timeout: 15 * time.Second},
		PushSubscriber:  pushSubscriber(),
	}

	// ===== CLOUDINARY =====
	if url := os.Getenv("CLOUDINARY_URL"); url != "" {
		cld, err := cloudinary.NewFromURL(url)
		if err != nil {
			log.Printf("Cloudinary configuration invalid, uploads disabled: %v", err)
		} else {
			api.Cloudinary = cld
		}
	} else {
		log.Println("CLOUDINARY_URL not set, image uploads disabled")
	}

	// ===== GOOGLE OAUTH =====
	if clientID, clientSecret := os.Getenv("GOOGLE_CLIENT_ID"), os.Getenv("GOOGLE_CLIENT_SECRET"); clientID != "" && clientSecret != "" {
		api.OAuth = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
		log.Println("Google OAuth configured")
	} else {
		log.Println("Google OAuth not configured - set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
	}

	// ===== WEB PUSH =====
	api.VAPIDPublicKey = os.Getenv("VAPID_PUBLIC_KEY")
	api.VAPIDPrivateKey = os.Getenv("VAPID_PRIVATE_KEY")
	if api.VAPIDPublicKey == "" || api.VAPIDPrivateKey == "" {
		publicKey, privateKey, err := webpush.GenerateVAPIDKeys()
		if err != nil {
			log.Printf("Failed to generate VAPID keys, push disabled: %v", err)
		} else {
			api.VAPIDPublicKey = publicKey
			api.VAPIDPrivateKey = privateKey
			log.Println("Generated ephemeral VAPID keys - set VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY for production")
		}
	}

	// ===== GIN MODE =====
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.SetupRouter(api, sessions)

	// ===== SERVER =====
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown: ", err)
	}

	if err := db.Close(context.Background()); err != nil {
		log.Println("MongoDB disconnect error: ", err)
	}

	log.Println("Server stopped gracefully")
}

func identityBaseURL() string {
	if url := os.Getenv("AUTH_API_URL"); url != "" {
		return url
	}
	return "https://demobackend.emergentagent.com"
}

func pushSubscriber() string {
	if sub := os.Getenv("PUSH_SUBSCRIBER"); sub != "" {
		return sub
	}
	return "mailto:admin@manzafir.com"
}
