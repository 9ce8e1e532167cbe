package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opencert/certhub/internal/catalog"
	"github.com/opencert/certhub/internal/certificates"
	"github.com/opencert/certhub/internal/config"
	"github.com/opencert/certhub/internal/db"
	"github.com/opencert/certhub/internal/middleware"
	"github.com/opencert/certhub/internal/notify"
	"github.com/opencert/certhub/internal/repository"
	"github.com/opencert/certhub/internal/roster"
	"github.com/opencert/certhub/internal/teams"

	"github.com/rs/cors"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	orgRepo := repository.NewOrganizationRepository(conn.Pool)
	courseRepo := repository.NewCourseRepository(conn.Pool)
	certRepo := repository.NewCertificateRepository(conn.Pool)
	logRepo := repository.NewUploadLogRepository(conn)
	memberRepo := repository.NewMemberRepository(conn.Pool)

	// Notification sender
	var sender notify.Sender
	if cfg.Notify.ResendAPIKey != "" {
		sender = notify.NewResendSender(cfg.Notify.ResendAPIKey, cfg.Notify.FromAddress)
	} else {
		sender = notify.NewNoopSender()
	}

	// Services
	certService := certificates.NewService(certRepo)
	rosterService := roster.NewService(
		orgRepo, courseRepo, logRepo, certService, sender,
		roster.WithStrictStatus(cfg.StrictStatus),
	)
	teamService := teams.NewService(memberRepo)
	catalogService := catalog.NewService(orgRepo, courseRepo)

	go runExpirySweeper(ctx, orgRepo, certService)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	mux := http.NewServeMux()
	mux.Handle("/api/rosters/", roster.NewHTTPHandler(rosterService, memberRepo))
	mux.Handle("/api/certificates", certificates.NewHTTPHandler(certService))
	mux.Handle("/api/certificates/", certificates.NewHTTPHandler(certService))
	mux.Handle("/api/team/", teams.NewHTTPHandler(teamService, memberRepo))
	mux.Handle("/api/organizations", catalog.NewHTTPHandler(catalogService))
	mux.Handle("/api/organizations/", catalog.NewHTTPHandler(catalogService))
	mux.Handle("/api/courses", catalog.NewHTTPHandler(catalogService))
	mux.Handle("/api/courses/", catalog.NewHTTPHandler(catalogService))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	handler := middleware.LoggingMiddleware(corsHandler.Handler(mux))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// runExpirySweeper periodically marks lapsed certificates expired across all
// organizations.
func runExpirySweeper(ctx context.Context, orgs repository.OrganizationRepository, certs *certificates.Service) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			organizations, err := orgs.List(ctx)
			if err != nil {
				log.Printf("Failed to list organizations for expiry sweep: %v", err)
				continue
			}
			for _, org := range organizations {
				swept, err := certs.SweepExpired(ctx, org.ID)
				if err != nil {
					log.Printf("Failed to sweep expired certificates for %s: %v", org.Name, err)
					continue
				}
				if swept > 0 {
					log.Printf("Marked %d certificates expired for %s", swept, org.Name)
				}
			}
		}
	}
}
