package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/aulanet/aulanet/internal/api/http"
	auth "github.com/aulanet/aulanet/internal/auth/middleware"
	"github.com/aulanet/aulanet/internal/config"
	"github.com/aulanet/aulanet/internal/course"
	"github.com/aulanet/aulanet/internal/db"
	"github.com/aulanet/aulanet/internal/grades"
	"github.com/aulanet/aulanet/internal/rbac"
	"github.com/aulanet/aulanet/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := course.NewSQLStore(dbh, cfg.DBDriver)
	agg := grades.NewAggregator(store)

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	bs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("report:view-own")).
			Get("/groups/{groupID}/report", api.GetOwnReportHandler(agg))

		pr.With(rbac.Require("report:view-any")).
			Get("/groups/{groupID}/students/{studentID}/report", api.GetStudentReportHandler(agg))

		pr.With(rbac.Require("catalog:view")).
			Get("/groups/{groupID}/rubrics", api.ListRubricsHandler(store))

		pr.With(rbac.Require("file:view")).Route("/files", func(fr chi.Router) {
			api.MountFiles(fr, bs)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
