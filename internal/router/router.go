package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "virtual-pet-service/docs"
	mem "virtual-pet-service/internal/adapters/storage/memory"
	pg "virtual-pet-service/internal/adapters/storage/postgres"
	sqlitestore "virtual-pet-service/internal/adapters/storage/sqlite"
	"virtual-pet-service/internal/domain/carelog"
	"virtual-pet-service/internal/domain/pets"
	"virtual-pet-service/internal/middleware"
	"virtual-pet-service/internal/platform/logger"
	"virtual-pet-service/internal/ports/auth"
	"virtual-pet-service/internal/stream"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, se resuelve por env
	// (DB_DSN => postgres, SQLITE_PATH => sqlite, nada => in-memory).
	DB *sql.DB

	Log logger.Logger
}

// Runtime agrupa lo que main necesita además del handler: el servicio
// de mascotas (para el scheduler) y el hub de stream (para su Run).
type Runtime struct {
	Handler http.Handler
	Pets    *pets.Service
	Hub     *stream.Hub
}

func New(opts Options) (*Runtime, error) {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		petRepo pets.Repository
		logRepo carelog.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				return nil, err
			}
			db = opened
		}
	}

	switch {
	case db != nil:
		petRepo = pg.NewPetsRepo(db)
		logRepo = pg.NewCareLogRepo(db)
		log.Info("storage: postgres", nil)
	case os.Getenv("SQLITE_PATH") != "":
		gdb, err := sqlitestore.Open(os.Getenv("SQLITE_PATH"))
		if err != nil {
			return nil, err
		}
		if err := sqlitestore.Migrate(gdb); err != nil {
			return nil, err
		}
		petRepo = sqlitestore.NewPetsRepo(gdb)
		logRepo = sqlitestore.NewCareLogRepo(gdb)
		log.Info("storage: sqlite", map[string]any{"path": os.Getenv("SQLITE_PATH")})
	default:
		petRepo = mem.NewPetRepo()
		logRepo = mem.NewCareLogRepo()
		log.Info("storage: in-memory", nil)
	}

	// Hub de stream primero: el care-log le publica cada entrada.
	hub := stream.NewHub(log)

	// Services por módulo
	careSvc := carelog.NewService(logRepo, hub)
	petsSvc := pets.NewService(petRepo, careSvc)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	carelog.RegisterRoutes(r, careSvc, petsSvc)

	r.Get("/stream", stream.ServeWS(hub, log))

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Runtime{
		Handler: r,
		Pets:    petsSvc,
		Hub:     hub,
	}, nil
}
