package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	mem "petlink-api/internal/adapters/storage/memory"
	"petlink-api/internal/adapters/storage/mongodb"
	"petlink-api/internal/domain/devicelink"
	"petlink-api/internal/domain/devices"
	"petlink-api/internal/domain/events"
	"petlink-api/internal/domain/locations"
	"petlink-api/internal/domain/measurements"
	"petlink-api/internal/domain/pets"
	"petlink-api/internal/domain/roles"
	"petlink-api/internal/domain/users"
	"petlink-api/internal/domain/usertypes"
	"petlink-api/internal/middleware"
)

type Options struct {
	Logger zerolog.Logger

	// Opcional: si viene, usa MongoDB. Si no, in-memory.
	DB *mongo.Database
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		rolesRepo        roles.Repository
		userTypesRepo    usertypes.Repository
		usersRepo        users.Repository
		petsRepo         pets.Repository
		devicesRepo      devices.Repository
		measurementsRepo measurements.Repository
		locationsRepo    locations.Repository
		eventsRepo       events.Repository
	)

	if opts.DB != nil {
		rolesRepo = mongodb.NewRolesRepo(opts.DB)
		userTypesRepo = mongodb.NewUserTypesRepo(opts.DB)
		usersRepo = mongodb.NewUsersRepo(opts.DB)
		petsRepo = mongodb.NewPetsRepo(opts.DB)
		devicesRepo = mongodb.NewDevicesRepo(opts.DB)
		measurementsRepo = mongodb.NewMeasurementsRepo(opts.DB)
		locationsRepo = mongodb.NewLocationsRepo(opts.DB)
		eventsRepo = mongodb.NewEventsRepo(opts.DB)
	} else {
		rolesRepo = mem.NewRolesRepo()
		userTypesRepo = mem.NewUserTypesRepo()
		usersRepo = mem.NewUsersRepo()
		petsRepo = mem.NewPetsRepo()
		devicesRepo = mem.NewDevicesRepo()
		measurementsRepo = mem.NewMeasurementsRepo()
		locationsRepo = mem.NewLocationsRepo()
		eventsRepo = mem.NewEventsRepo()
	}

	// Services por módulo
	rolesSvc := roles.NewService(rolesRepo)
	userTypesSvc := usertypes.NewService(userTypesRepo)
	usersSvc := users.NewService(usersRepo)
	petsSvc := pets.NewService(petsRepo)
	devicesSvc := devices.NewService(devicesRepo)
	measurementsSvc := measurements.NewService(measurementsRepo)
	locationsSvc := locations.NewService(locationsRepo)
	eventsSvc := events.NewService(eventsRepo)

	// Rutas por módulo
	r.Route("/api", func(api chi.Router) {
		roles.RegisterRoutes(api, rolesSvc)
		usertypes.RegisterRoutes(api, userTypesSvc)
		users.RegisterRoutes(api, usersSvc, rolesSvc)
		pets.RegisterRoutes(api, petsSvc)
		devices.RegisterRoutes(api, devicesSvc)
		measurements.RegisterRoutes(api, measurementsSvc, devicesSvc)
		locations.RegisterRoutes(api, locationsSvc, devicesSvc)
		events.RegisterRoutes(api, eventsSvc, usersSvc, devicesSvc)
		devicelink.RegisterRoutes(api, devicesSvc, measurementsSvc, eventsSvc)
	})

	return r
}
