package backend

import (
	"fmt"

	"net/http"

	"github.com/gorilla/mux"

	"github.com/VithorDosSantos/reflora/core"
	"github.com/VithorDosSantos/reflora/core/access"
	"github.com/VithorDosSantos/reflora/core/csql"
	"github.com/VithorDosSantos/reflora/core/logger"
	"github.com/VithorDosSantos/reflora/core/schema"
)

// Backend is the reflora rest backend
type Backend struct {
	db        *csql.DB
	router    *mux.Router
	tokens    *access.TokenService
	notifier  core.Notifier
	validator *schema.Validator
}

// Builder is a builder helper for the Backend
type Builder struct {
	// DB is a postgres database. This is mandatory.
	DB *csql.DB
	// Router is a mux router. This is mandatory.
	Router *mux.Router
	// Tokens issues and verifies the bearer tokens. This is mandatory.
	Tokens *access.TokenService
	// Notifier receives change notifications for alerts and sensor
	// deletions. This is optional.
	Notifier core.Notifier
}

// New realizes the actual backend. It creates the sql relations (if they
// do not exist) and adds the routes to the router.
func New(bb *Builder) *Backend {

	if bb.DB == nil {
		panic("DB is missing")
	}
	if bb.Router == nil {
		panic("Router is missing")
	}
	if bb.Tokens == nil {
		panic("Tokens is missing")
	}

	b := &Backend{
		db:        bb.DB,
		router:    bb.Router,
		tokens:    bb.Tokens,
		notifier:  bb.Notifier,
		validator: schema.MustNewValidator(),
	}

	b.createRelations()

	logger.AddRequestID(b.router)
	b.handleCORS()
	b.handleCompression()
	b.handleRoutes(b.router)
	return b
}

// createRelations creates the reflora tables. Deleting a user cascades to
// its sensors, deleting a sensor cascades to its readings and alerts; the
// store enforces the cascade, not the application.
func (b *Backend) createRelations() {
	schema := b.db.Schema
	createQuery := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %[1]s."user" (
user_id SERIAL,
name varchar(255) NOT NULL,
email varchar(255) NOT NULL,
password varchar(255) NOT NULL,
creation_date timestamptz NOT NULL DEFAULT now(),
PRIMARY KEY(user_id),
UNIQUE(email)
);
CREATE TABLE IF NOT EXISTS %[1]s.sensor (
sensor_id SERIAL,
user_id INTEGER NOT NULL REFERENCES %[1]s."user"(user_id) ON DELETE CASCADE,
sensor_name varchar(255) NOT NULL,
location varchar(255) NOT NULL,
installation_date timestamptz NOT NULL DEFAULT now(),
PRIMARY KEY(sensor_id)
);
CREATE INDEX IF NOT EXISTS sensor_user_id ON %[1]s.sensor(user_id);
CREATE TABLE IF NOT EXISTS %[1]s.sensor_data (
sensor_data_id SERIAL,
sensor_id INTEGER NOT NULL REFERENCES %[1]s.sensor(sensor_id) ON DELETE CASCADE,
ph real,
shading_index real,
air_humidity real,
soil_humidity real,
soil_nutrients text,
temperature real,
date_time timestamptz NOT NULL DEFAULT now(),
PRIMARY KEY(sensor_data_id)
);
CREATE INDEX IF NOT EXISTS sensor_data_sensor_id ON %[1]s.sensor_data(sensor_id);
CREATE TABLE IF NOT EXISTS %[1]s.alert (
alert_id SERIAL,
sensor_id INTEGER NOT NULL REFERENCES %[1]s.sensor(sensor_id) ON DELETE CASCADE,
message text NOT NULL,
level varchar(50) NOT NULL,
timestamp timestamptz NOT NULL DEFAULT now(),
PRIMARY KEY(alert_id)
);
CREATE INDEX IF NOT EXISTS alert_sensor_id ON %[1]s.alert(sensor_id);
`, schema)

	_, err := b.db.Exec(createQuery)
	if err != nil {
		logger.Default().WithError(err).Errorf("error while creating relations, query: %s", createQuery)
		panic(err)
	}
}

// handleRoutes adds all handlers to the router. Every route is mounted
// twice, at the root and under /api.
//
// Registration order matters: public routes first, then the preflight
// catch-all, then the protected subrouters. The root-level protected
// subrouter matches everything and therefore must come last.
func (b *Backend) handleRoutes(router *mux.Router) {

	nillog := logger.Default()
	nillog.Debugln("backend: handle routes")

	for _, prefix := range []string{"", "/api"} {
		b.handlePublicRoutes(router, prefix)
	}

	router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

	bearer := access.NewBearerMiddleware(b.tokens)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(bearer)
	b.handleProtectedRoutes(api)

	root := router.PathPrefix("/").Subrouter()
	root.Use(bearer)
	b.handleProtectedRoutes(root)
}

func (b *Backend) handlePublicRoutes(router *mux.Router, prefix string) {
	router.HandleFunc(prefix+"/register", b.register).Methods(http.MethodPost)
	router.HandleFunc(prefix+"/auth/register", b.register).Methods(http.MethodPost)
	router.HandleFunc(prefix+"/login", b.login).Methods(http.MethodPost)
	router.HandleFunc(prefix+"/auth/login", b.login).Methods(http.MethodPost)
}

func (b *Backend) handleProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/me", b.me).Methods(http.MethodGet)
	router.HandleFunc("/users/me", b.me).Methods(http.MethodGet)

	router.HandleFunc("/sensors", b.createSensor).Methods(http.MethodPost)
	router.HandleFunc("/sensors", b.listSensors).Methods(http.MethodGet)
	router.HandleFunc("/sensors/{sensor_id:[0-9]+}", b.getSensor).Methods(http.MethodGet)
	router.HandleFunc("/sensors/{sensor_id:[0-9]+}", b.updateSensor).Methods(http.MethodPut)
	router.HandleFunc("/sensors/{sensor_id:[0-9]+}", b.deleteSensor).Methods(http.MethodDelete)

	router.HandleFunc("/sensors/{sensor_id:[0-9]+}/data", b.createReading).Methods(http.MethodPost)
	router.HandleFunc("/sensors/{sensor_id:[0-9]+}/data", b.listReadings).Methods(http.MethodGet)
	router.HandleFunc("/sensors/{sensor_id:[0-9]+}/data/{data_id:[0-9]+}", b.getReading).Methods(http.MethodGet)
	router.HandleFunc("/sensors/{sensor_id:[0-9]+}/data/{data_id:[0-9]+}", b.updateReading).Methods(http.MethodPut)
	router.HandleFunc("/sensors/{sensor_id:[0-9]+}/data/{data_id:[0-9]+}", b.deleteReading).Methods(http.MethodDelete)

	router.HandleFunc("/sensors/{sensor_id:[0-9]+}/alert", b.createAlert).Methods(http.MethodPost)
	router.HandleFunc("/sensors/{sensor_id:[0-9]+}/alerts", b.createAlert).Methods(http.MethodPost)
	router.HandleFunc("/sensors/{sensor_id:[0-9]+}/alert", b.listAlerts).Methods(http.MethodGet)
	router.HandleFunc("/sensors/{sensor_id:[0-9]+}/alerts", b.listAlerts).Methods(http.MethodGet)

	router.HandleFunc("/alert/{alert_id:[0-9]+}", b.getAlert).Methods(http.MethodGet)
	router.HandleFunc("/alert/{alert_id:[0-9]+}", b.updateAlert).Methods(http.MethodPut)
	router.HandleFunc("/alert/{alert_id:[0-9]+}", b.deleteAlert).Methods(http.MethodDelete)
}
