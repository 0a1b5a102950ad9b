package main

import (
	"net/http"
	"strings"

	"github.com/joeshaw/envdecode"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/VithorDosSantos/reflora/core"
	"github.com/VithorDosSantos/reflora/core/access"
	"github.com/VithorDosSantos/reflora/core/backend"
	"github.com/VithorDosSantos/reflora/core/csql"
	"github.com/VithorDosSantos/reflora/core/events"
	"github.com/VithorDosSantos/reflora/core/logger"
)

// Service holds the configuration for this service
//
// use POSTGRES="host=localhost port=5432 user=postgres password=docker dbname=postgres sslmode=disable"
type Service struct {
	Postgres     string `env:"POSTGRES,required" description:"the connection string for the Postgres DB"`
	Schema       string `env:"POSTGRES_SCHEMA,default=reflora" description:"the database schema"`
	JWTSecret    string `env:"JWT_SECRET,required" description:"the shared secret for signing bearer tokens"`
	Port         string `env:"PORT,default=3000" description:"the port to listen on"`
	KafkaBrokers string `env:"KAFKA_BROKERS,default=" description:"comma separated kafka brokers for event notifications, empty disables them"`
	KafkaTopic   string `env:"KAFKA_TOPIC,default=reflora.events" description:"the kafka topic for event notifications"`
	LogLevel     string `env:"LOG_LEVEL,default=info" description:"the log level"`
}

func main() {
	service := &Service{}
	if err := envdecode.Decode(service); err != nil {
		panic(err)
	}

	logLevel, err := logrus.ParseLevel(service.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.InitLogger(logLevel)
	rlog := logger.Default()

	db := csql.OpenWithSchema(service.Postgres, service.Schema)
	defer db.Close()

	var notifier core.Notifier
	if len(service.KafkaBrokers) > 0 {
		kafkaNotifier := events.NewKafkaNotifier(strings.Split(service.KafkaBrokers, ","), service.KafkaTopic)
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
		rlog.Infoln("event notifications enabled on topic", service.KafkaTopic)
	}

	router := mux.NewRouter()
	backend.New(&backend.Builder{
		DB:       db,
		Router:   router,
		Tokens:   access.NewTokenService(service.JWTSecret),
		Notifier: notifier,
	})

	rlog.Infoln("listen on port :" + service.Port)
	if err := http.ListenAndServe(":"+service.Port, router); err != nil {
		rlog.WithError(err).Fatalln("server stopped")
	}
}
