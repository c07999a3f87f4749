package main

import (
	"log"
	"net/http"

	"github.com/beeper/gitlab-build-gateway/internal/config"
	"github.com/beeper/gitlab-build-gateway/internal/gitlab"
	"github.com/beeper/gitlab-build-gateway/internal/matrix"
	"github.com/beeper/gitlab-build-gateway/receiver/internal/webhooks"
	libHTTP "github.com/brigadecore/brigade-foundations/http"
	"github.com/brigadecore/brigade-foundations/signals"
	"github.com/brigadecore/brigade-foundations/version"
	"github.com/gorilla/mux"
)

func main() {

	log.Printf(
		"Starting GitLab Build Gateway Receiver -- version %s -- commit %s",
		version.Version(),
		version.Commit(),
	)

	ctx := signals.Context()

	var configStore *config.Store
	{
		path, err := configPath()
		if err != nil {
			log.Fatal(err)
		}
		if configStore, err = config.NewStore(path); err != nil {
			log.Fatal(err)
		}
		// Hot-reload the config whenever the file changes on disk
		go func() {
			if err := configStore.Watch(ctx); err != nil && ctx.Err() == nil {
				log.Println(err)
			}
		}()
	}

	var sender matrix.Sender
	{
		homeserverURL, userID, accessToken, err := matrixSenderConfig()
		if err != nil {
			log.Fatal(err)
		}
		if sender, err =
			matrix.NewSender(homeserverURL, userID, accessToken); err != nil {
			log.Fatal(err)
		}
	}

	webhooksService := webhooks.NewService(
		configStore,
		gitlab.NewClientFactory(),
		sender,
	)

	var server libHTTP.Server
	{
		tokenVerificationFilter :=
			webhooks.NewTokenVerificationFilter(configStore)
		handler := webhooks.NewHandler(webhooksService)
		router := mux.NewRouter()
		router.StrictSlash(true)
		router.Handle(
			"/webhooks",
			http.HandlerFunc( // Make a handler from a function
				tokenVerificationFilter.Decorate(handler.ServeHTTP),
			),
		).Methods(http.MethodPost)
		router.HandleFunc("/healthz", libHTTP.Healthz).Methods(http.MethodGet)
		serverConfig, err := serverConfig()
		if err != nil {
			log.Fatal(err)
		}
		server = libHTTP.NewServer(router, &serverConfig)
	}

	log.Println(
		server.ListenAndServe(ctx),
	)
}
