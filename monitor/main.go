package main

import (
	"log"

	"github.com/beeper/gitlab-build-gateway/internal/gitlab"
	"github.com/beeper/gitlab-build-gateway/internal/matrix"
	"github.com/brigadecore/brigade-foundations/signals"
	"github.com/brigadecore/brigade-foundations/version"
)

func main() {
	log.Printf(
		"Starting GitLab Build Gateway Monitor -- version %s -- commit %s",
		version.Version(),
		version.Commit(),
	)

	var gitlabClient gitlab.Client
	{
		baseURL, token, err := gitlabClientConfig()
		if err != nil {
			log.Fatal(err)
		}
		gitlabClient = gitlab.NewClientFactory().NewClient(baseURL, token)
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

	var monitor *monitor
	{
		config, err := getMonitorConfig()
		if err != nil {
			log.Fatal(err)
		}
		monitor = newMonitor(gitlabClient, sender, config)
	}

	// Run it!
	log.Println(monitor.run(signals.Context()))
}
