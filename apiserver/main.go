package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/krancour/usersapi/internal/signals"
	"github.com/krancour/usersapi/internal/version"
)

func main() {
	flag.Parse()

	glog.Infof(
		"Starting users API server -- version %s -- commit %s",
		version.Version(),
		version.Commit(),
	)

	ctx := signals.Context()

	apiServer, err := getAPIServerFromEnvironment(ctx)
	if err != nil {
		glog.Fatal(err)
	}

	if err = apiServer.ListenAndServe(ctx); err != nil {
		glog.Fatal(err)
	}
	glog.Info("users API server stopped")
	glog.Flush()
}
