package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/yogendraft21/insight-code-sub000/api"
	"github.com/yogendraft21/insight-code-sub000/internal/config"
	"github.com/yogendraft21/insight-code-sub000/session"
	"github.com/yogendraft21/insight-code-sub000/session/guard"
	"github.com/yogendraft21/insight-code-sub000/token"
	"github.com/yogendraft21/insight-code-sub000/transport"
	"github.com/yogendraft21/insight-code-sub000/transport/refresh"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c.GetLogLevel())

	app, err := buildApp(c)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		displayAppname(c.GetAppName())
		printUsage()
		return nil
	}

	return dispatch(app, args[0], args[1:])
}

// app bundles the wired client stack the commands run against.
type app struct {
	client     *api.Client
	controller *session.Controller
	guard      *guard.Guard
	store      token.Store
}

func buildApp(c config.Config) (*app, error) {
	var store token.Store = token.NewFileStore(c.GetTokenFilePath())
	if c.GetEncryptTokenFile() {
		store = token.NewEncryptedStore(store, c.GetTokenPassphrase())
	}

	// The refresher runs on a bare http.Client: a rejected refresh must not
	// recurse into another refresh.
	bareClient := api.NewClient(c.GetAPIBaseURL(),
		api.WithHTTPClient(&http.Client{Timeout: c.GetRequestTimeout()}),
		api.WithUserAgent(c.GetUserAgent()),
	)

	coordinator, err := refresh.NewCoordinator(store, bareClient,
		refresh.WithLogger(zlog.Logger))
	if err != nil {
		return nil, err
	}

	authTransport, err := transport.New(store, coordinator,
		transport.WithLogger(zlog.Logger))
	if err != nil {
		return nil, err
	}

	client := api.NewClient(c.GetAPIBaseURL(),
		api.WithHTTPClient(&http.Client{
			Timeout:   c.GetRequestTimeout(),
			Transport: authTransport,
		}),
		api.WithUserAgent(c.GetUserAgent()),
		api.WithLogger(zlog.Logger),
	)

	controller, err := session.NewController(
		session.Deps{API: client, Store: store, Coordinator: coordinator},
		session.WithNotifier(func(message string) {
			fmt.Fprintln(os.Stderr, message)
		}),
		session.WithLogger(zlog.Logger),
	)
	if err != nil {
		return nil, err
	}

	sessionGuard, err := guard.New(controller)
	if err != nil {
		return nil, err
	}

	return &app{
		client:     client,
		controller: controller,
		guard:      sessionGuard,
		store:      store,
	}, nil
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(parsed)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
