package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	lib "github.com/festival-transit/pandal-hopper"
	"github.com/festival-transit/pandal-hopper/backend"
	"github.com/festival-transit/pandal-hopper/config"
	"github.com/festival-transit/pandal-hopper/locate"
	"github.com/festival-transit/pandal-hopper/maprender"
	"github.com/festival-transit/pandal-hopper/model"
	"github.com/festival-transit/pandal-hopper/session"
	"github.com/festival-transit/pandal-hopper/trip"
)

func main() {
	mode := flag.String("mode", "serve", "serve|oneshot")
	zone := flag.String("zone", "", "zone to browse in oneshot mode")
	flag.Parse()

	lib.InitLogging()
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded environment from .env")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := session.Open(cfg.Session.DBPath)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	defer func() { _ = store.Close() }()
	sess := session.NewSession(store)

	api := backend.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutMS)*time.Millisecond, sess)

	var src locate.Source
	if cfg.Location.Pinned {
		src = locate.StaticSource{Coord: model.Coordinate{Lat: cfg.Location.Lat, Lon: cfg.Location.Lon}}
	}

	orch := trip.New(api, src)
	adapter := maprender.NewAdapter(orch, nil, model.Coordinate{Lat: cfg.Map.FallbackLat, Lon: cfg.Map.FallbackLon})

	orch.Start()
	if src != nil {
		if err := orch.ResolveLocation(context.Background()); err != nil {
			log.Printf("location resolution failed: %v", err)
		}
	}

	switch *mode {
	case "serve":
		app := lib.NewApp(cfg, orch, adapter, sess, api)
		app.StartServer()
		app.HandleGracefulShutdown()
	case "oneshot":
		if *zone != "" {
			z, err := model.ParseZone(*zone)
			if err != nil {
				log.Fatalf("zone: %v", err)
			}
			if err := orch.SelectZone(z); err != nil {
				log.Fatalf("zone: %v", err)
			}
		}
		orch.WaitIdle()
		view := adapter.CurrentView()
		buf, _ := json.MarshalIndent(view, "", "  ")
		fmt.Println(string(buf))
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}
