package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AbhinavSharma486/FixMySociety-sub001/config"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dedupe"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dispatch"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/queue"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/routers"
	broadcast_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/broadcast-case"
	building_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/building-case"
	complaint_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/complaint-case"
	notification_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/notification-case"
	stats_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/stats-case"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/websocket"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/worker"
	worker_handler "github.com/AbhinavSharma486/FixMySociety-sub001/internal/worker/worker-handler"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// initialize the application
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appState, err := state.InitAppState(ctx, stop)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application state")
	}
	defer appState.Close()

	wsHub := websocket.NewHub()
	log.Info().Msg("Websocket hub initialized")

	dedup := dedupe.New(
		time.Duration(config.Conf.ENGINE.DedupTTLSeconds)*time.Second,
		config.Conf.ENGINE.DedupMaxEntries,
	)
	producer := queue.NewProducer(appState.Redis)
	dispatcher := dispatch.NewDispatcher(wsHub, dedup, producer)

	buildingSvc := building_service.NewBuildingService(appState, dispatcher)
	complaintSvc := complaint_service.NewComplaintService(appState, dispatcher)
	notificationSvc := notification_service.NewNotificationService(appState)
	broadcastSvc := broadcast_service.NewBroadcastService(appState, dispatcher, producer)
	statsSvc := stats_service.NewStatsService(appState)

	membership := websocket.NewMembership(wsHub, complaintSvc)
	authFunc := websocket.JWTWebSocketAuth(appState.JwtSecret.Public)
	wsHandler := websocket.NewWebSocketHandler(wsHub, membership, authFunc)
	log.Info().Msg("Websocket handler initialized")

	r := routers.NewRouter(appState, routers.Dependencies{
		Hub:           wsHub,
		WSHandler:     wsHandler,
		Buildings:     buildingSvc,
		Complaints:    complaintSvc,
		Notifications: notificationSvc,
		Broadcasts:    broadcastSvc,
		Stats:         statsSvc,
	})

	workerHandler := worker_handler.NewWorkerHandler(appState.Redis, wsHub, dispatcher, notificationSvc, statsSvc)
	workerPool := worker.NewWorkerPool(appState.Redis, appState.Mongo, config.Conf.ENGINE.WorkerNum, workerHandler)
	workerPool.Start(ctx)
	workerPool.StartDLQWorker(ctx)
	workerPool.StartDLQRetryConsumer(ctx)
	workerPool.StartSweepScheduler(ctx, time.Duration(config.Conf.ENGINE.SweepMinutes)*time.Minute, producer)

	server := &http.Server{
		Addr:         config.Conf.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// serve the application
	go func() {
		log.Info().Msgf("Starting server on http://localhost%s", config.Conf.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(fmt.Sprintf("ListenAndServe failed: %v", err))
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown initiated...")
	// gracefully shutdown the application
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Graceful shutdown failed: %v\n", err)
	} else {
		fmt.Println("Server exited gracefully.")
	}
	wsHub.Close()
	dedup.Clear()
	workerPool.Wait()
}
