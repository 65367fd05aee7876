// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/config"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/dashboard"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/observability"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/processor"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/routes"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/utils"
	"github.com/rob3rtroessler/DataVisExerciseDashboards/websocket"
)

func main() {
	fmt.Println("Запуск сервера...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Не удалось загрузить конфигурацию: %v", err)
	}

	logger, err := utils.NewFileLogger(cfg.LogFile, cfg.LogVerbose)
	if err != nil {
		log.Fatalf("❌ Не удалось создать логгер: %v", err)
	}
	defer logger.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := observability.Setup(ctx, cfg.OTelEndpoint, "dashboards")
	if err != nil {
		log.Fatalf("❌ Не удалось настроить трассировку: %v", err)
	}

	sources, closeSources, err := dashboard.NewSources(cfg)
	if err != nil {
		log.Fatalf("❌ Не удалось открыть источники данных: %v", err)
	}

	// Ошибку загрузки Boot уже записал в лог
	shared, err := dashboard.Boot(ctx, sources, logger)
	if err != nil {
		closeSources()
		shutdownTracing(context.Background())
		logger.Close()
		os.Exit(1)
	}
	defer closeSources()

	// Создаем менеджер WebSocket и запускаем его
	wsManager := websocket.NewManager(logger, cfg.SessionIdle, cfg.SweepInterval)
	go wsManager.Run(ctx)

	cache := processor.NewRenderCache(cfg.RenderCacheSize)

	router := mux.NewRouter()
	routes.SetupRoutes(router, shared, wsManager, cache, logger)

	// Настраиваем сервер
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("✅ Сервер запущен на http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Ошибка запуска сервера: %v", err)
		}
	}()

	// Канал для сигналов завершения
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("⚠️ Получен сигнал завершения, закрываем соединения...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка остановки HTTP-сервера: %v", err)
	}
	cancel()

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка остановки трассировки: %v", err)
	}

	log.Println("👋 Сервер остановлен")
}
