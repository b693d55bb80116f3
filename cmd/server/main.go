/*
 * Copyright (c) 2025, the Signet project.
 *
 * The Signet project licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package main is the entry point for starting the Signet server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/signet-id/signet/internal/system/config"
	"github.com/signet-id/signet/internal/system/log"
)

func main() {
	logger := log.GetLogger()
	defer func() {
		_ = logger.Sync()
	}()

	signetHome := getSignetHome(logger)
	cfg := initSignetConfigurations(logger, signetHome)

	mux := http.NewServeMux()
	closer, err := registerServices(mux, signetHome, cfg)
	if err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}
	defer closer()

	startServer(logger, cfg, mux)
}

// getSignetHome retrieves and returns the Signet home directory.
func getSignetHome(logger *log.Logger) string {
	projectHomeFlag := flag.String("signetHome", "", "Path to Signet home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		logger.Info("Using signetHome from command line argument",
			log.String("signetHome", *projectHomeFlag))
		return *projectHomeFlag
	}

	dir, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}

// initSignetConfigurations loads the configurations and initializes the runtime.
func initSignetConfigurations(logger *log.Logger, signetHome string) *config.Config {
	configFilePath := path.Join(signetHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeSignetRuntime(signetHome, cfg); err != nil {
		logger.Fatal("Failed to initialize signet runtime", log.Error(err))
	}
	return cfg
}

// startServer runs the HTTP server until an interrupt or terminate signal
// arrives, then drains in-flight requests before exiting.
func startServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) {
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           log.AccessLogHandler(logger, mux),
		ReadHeaderTimeout: 10 * time.Second, // Mitigate Slowloris attacks
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	logger.Info("Signet server started", log.String("address", serverAddr))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve HTTP requests", log.Error(err))
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received, draining requests")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down cleanly", log.Error(err))
		}
	}
}
