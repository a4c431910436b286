// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/relabs-tech/lsm9ds1_computer/internal/app"
	"github.com/relabs-tech/lsm9ds1_computer/internal/config"
	"github.com/relabs-tech/lsm9ds1_computer/internal/sensors"
)

func main() {
	configPath := flag.String("config", "./lsm9ds1_config.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting LSM9DS1 register debug tool (standalone)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	log.Println("Initializing IMU...")
	imuManager := sensors.GetIMUManager()
	if _, err := imuManager.ReadRaw(); err != nil {
		log.Printf("Warning: IMU initialization had issues: %v", err)
		log.Println("Continuing anyway - the sensor may come up on reinit")
	}

	http.HandleFunc("/ws", app.HandleRegisterDebugWS)

	// API endpoint for live IMU data
	http.HandleFunc("/api/imu", app.HandleIMUData)

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "web/register_debug.html")
	})

	addr := ":8081"
	log.Printf("Register debug tool listening on %s", addr)
	log.Printf("Open http://localhost:8081 in your browser")
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
