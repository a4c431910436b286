package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/lsm9ds1_computer/internal/config"
	imu_raw "github.com/relabs-tech/lsm9ds1_computer/internal/imu"
	"github.com/relabs-tech/lsm9ds1_computer/internal/orientation"
)

func RunConsoleMQTT() error {
	cfg := config.Get()

	// Samples arrive faster than a terminal is useful; each topic prints
	// at most once per CONSOLE_LOG_INTERVAL.
	interval := time.Duration(cfg.ConsoleLogInterval) * time.Millisecond
	throttle := func() func() bool {
		var mu sync.Mutex
		var last time.Time
		return func() bool {
			mu.Lock()
			defer mu.Unlock()
			if time.Since(last) < interval {
				return false
			}
			last = time.Now()
			return true
		}
	}
	poseDue := throttle()
	imuDue := throttle()
	rawDue := throttle()
	tempDue := throttle()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Subscribe to orientation
	poseToken := client.Subscribe(cfg.TopicPose, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var p orientation.Pose
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			log.Printf("console: pose unmarshal error: %v", err)
			return
		}
		if !poseDue() {
			return
		}

		fmt.Printf(
			"[POSE]  ROLL=%6.2f  PITCH=%6.2f  YAW=%6.2f\n",
			p.Roll, p.Pitch, p.Yaw,
		)
	})
	poseToken.Wait()
	if poseToken.Error() != nil {
		return poseToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicPose)

	// Subscribe to converted samples
	imuToken := client.Subscribe(cfg.TopicIMU, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s imu_raw.IMUSample
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("console: imu unmarshal error: %v", err)
			return
		}
		if !imuDue() {
			return
		}

		fmt.Printf(
			"[IMU ] ax=%7.3fg ay=%7.3fg az=%7.3fg  gx=%7.2f°/s gy=%7.2f°/s gz=%7.2f°/s  mx=%7.3fG my=%7.3fG mz=%7.3fG\n",
			s.Ax, s.Ay, s.Az, s.Gx, s.Gy, s.Gz, s.Mx, s.My, s.Mz,
		)
	})
	imuToken.Wait()
	if imuToken.Error() != nil {
		return imuToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicIMU)

	// Subscribe to raw samples
	rawToken := client.Subscribe(cfg.TopicIMURaw, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s imu_raw.IMURaw
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("console: imu raw unmarshal error: %v", err)
			return
		}
		if !rawDue() {
			return
		}
		fmt.Printf(
			"[RAW ] ax=%6d ay=%6d az=%6d  gx=%6d gy=%6d gz=%6d  mx=%6d my=%6d mz=%6d  t=%6d\n",
			s.Ax, s.Ay, s.Az, s.Gx, s.Gy, s.Gz, s.Mx, s.My, s.Mz, s.Temp,
		)
	})
	rawToken.Wait()
	if rawToken.Error() != nil {
		return rawToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicIMURaw)

	// Subscribe to temperature
	tempToken := client.Subscribe(cfg.TopicTemperature, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var t struct {
			TempC float64 `json:"temp_c"`
			Time  string  `json:"time"`
		}
		if err := json.Unmarshal(msg.Payload(), &t); err != nil {
			log.Printf("console: temperature unmarshal error: %v", err)
			return
		}
		if !tempDue() {
			return
		}

		fmt.Printf("[TEMP]  %.2f°C  at %s\n", t.TempC, t.Time)
	})
	tempToken.Wait()
	if tempToken.Error() != nil {
		return tempToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicTemperature)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
