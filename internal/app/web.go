package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"
	"github.com/relabs-tech/lsm9ds1_computer/internal/config"
	imu_raw "github.com/relabs-tech/lsm9ds1_computer/internal/imu"
	"github.com/relabs-tech/lsm9ds1_computer/internal/orientation"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// latestState caches the most recent message per topic for the REST
// endpoints and the live WebSocket stream.
type latestState struct {
	mu         sync.RWMutex
	pose       orientation.Pose
	havePose   bool
	sample     imu_raw.IMUSample
	haveSample bool
	tempJSON   []byte
}

func (s *latestState) setPose(p orientation.Pose) {
	s.mu.Lock()
	s.pose = p
	s.havePose = true
	s.mu.Unlock()
}

func (s *latestState) setSample(v imu_raw.IMUSample) {
	s.mu.Lock()
	s.sample = v
	s.haveSample = true
	s.mu.Unlock()
}

func RunWeb() error {
	cfg := config.Get()
	state := &latestState{}

	// 1) Connect to MQTT broker on the Pi
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("connected to MQTT broker at %s", cfg.MQTTBroker)

	// 2) Subscribe and cache the latest message per topic
	token := client.Subscribe(cfg.TopicPose, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var p orientation.Pose
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			log.Printf("MQTT pose unmarshal error: %v", err)
			return
		}
		state.setPose(p)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("subscribed to MQTT topic %s", cfg.TopicPose)

	token = client.Subscribe(cfg.TopicIMU, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s imu_raw.IMUSample
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("MQTT imu unmarshal error: %v", err)
			return
		}
		state.setSample(s)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("subscribed to MQTT topic %s", cfg.TopicIMU)

	token = client.Subscribe(cfg.TopicTemperature, 0, func(_ mqtt.Client, msg mqtt.Message) {
		state.mu.Lock()
		state.tempJSON = append([]byte(nil), msg.Payload()...)
		state.mu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("subscribed to MQTT topic %s", cfg.TopicTemperature)

	// 3) JSON API endpoints: latest cached values
	http.HandleFunc("/api/orientation", func(w http.ResponseWriter, r *http.Request) {
		state.mu.RLock()
		defer state.mu.RUnlock()

		if !state.havePose {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(state.pose); err != nil {
			log.Printf("json encode error: %v", err)
		}
	})

	http.HandleFunc("/api/imu", func(w http.ResponseWriter, r *http.Request) {
		state.mu.RLock()
		defer state.mu.RUnlock()

		if !state.haveSample {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(state.sample); err != nil {
			log.Printf("json encode error: %v", err)
		}
	})

	http.HandleFunc("/api/temperature", func(w http.ResponseWriter, r *http.Request) {
		state.mu.RLock()
		defer state.mu.RUnlock()

		if state.tempJSON == nil {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(state.tempJSON)
	})

	// Direct sensor read, bypassing the MQTT cache
	http.HandleFunc("/api/imu/raw", HandleIMUData)

	// 4) WebSockets: live stream and register debugging
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleLiveWS(w, r, state)
	})
	http.HandleFunc("/ws/registers", HandleRegisterDebugWS)

	// 5) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	port := cfg.WebServerPort
	if port == 0 {
		port = 8080
	}
	addr := fmt.Sprintf(":%d", port)
	log.Printf("web server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}

// handleLiveWS pushes the cached pose, sample and temperature to the
// client at a fixed rate until the connection drops.
func handleLiveWS(w http.ResponseWriter, r *http.Request, state *latestState) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live ws: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	cfg := config.Get()
	interval := cfg.IMUSampleInterval
	if interval == 0 {
		interval = 100
	}
	ticker := time.NewTicker(time.Duration(interval) * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		state.mu.RLock()
		msg := struct {
			Pose   *orientation.Pose  `json:"pose,omitempty"`
			Sample *imu_raw.IMUSample `json:"sample,omitempty"`
		}{}
		if state.havePose {
			p := state.pose
			msg.Pose = &p
		}
		if state.haveSample {
			s := state.sample
			msg.Sample = &s
		}
		state.mu.RUnlock()

		if err := conn.WriteJSON(msg); err != nil {
			// Client went away.
			return
		}
	}
}
