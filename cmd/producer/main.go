package main

import (
	"encoding/json"
	"flag"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/relabs-tech/lsm9ds1_computer/internal/config"
	"github.com/relabs-tech/lsm9ds1_computer/internal/orientation"
)

func main() {
	configPath := flag.String("config", "./lsm9ds1_config.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting lsm9ds1-computer MQTT producer (mock)")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Get()

	// 1) Connect to MQTT broker on the Pi
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID("lsm9ds1-producer-mock")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("MQTT connect error: %v", token.Error())
	}
	defer client.Disconnect(250)

	src := orientation.NewMockSource()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for t := range ticker.C {
		pose, err := src.Next()
		if err != nil {
			log.Printf("error from mock source: %v", err)
			continue
		}

		payload, err := json.Marshal(pose)
		if err != nil {
			log.Printf("json marshal error: %v", err)
			continue
		}

		token := client.Publish(cfg.TopicPose, 0, true, payload)
		token.Wait()

		log.Printf("%s published pose: %+v", t.Format(time.RFC3339), pose)
	}
}
