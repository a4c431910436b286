package app

import (
	"encoding/json"
	"log"
	"math"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/relabs-tech/lsm9ds1_computer/internal/config"
	"github.com/relabs-tech/lsm9ds1_computer/internal/orientation"
	"github.com/relabs-tech/lsm9ds1_computer/internal/sensors"
)

// magNorm computes the magnitude of the magnetic field vector in gauss.
// Useful as a sanity check: away from hard iron it should sit near the
// local field strength regardless of attitude.
func magNorm(mx, my, mz float64) float64 {
	return math.Sqrt(mx*mx + my*my + mz*mz)
}

func RunIMUProducer() error {
	log.Println("starting lsm9ds1-computer IMU producer")

	cfg := config.Get()

	// --- Initialize IMU (configure and enable all three sensors) ---
	imuManager := sensors.GetIMUManager()
	if _, err := imuManager.ReadRaw(); err != nil {
		log.Printf("failed to initialize IMU: %v", err)
		return err
	}

	// --- connect to MQTT ---
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDProducer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Printf("MQTT connect error: %v", token.Error())
		return token.Error()
	}
	defer client.Disconnect(250)

	log.Println("connected to MQTT, starting publish loop")

	// main tick
	ticker := time.NewTicker(time.Duration(cfg.IMUSampleInterval) * time.Millisecond)
	defer ticker.Stop()

	for t := range ticker.C {
		// 1) Raw sample in LSB counts
		raw, err := imuManager.ReadRaw()
		if err != nil {
			log.Printf("error reading IMU raw: %v", err)
			continue
		}
		if payload, err := json.Marshal(raw); err != nil {
			log.Printf("imu raw marshal error: %v", err)
		} else {
			if token := client.Publish(cfg.TopicIMURaw, 0, true, payload); token.Wait() && token.Error() != nil {
				log.Printf("MQTT publish error (imu_raw): %v", token.Error())
				continue
			}
		}

		// 2) Converted sample in physical units
		sample, err := imuManager.ReadSample()
		if err != nil {
			log.Printf("error reading IMU sample: %v", err)
			continue
		}
		if payload, err := json.Marshal(sample); err != nil {
			log.Printf("imu sample marshal error: %v", err)
		} else {
			if token := client.Publish(cfg.TopicIMU, 0, true, payload); token.Wait() && token.Error() != nil {
				log.Printf("MQTT publish error (imu): %v", token.Error())
				continue
			}
		}

		// 3) Pose from accel tilt plus magnetometer heading
		pose := orientation.ComputePose(sample.Ax, sample.Ay, sample.Az, sample.Mx, sample.My, sample.Mz)
		if payload, err := json.Marshal(pose); err != nil {
			log.Printf("pose marshal error: %v", err)
		} else {
			if token := client.Publish(cfg.TopicPose, 0, true, payload); token.Wait() && token.Error() != nil {
				log.Printf("MQTT publish error (pose): %v", token.Error())
				continue
			}
		}

		// 4) Die temperature
		tempMsg := struct {
			TempC float64 `json:"temp_c"`
			Time  string  `json:"time"`
		}{
			TempC: sample.TempC,
			Time:  t.Format(time.RFC3339),
		}
		if payload, err := json.Marshal(tempMsg); err != nil {
			log.Printf("temperature marshal error: %v", err)
		} else {
			client.Publish(cfg.TopicTemperature, 0, true, payload)
		}

		log.Printf("%s tick: pose R=%.2f P=%.2f Y=%.2f | accel ax=%.3f ay=%.3f az=%.3f | gyro gx=%.2f gy=%.2f gz=%.2f | mag |B|=%.3f | temp=%.1f°C",
			t.Format(time.RFC3339),
			pose.Roll, pose.Pitch, pose.Yaw,
			sample.Ax, sample.Ay, sample.Az,
			sample.Gx, sample.Gy, sample.Gz,
			magNorm(sample.Mx, sample.My, sample.Mz),
			sample.TempC,
		)
	}
	return nil
}
