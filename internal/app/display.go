package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/lsm9ds1_computer/internal/config"
	"github.com/relabs-tech/lsm9ds1_computer/internal/imu"
)

const defaultSSD1306Addr = 0x3C

// remappedBus rewrites the target address of every transaction, for
// displays strapped to the alternate address.
type remappedBus struct {
	i2c.Bus
	from uint16
	to   uint16
}

func (b *remappedBus) Tx(addr uint16, w, r []byte) error {
	if addr == b.from {
		addr = b.to
	}
	return b.Bus.Tx(addr, w, r)
}

// DisplayData holds the latest data for display
type DisplayData struct {
	mu sync.RWMutex

	// Raw sample
	imuRaw     imu.IMURaw
	haveIMURaw bool

	// Converted sample
	sample     imu.IMUSample
	haveSample bool
}

func RunDisplay() error {
	cfg := config.Get()

	// Initialize periph
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	// Open I2C bus
	bus, err := i2creg.Open("")
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	// The ssd1306 driver talks to the default 0x3C address; boards
	// strapped to another address get the transactions redirected.
	var displayBus i2c.Bus = bus
	if cfg.DisplayI2CAddr != 0 && cfg.DisplayI2CAddr != defaultSSD1306Addr {
		displayBus = &remappedBus{Bus: bus, from: defaultSSD1306Addr, to: cfg.DisplayI2CAddr}
	}

	// Initialize display
	display, err := ssd1306.NewI2C(displayBus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Printf("display: initialized at 0x%02X", cfg.DisplayI2CAddr)

	// Show splash screen
	if err := showSplash(display); err != nil {
		log.Printf("display: error showing splash: %v", err)
	}

	// Data storage
	data := &DisplayData{}

	// Connect to MQTT
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDisplay)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Subscribe to topics based on display content configuration
	if err := subscribeForContent(client, cfg.DisplayContent, data, cfg); err != nil {
		return fmt.Errorf("failed to subscribe for display: %w", err)
	}

	// Display update loop
	ticker := time.NewTicker(time.Duration(cfg.DisplayUpdateInterval) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for range ticker.C {
		// Read data without copying the mutex
		data.mu.RLock()
		snapshot := DisplayData{
			imuRaw:     data.imuRaw,
			haveIMURaw: data.haveIMURaw,
			sample:     data.sample,
			haveSample: data.haveSample,
		}
		data.mu.RUnlock()

		if err := updateDisplay(display, cfg.DisplayContent, &snapshot); err != nil {
			log.Printf("display: error updating display: %v", err)
		}
	}

	return nil
}

func subscribeForContent(client mqtt.Client, content string, data *DisplayData, cfg *config.Config) error {
	switch content {
	case "imu_raw":
		token := client.Subscribe(cfg.TopicIMURaw, 0, func(_ mqtt.Client, msg mqtt.Message) {
			var raw imu.IMURaw
			if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
				log.Printf("display: imu_raw unmarshal error: %v", err)
				return
			}
			data.mu.Lock()
			data.imuRaw = raw
			data.haveIMURaw = true
			data.mu.Unlock()
		})
		token.Wait()
		if token.Error() != nil {
			return token.Error()
		}
		log.Printf("display: subscribed to %s", cfg.TopicIMURaw)

	case "imu", "temperature":
		token := client.Subscribe(cfg.TopicIMU, 0, func(_ mqtt.Client, msg mqtt.Message) {
			var s imu.IMUSample
			if err := json.Unmarshal(msg.Payload(), &s); err != nil {
				log.Printf("display: imu unmarshal error: %v", err)
				return
			}
			data.mu.Lock()
			data.sample = s
			data.haveSample = true
			data.mu.Unlock()
		})
		token.Wait()
		if token.Error() != nil {
			return token.Error()
		}
		log.Printf("display: subscribed to %s", cfg.TopicIMU)

	default:
		return fmt.Errorf("unknown display content type: %s", content)
	}

	return nil
}

func updateDisplay(dev *ssd1306.Dev, content string, data *DisplayData) error {
	switch content {
	case "imu_raw":
		return updateIMURawDisplay(dev, data.imuRaw, data.haveIMURaw)
	case "imu":
		return updateIMUDisplay(dev, data.sample, data.haveSample)
	case "temperature":
		return updateTemperatureDisplay(dev, data.sample, data.haveSample)
	default:
		return fmt.Errorf("unknown display content type: %s", content)
	}
}

func newDrawer() (*image1bit.VerticalLSB, *font.Drawer) {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	// Blank image
	for i := 0; i < 1024; i++ {
		img.Pix[i] = 0
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
	return img, drawer
}

func updateIMURawDisplay(dev *ssd1306.Dev, raw imu.IMURaw, haveData bool) error {
	img, drawer := newDrawer()

	if !haveData {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte("IMU raw"))
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte("Waiting..."))
	} else {
		// Accel
		drawer.Dot = fixed.P(0, 13)
		drawer.DrawBytes([]byte(fmt.Sprintf("A:%5d %5d", raw.Ax, raw.Ay)))

		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte(fmt.Sprintf("  %5d", raw.Az)))

		// Gyro
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte(fmt.Sprintf("G:%5d %5d", raw.Gx, raw.Gy)))

		// Mag
		drawer.Dot = fixed.P(0, 52)
		drawer.DrawBytes([]byte(fmt.Sprintf("M:%5d %5d", raw.Mx, raw.My)))
	}

	return dev.Draw(dev.Bounds(), img, image.Point{})
}

func updateIMUDisplay(dev *ssd1306.Dev, s imu.IMUSample, haveData bool) error {
	img, drawer := newDrawer()

	if !haveData {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte("IMU"))
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte("Waiting..."))
	} else {
		// Accel in g
		drawer.Dot = fixed.P(0, 13)
		drawer.DrawBytes([]byte(fmt.Sprintf("A %5.2f %5.2f", s.Ax, s.Ay)))

		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte(fmt.Sprintf("  %5.2f g", s.Az)))

		// Gyro in deg/s
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte(fmt.Sprintf("G %5.0f %5.0f", s.Gx, s.Gy)))

		// Mag in gauss
		drawer.Dot = fixed.P(0, 52)
		drawer.DrawBytes([]byte(fmt.Sprintf("M %5.2f %5.2f", s.Mx, s.My)))
	}

	return dev.Draw(dev.Bounds(), img, image.Point{})
}

func updateTemperatureDisplay(dev *ssd1306.Dev, s imu.IMUSample, haveData bool) error {
	img, drawer := newDrawer()

	if !haveData {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte("Temperature"))
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte("Waiting..."))
	} else {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte("Die temp"))

		drawer.Dot = fixed.P(0, 43)
		drawer.DrawBytes([]byte(fmt.Sprintf("%6.1f C", s.TempC)))
	}

	return dev.Draw(dev.Bounds(), img, image.Point{})
}

func showSplash(dev *ssd1306.Dev) error {
	img, drawer := newDrawer()

	drawer.Dot = fixed.P(10, 26)
	drawer.DrawBytes([]byte("LSM9DS1 Pi"))

	drawer.Dot = fixed.P(5, 43)
	drawer.DrawBytes([]byte("Waiting for"))

	drawer.Dot = fixed.P(25, 56)
	drawer.DrawBytes([]byte("samples"))

	return dev.Draw(dev.Bounds(), img, image.Point{})
}
