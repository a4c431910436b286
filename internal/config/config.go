package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker           string
	MQTTClientIDProducer string
	MQTTClientIDConsole  string
	MQTTClientIDWeb      string
	MQTTClientIDDisplay  string

	// Topics
	TopicIMU         string
	TopicIMURaw      string
	TopicPose        string
	TopicTemperature string

	// IMU Hardware
	// Bus selects the wiring: "spi" or "i2c".
	IMUBus        string
	IMUSPIDevice  string
	IMUCSAGPin    string
	IMUCSMagPin   string
	IMUI2CBus     string
	IMUI2CAGAddr  uint16
	IMUI2CMagAddr uint16

	// IMU Sensor Ranges (physical values)
	// Accelerometer: 2, 4, 8 or 16 (±g)
	IMUAccelRange int
	// Gyroscope: 245, 500 or 2000 (±°/s)
	IMUGyroRange int
	// Magnetometer: 4, 8, 12 or 16 (±gauss)
	IMUMagRange int

	// IMU Output Data Rates (Hz)
	IMUAccelODR int
	IMUGyroODR  int
	IMUMagODR   int

	// Timing
	IMUSampleInterval  int // milliseconds
	ConsoleLogInterval int // milliseconds

	// Web Server
	WebServerPort int

	// Display
	DisplayI2CAddr        uint16
	DisplayUpdateInterval int    // milliseconds
	DisplayContent        string // what to show: "imu", "imu_raw", "temperature"

	// Register debug
	// Comma-separated writable register ranges per device, e.g.
	// "ag:0x10-0x13,ag:0x1E-0x24,mag:0x20-0x24".
	RegisterDebugAllowedRanges string
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: unexported (lowercase) so other packages cannot access it directly.
//     This enforces encapsulation and prevents external code from modifying config without proper locking.
//     Has package-level scope (visible to all functions in this package, persists for program lifetime).
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: RWMutex protects concurrent access. Write lock (Lock) for initialization,
//     read lock (RLock) for Get() allows multiple concurrent readers without blocking each other.
//
// External code must use InitGlobal() to set and Get() to read, ensuring thread safety.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// intInSet parses value and checks it against the allowed values.
func intInSet(key, value string, allowed []int) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%s must be one of %v, got %d", key, allowed, v)
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PRODUCER":
		c.MQTTClientIDProducer = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value

	// Topics
	case "TOPIC_IMU":
		c.TopicIMU = value
	case "TOPIC_IMU_RAW":
		c.TopicIMURaw = value
	case "TOPIC_POSE":
		c.TopicPose = value
	case "TOPIC_TEMPERATURE":
		c.TopicTemperature = value

	// IMU Hardware
	case "IMU_BUS":
		if value != "spi" && value != "i2c" {
			return fmt.Errorf("IMU_BUS must be \"spi\" or \"i2c\", got %q", value)
		}
		c.IMUBus = value
	case "IMU_SPI_DEVICE":
		c.IMUSPIDevice = value
	case "IMU_CS_AG_PIN":
		c.IMUCSAGPin = value
	case "IMU_CS_MAG_PIN":
		c.IMUCSMagPin = value
	case "IMU_I2C_BUS":
		c.IMUI2CBus = value
	case "IMU_I2C_AG_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid IMU_I2C_AG_ADDR %q: %w", value, err)
		}
		c.IMUI2CAGAddr = uint16(addr)
	case "IMU_I2C_MAG_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid IMU_I2C_MAG_ADDR %q: %w", value, err)
		}
		c.IMUI2CMagAddr = uint16(addr)

	// IMU Sensor Ranges
	case "IMU_ACCEL_RANGE":
		v, err := intInSet(key, value, []int{2, 4, 8, 16})
		if err != nil {
			return err
		}
		c.IMUAccelRange = v
	case "IMU_GYRO_RANGE":
		v, err := intInSet(key, value, []int{245, 500, 2000})
		if err != nil {
			return err
		}
		c.IMUGyroRange = v
	case "IMU_MAG_RANGE":
		v, err := intInSet(key, value, []int{4, 8, 12, 16})
		if err != nil {
			return err
		}
		c.IMUMagRange = v

	// IMU Output Data Rates
	case "IMU_ACCEL_ODR":
		v, err := intInSet(key, value, []int{10, 50, 119, 238, 476, 952})
		if err != nil {
			return err
		}
		c.IMUAccelODR = v
	case "IMU_GYRO_ODR":
		v, err := intInSet(key, value, []int{15, 60, 119, 238, 476, 952})
		if err != nil {
			return err
		}
		c.IMUGyroODR = v
	case "IMU_MAG_ODR":
		v, err := intInSet(key, value, []int{5, 10, 20, 40, 80})
		if err != nil {
			return err
		}
		c.IMUMagODR = v

	// Timing
	case "IMU_SAMPLE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid IMU_SAMPLE_INTERVAL %q: %w", value, err)
		}
		c.IMUSampleInterval = interval
	case "CONSOLE_LOG_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CONSOLE_LOG_INTERVAL %q: %w", value, err)
		}
		c.ConsoleLogInterval = interval

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Display
	case "DISPLAY_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_I2C_ADDR %q: %w", value, err)
		}
		c.DisplayI2CAddr = uint16(addr)
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		c.DisplayUpdateInterval = interval
	case "DISPLAY_CONTENT":
		switch value {
		case "imu", "imu_raw", "temperature":
			c.DisplayContent = value
		default:
			return fmt.Errorf("DISPLAY_CONTENT must be \"imu\", \"imu_raw\" or \"temperature\", got %q", value)
		}

	// Register debug
	case "REGISTER_DEBUG_ALLOWED_RANGES":
		c.RegisterDebugAllowedRanges = value

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	switch c.IMUBus {
	case "spi":
		if c.IMUSPIDevice == "" {
			return fmt.Errorf("IMU_SPI_DEVICE is required when IMU_BUS=spi")
		}
		if c.IMUCSAGPin == "" || c.IMUCSMagPin == "" {
			return fmt.Errorf("IMU_CS_AG_PIN and IMU_CS_MAG_PIN are required when IMU_BUS=spi")
		}
	case "i2c":
		// An empty IMU_I2C_BUS means the first available bus.
	default:
		return fmt.Errorf("IMU_BUS is required")
	}
	if c.IMUSampleInterval == 0 {
		return fmt.Errorf("IMU_SAMPLE_INTERVAL is required")
	}
	if c.ConsoleLogInterval == 0 {
		return fmt.Errorf("CONSOLE_LOG_INTERVAL is required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
// Acquires write lock (configMu.Lock) during initialization to prevent concurrent access.
// This is the only function that can set globalConfig.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
// Uses read lock (configMu.RLock) to allow multiple concurrent readers without blocking.
// This is thread-safe and efficient for concurrent access across goroutines.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
