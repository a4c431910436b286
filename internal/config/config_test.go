package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validSPIConfig = `# test config
MQTT_BROKER=tcp://localhost:1883
MQTT_CLIENT_ID_PRODUCER=imu_producer

TOPIC_IMU=sensors/imu
TOPIC_IMU_RAW=sensors/imu_raw
TOPIC_POSE=sensors/pose
TOPIC_TEMPERATURE=sensors/temperature

IMU_BUS=spi
IMU_SPI_DEVICE=/dev/spidev0.0
IMU_CS_AG_PIN=GPIO23
IMU_CS_MAG_PIN=GPIO24

IMU_ACCEL_RANGE=4
IMU_GYRO_RANGE=500
IMU_MAG_RANGE=8
IMU_ACCEL_ODR=119
IMU_GYRO_ODR=952
IMU_MAG_ODR=40

IMU_SAMPLE_INTERVAL=10
CONSOLE_LOG_INTERVAL=1000
WEB_SERVER_PORT=8080

DISPLAY_I2C_ADDR=0x3C
DISPLAY_UPDATE_INTERVAL=200
DISPLAY_CONTENT=imu

REGISTER_DEBUG_ALLOWED_RANGES=ag:0x10-0x13,mag:0x20-0x24
`

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validSPIConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MQTTBroker != "tcp://localhost:1883" {
		t.Errorf("MQTTBroker = %q", cfg.MQTTBroker)
	}
	if cfg.IMUBus != "spi" || cfg.IMUSPIDevice != "/dev/spidev0.0" {
		t.Errorf("bus config = %q %q", cfg.IMUBus, cfg.IMUSPIDevice)
	}
	if cfg.IMUCSAGPin != "GPIO23" || cfg.IMUCSMagPin != "GPIO24" {
		t.Errorf("CS pins = %q %q", cfg.IMUCSAGPin, cfg.IMUCSMagPin)
	}
	if cfg.IMUAccelRange != 4 || cfg.IMUGyroRange != 500 || cfg.IMUMagRange != 8 {
		t.Errorf("ranges = %d %d %d", cfg.IMUAccelRange, cfg.IMUGyroRange, cfg.IMUMagRange)
	}
	if cfg.DisplayI2CAddr != 0x3C {
		t.Errorf("DisplayI2CAddr = 0x%02X", cfg.DisplayI2CAddr)
	}
	if cfg.DisplayContent != "imu" {
		t.Errorf("DisplayContent = %q", cfg.DisplayContent)
	}
}

func TestLoadI2CConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `MQTT_BROKER=tcp://localhost:1883
IMU_BUS=i2c
IMU_I2C_BUS=/dev/i2c-1
IMU_I2C_AG_ADDR=0x6A
IMU_I2C_MAG_ADDR=0x1C
IMU_SAMPLE_INTERVAL=10
CONSOLE_LOG_INTERVAL=1000
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IMUI2CAGAddr != 0x6A || cfg.IMUI2CMagAddr != 0x1C {
		t.Errorf("addrs = 0x%02X 0x%02X", cfg.IMUI2CAGAddr, cfg.IMUI2CMagAddr)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, "MQTT_BROKER=x\nNO_SUCH_KEY=1\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadRejectsBadRange(t *testing.T) {
	bad := strings.Replace(validSPIConfig, "IMU_ACCEL_RANGE=4", "IMU_ACCEL_RANGE=3", 1)
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Error("accepted IMU_ACCEL_RANGE=3")
	}
	bad = strings.Replace(validSPIConfig, "IMU_GYRO_RANGE=500", "IMU_GYRO_RANGE=1000", 1)
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Error("accepted IMU_GYRO_RANGE=1000")
	}
}

func TestLoadRejectsBadBus(t *testing.T) {
	bad := strings.Replace(validSPIConfig, "IMU_BUS=spi", "IMU_BUS=uart", 1)
	if _, err := Load(writeConfig(t, bad)); err == nil {
		t.Error("accepted IMU_BUS=uart")
	}
}

func TestValidateRequiresCSPinsForSPI(t *testing.T) {
	bad := strings.Replace(validSPIConfig, "IMU_CS_AG_PIN=GPIO23\n", "", 1)
	_, err := Load(writeConfig(t, bad))
	if err == nil || !strings.Contains(err.Error(), "IMU_CS_AG_PIN") {
		t.Errorf("err = %v", err)
	}
}

func TestValidateRequiresBroker(t *testing.T) {
	bad := strings.Replace(validSPIConfig, "MQTT_BROKER=tcp://localhost:1883\n", "", 1)
	_, err := Load(writeConfig(t, bad))
	if err == nil || !strings.Contains(err.Error(), "MQTT_BROKER") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	_, err := Load(writeConfig(t, "MQTT_BROKER tcp://localhost\n"))
	if err == nil || !strings.Contains(err.Error(), "invalid config line 1") {
		t.Errorf("err = %v", err)
	}
}
