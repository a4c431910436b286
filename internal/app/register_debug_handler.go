// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/relabs-tech/lsm9ds1_computer/internal/config"
	"github.com/relabs-tech/lsm9ds1_computer/internal/sensors"
)

// RegisterDebugSession holds WebSocket connection state for register debugging
type RegisterDebugSession struct {
	Conn *websocket.Conn
}

// Response types
type RegisterResponse struct {
	Type        string            `json:"type"`             // "register_data", "register_map", "status", "error"
	Device      string            `json:"device,omitempty"` // "ag" or "mag"
	Address     string            `json:"addr,omitempty"`
	Value       string            `json:"value,omitempty"`
	Registers   map[string]string `json:"registers,omitempty"` // for bulk read
	Timestamp   string            `json:"timestamp,omitempty"`
	Message     string            `json:"message,omitempty"`
	Status      string            `json:"status,omitempty"`
	RegisterMap []RegisterInfo    `json:"register_map,omitempty"`
}

type RegisterInfo struct {
	Address     string             `json:"address"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Access      string             `json:"access"` // "R", "W", "RW"
	Default     string             `json:"default,omitempty"`
	BitFields   []sensors.BitField `json:"bit_fields,omitempty"`
}

// RegisterConfigFile represents the JSON structure for exported register configuration
type RegisterConfigFile struct {
	Version   int               `json:"version"`
	Device    string            `json:"device"`
	Timestamp string            `json:"timestamp"`
	Registers map[string]string `json:"registers"` // hex address -> hex value
}

// HandleRegisterDebugWS handles the WebSocket connection for register debugging
func HandleRegisterDebugWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("register_debug: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	session := &RegisterDebugSession{Conn: conn}

	// Send register map on connection (accel/gyro core by default)
	if err := session.sendRegisterMap("ag"); err != nil {
		log.Printf("register_debug: error sending register map: %v", err)
		return
	}

	// Message loop
	for {
		var rawMsg map[string]interface{}
		err := conn.ReadJSON(&rawMsg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("register_debug: websocket error: %v", err)
			}
			break
		}

		action, ok := rawMsg["action"].(string)
		if !ok {
			session.sendError("missing or invalid action field")
			continue
		}

		// Route based on action
		switch action {
		case "get_map":
			device, _ := rawMsg["device"].(string)
			if device == "" {
				device = "ag" // default
			}
			session.sendRegisterMap(device)
		case "read":
			session.handleRead(rawMsg)
		case "read_all":
			session.handleReadAll(rawMsg)
		case "write":
			session.handleWrite(rawMsg)
		case "init":
			session.handleInit()
		case "export_config":
			session.handleExportConfig(rawMsg)
		default:
			session.sendError(fmt.Sprintf("unknown action: %s", action))
		}
	}
}

func (s *RegisterDebugSession) handleRead(rawMsg map[string]interface{}) {
	device, _ := rawMsg["device"].(string)
	addr, _ := rawMsg["addr"].(string)

	if addr == "" {
		s.sendError("missing addr field")
		return
	}
	if device == "" {
		device = "ag"
	}

	// Parse hex address
	var addrByte byte
	if _, err := fmt.Sscanf(addr, "0x%X", &addrByte); err != nil {
		s.sendError(fmt.Sprintf("invalid address format: %s", addr))
		return
	}

	mgr := sensors.GetIMUManager()
	value, err := mgr.ReadRegister(device, addrByte)
	if err != nil {
		s.sendError(fmt.Sprintf("read error: %v", err))
		return
	}

	// Send response
	resp := RegisterResponse{
		Type:      "register_data",
		Device:    device,
		Address:   addr,
		Value:     fmt.Sprintf("0x%02X", value),
		Timestamp: time.Now().Format(time.RFC3339),
	}
	s.Conn.WriteJSON(resp)
}

func (s *RegisterDebugSession) handleReadAll(rawMsg map[string]interface{}) {
	device, _ := rawMsg["device"].(string)
	if device == "" {
		device = "ag"
	}

	mgr := sensors.GetIMUManager()
	registers, err := mgr.ReadAllRegisters(device)
	if err != nil {
		s.sendError(fmt.Sprintf("read all error: %v", err))
		return
	}

	// Convert to hex string map
	regMap := make(map[string]string)
	for addr, value := range registers {
		regMap[fmt.Sprintf("0x%02X", addr)] = fmt.Sprintf("0x%02X", value)
	}

	// Send response
	resp := RegisterResponse{
		Type:      "register_data",
		Device:    device,
		Registers: regMap,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	s.Conn.WriteJSON(resp)
}

func (s *RegisterDebugSession) handleWrite(rawMsg map[string]interface{}) {
	device, _ := rawMsg["device"].(string)
	addr, _ := rawMsg["addr"].(string)
	valueStr, _ := rawMsg["value"].(string)

	if addr == "" || valueStr == "" {
		s.sendError("missing addr or value field")
		return
	}
	if device == "" {
		device = "ag"
	}

	// Parse hex address and value
	var addrByte, valueByte byte
	if _, err := fmt.Sscanf(addr, "0x%X", &addrByte); err != nil {
		s.sendError(fmt.Sprintf("invalid address format: %s", addr))
		return
	}
	if _, err := fmt.Sscanf(valueStr, "0x%X", &valueByte); err != nil {
		s.sendError(fmt.Sprintf("invalid value format: %s", valueStr))
		return
	}

	// Validate write range before touching the bus
	cfg := config.Get()
	if !isRegisterWritable(device, addrByte, cfg.RegisterDebugAllowedRanges) {
		s.sendError(fmt.Sprintf("register 0x%02X on %s not in allowed write ranges", addrByte, device))
		return
	}

	mgr := sensors.GetIMUManager()
	if err := mgr.WriteRegister(device, addrByte, valueByte); err != nil {
		s.sendError(fmt.Sprintf("write error: %v", err))
		return
	}

	// Send confirmation
	resp := RegisterResponse{
		Type:      "register_data",
		Device:    device,
		Address:   addr,
		Value:     valueStr,
		Timestamp: time.Now().Format(time.RFC3339),
		Message:   "write successful",
	}
	s.Conn.WriteJSON(resp)
}

func (s *RegisterDebugSession) handleInit() {
	// Reinitialize the sensor, reapplying configured ranges and rates
	mgr := sensors.GetIMUManager()
	if err := mgr.Reinitialize(); err != nil {
		s.sendError(fmt.Sprintf("reinit error: %v", err))
		return
	}

	resp := RegisterResponse{
		Type:    "status",
		Status:  "initialized",
		Message: "IMU reinitialized successfully",
	}
	s.Conn.WriteJSON(resp)
}

func (s *RegisterDebugSession) handleExportConfig(rawMsg map[string]interface{}) {
	device, _ := rawMsg["device"].(string)
	if device == "" {
		device = "ag"
	}

	// Read all registers
	mgr := sensors.GetIMUManager()
	registers, err := mgr.ReadAllRegisters(device)
	if err != nil {
		s.sendError(fmt.Sprintf("export error: %v", err))
		return
	}

	// Convert to hex string map
	regMap := make(map[string]string)
	for addr, value := range registers {
		regMap[fmt.Sprintf("0x%02X", addr)] = fmt.Sprintf("0x%02X", value)
	}

	// Create config file structure
	configFile := RegisterConfigFile{
		Version:   1,
		Device:    device,
		Timestamp: time.Now().Format(time.RFC3339),
		Registers: regMap,
	}

	// Send as download
	configJSON, _ := json.Marshal(configFile)
	rawResp := map[string]interface{}{
		"type":     "export_config",
		"device":   device,
		"message":  "config exported",
		"config":   string(configJSON),
		"filename": fmt.Sprintf("lsm9ds1_%s_%s_registers.json", device, time.Now().Format("20060102_150405")),
	}
	s.Conn.WriteJSON(rawResp)
}

func (s *RegisterDebugSession) sendRegisterMap(deviceType string) error {
	mgr := sensors.GetIMUManager()
	var regMap []sensors.RegisterInfo

	// Select register map based on device type
	switch deviceType {
	case "mag":
		regMap = mgr.GetMagRegisterMap()
	default:
		// Default to the accel/gyro core
		regMap = mgr.GetRegisterMap()
	}

	// Convert sensors.RegisterInfo to RegisterInfo
	mappedRegs := make([]RegisterInfo, len(regMap))
	for i, r := range regMap {
		mappedRegs[i] = RegisterInfo{
			Address:     r.Address,
			Name:        r.Name,
			Description: r.Description,
			Access:      r.Access,
			Default:     r.Default,
			BitFields:   r.BitFields, // Already sensors.BitField type
		}
	}

	resp := RegisterResponse{
		Type:        "register_map",
		Device:      deviceType,
		RegisterMap: mappedRegs,
	}
	return s.Conn.WriteJSON(resp)
}

func (s *RegisterDebugSession) sendError(message string) {
	resp := RegisterResponse{
		Type:    "error",
		Message: message,
	}
	s.Conn.WriteJSON(resp)
}

// HandleIMUData serves a live raw sample via REST API, bypassing the
// MQTT cache.
func HandleIMUData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	raw, err := sensors.GetIMUManager().ReadRaw()
	if err != nil {
		http.Error(w, fmt.Sprintf(`{"error": "%v"}`, err), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(raw)
}

// isRegisterWritable checks if a register address is in the allowed
// write ranges for the device. Ranges look like
// "ag:0x10-0x13,ag:0x1E,mag:0x20-0x24"; entries without a device
// prefix apply to both sub-devices. Empty means no writes allowed.
func isRegisterWritable(device string, addr byte, allowedRanges string) bool {
	if allowedRanges == "" {
		return false
	}

	for _, entry := range strings.Split(allowedRanges, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if dev, rest, ok := strings.Cut(entry, ":"); ok {
			if dev != device {
				continue
			}
			entry = rest
		}

		lo, hi, ok := strings.Cut(entry, "-")
		var loByte, hiByte byte
		if _, err := fmt.Sscanf(strings.TrimSpace(lo), "0x%X", &loByte); err != nil {
			continue
		}
		if ok {
			if _, err := fmt.Sscanf(strings.TrimSpace(hi), "0x%X", &hiByte); err != nil {
				continue
			}
		} else {
			hiByte = loByte
		}

		if addr >= loByte && addr <= hiByte {
			return true
		}
	}
	return false
}
