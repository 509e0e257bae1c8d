package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// AmbientReading is a raw illuminance sample published by a device.
type AmbientReading struct {
	DeviceID  string
	Timestamp int64
	Lux       int
}

// ManualAdjustment is a user-initiated brightness change published by a
// device. AmbientLight is optional; devices that do not report it publish -1
// and the bridge falls back to the last known reading.
type ManualAdjustment struct {
	DeviceID     string
	Timestamp    int64
	Brightness   int
	AmbientLight int
}

// manualPayload is the JSON wire format for manual adjustment events.
type manualPayload struct {
	Brightness   int  `json:"brightness"`
	AmbientLight *int `json:"ambient_light,omitempty"`
}

// Subscriber handles MQTT subscriptions and writes parsed events to channels.
type Subscriber struct {
	client mqtt.Client

	// Output channels (written by subscriber, read by the bridge)
	AmbientChan chan *AmbientReading
	ManualChan  chan *ManualAdjustment

	illuminanceTopic string
	manualTopic      string
}

// SubscriberConfig holds topic patterns for the subscriber.
type SubscriberConfig struct {
	IlluminanceTopic string // e.g., "sensor/+/illuminance"
	ManualTopic      string // e.g., "display/+/manual"
}

// NewSubscriber creates a new MQTT subscriber with channels.
func NewSubscriber(client mqtt.Client, config SubscriberConfig, ambientChan chan *AmbientReading, manualChan chan *ManualAdjustment) *Subscriber {
	return &Subscriber{
		client:           client,
		AmbientChan:      ambientChan,
		ManualChan:       manualChan,
		illuminanceTopic: config.IlluminanceTopic,
		manualTopic:      config.ManualTopic,
	}
}

// SubscribeAll subscribes to all configured topics.
func (s *Subscriber) SubscribeAll() error {
	if s.illuminanceTopic != "" {
		if err := s.subscribeToTopic(s.illuminanceTopic, s.handleIlluminance); err != nil {
			return fmt.Errorf("failed to subscribe to illuminance topic: %w", err)
		}
		log.Printf("Subscribed to illuminance topic: %s", s.illuminanceTopic)
	}

	if s.manualTopic != "" {
		if err := s.subscribeToTopic(s.manualTopic, s.handleManual); err != nil {
			return fmt.Errorf("failed to subscribe to manual adjustment topic: %w", err)
		}
		log.Printf("Subscribed to manual adjustment topic: %s", s.manualTopic)
	}

	return nil
}

func (s *Subscriber) subscribeToTopic(topic string, handler mqtt.MessageHandler) error {
	token := s.client.Subscribe(topic, 1, handler)
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

// handleIlluminance parses raw lux payloads: a bare integer per message.
func (s *Subscriber) handleIlluminance(client mqtt.Client, msg mqtt.Message) {
	var lux int
	if _, err := fmt.Sscanf(string(msg.Payload()), "%d", &lux); err != nil {
		log.Printf("Error parsing illuminance value: %v", err)
		return
	}

	deviceID := extractDeviceID(msg.Topic())
	if deviceID == "" {
		log.Printf("Could not extract device ID from topic: %s", msg.Topic())
		return
	}

	reading := &AmbientReading{
		DeviceID:  deviceID,
		Timestamp: time.Now().Unix(),
		Lux:       lux,
	}

	select {
	case s.AmbientChan <- reading:
	case <-time.After(1 * time.Second):
		log.Printf("Warning: ambient channel full, dropping reading from %s", deviceID)
	}
}

// handleManual parses manual brightness adjustment JSON payloads.
func (s *Subscriber) handleManual(client mqtt.Client, msg mqtt.Message) {
	var payload manualPayload
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		log.Printf("Error unmarshaling manual adjustment: %v", err)
		return
	}

	deviceID := extractDeviceID(msg.Topic())
	if deviceID == "" {
		log.Printf("Could not extract device ID from topic: %s", msg.Topic())
		return
	}

	adjustment := &ManualAdjustment{
		DeviceID:     deviceID,
		Timestamp:    time.Now().Unix(),
		Brightness:   payload.Brightness,
		AmbientLight: -1,
	}
	if payload.AmbientLight != nil {
		adjustment.AmbientLight = *payload.AmbientLight
	}

	log.Printf("Received manual adjustment from %s: brightness=%d", deviceID, payload.Brightness)

	select {
	case s.ManualChan <- adjustment:
	case <-time.After(1 * time.Second):
		log.Printf("Warning: manual channel full, dropping adjustment from %s", deviceID)
	}
}

// extractDeviceID extracts the device ID from an MQTT topic.
// Example: "sensor/panel-01/illuminance" -> "panel-01"
func extractDeviceID(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) >= 2 {
		return parts[1]
	}
	return ""
}
