package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/beelight/beelight/pkg/config"
	"github.com/beelight/beelight/pkg/mqtt"
	"github.com/beelight/beelight/pkg/queue/nats"
)

func main() {
	cfg := config.Load()

	log.Println("Starting sensor bridge...")
	log.Printf("MQTT: %s, NATS: %s", cfg.MQTTBroker, cfg.NATSUrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// NATS side
	natsClient, err := nats.NewClient(nats.Config{
		URL:        cfg.NATSUrl,
		StreamName: cfg.NATSStream,
	})
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsClient.Close()

	if err := natsClient.CreateStream(ctx, []string{nats.SubjectObservationWrite}); err != nil {
		log.Fatalf("Failed to create stream: %v", err)
	}

	// MQTT side
	mqttClient, err := mqtt.NewClient(mqtt.ClientConfig{
		Broker:   cfg.MQTTBroker,
		ClientID: cfg.MQTTClientID,
		Username: cfg.MQTTUsername,
		Password: cfg.MQTTPassword,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MQTT: %v", err)
	}
	defer mqttClient.Close()

	ambientChan := make(chan *mqtt.AmbientReading, 100)
	manualChan := make(chan *mqtt.ManualAdjustment, 100)

	subscriber := mqtt.NewSubscriber(mqttClient.NativeClient(), mqtt.SubscriberConfig{
		IlluminanceTopic: cfg.MQTTTopicIlluminance,
		ManualTopic:      cfg.MQTTTopicManual,
	}, ambientChan, manualChan)

	if err := subscriber.SubscribeAll(); err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	tracker := mqtt.NewDeviceTracker()

	publish := func(msg *nats.ObservationMsg) {
		payload, err := nats.Encode(msg)
		if err != nil {
			log.Printf("Failed to encode observation: %v", err)
			return
		}
		if err := natsClient.Publish(ctx, nats.SubjectObservationWrite, payload); err != nil {
			log.Printf("Failed to publish observation: %v", err)
		}
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case reading := <-ambientChan:
				obs := tracker.ObserveAmbient(reading)
				// Manual adjustments carry the activity signal; plain
				// sensor samples are published idle.
				publish(&nats.ObservationMsg{Observation: &obs, IsActive: false})
			case adjustment := <-manualChan:
				obs, ok := tracker.ObserveManual(adjustment)
				if !ok {
					log.Printf("Dropping manual adjustment from %s: no ambient reading yet", adjustment.DeviceID)
					continue
				}
				publish(&nats.ObservationMsg{Observation: &obs, IsActive: true})
			}
		}
	}()

	log.Println("Sensor bridge started, forwarding device events...")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down sensor bridge...")
}
