package services

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/models"
)

// Shop lifecycle events published to the shop-events topic. Downstream
// consumers (notification service, analytics) key on the shop id.
const (
	ShopCreated     = "shop.created"
	ShopApproved    = "shop.approved"
	ShopRejected    = "shop.rejected"
	ShopResubmitted = "shop.resubmitted"
	ShopDeleted     = "shop.deleted"
)

var shopEvents *kafka.Writer

// InitEvents wires the Kafka producer. Publishing is optional: with
// KAFKA_BROKERS unset every publish is a no-op.
func InitEvents() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("⚠️ KAFKA_BROKERS not set, shop events disabled")
		return
	}

	shopEvents = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        "shop-events",
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
	log.Println("✅ Kafka shop-events producer ready:", brokers)
}

func CloseEvents() {
	if shopEvents != nil {
		shopEvents.Close()
	}
}

type shopEvent struct {
	Type       string    `json:"type"`
	ShopID     string    `json:"shop_id"`
	OwnerID    string    `json:"owner_id"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PublishShopEvent emits a lifecycle event. Fire-and-forget: the request
// that triggered the transition never waits on the broker.
func PublishShopEvent(eventType string, shop models.Shop) {
	if shopEvents == nil {
		return
	}

	payload, _ := json.Marshal(shopEvent{
		Type:       eventType,
		ShopID:     shop.ID.String(),
		OwnerID:    shop.OwnerID.String(),
		Status:     string(shop.Status),
		Reason:     shop.RejectionReason,
		OccurredAt: time.Now().UTC(),
	})

	err := shopEvents.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(shop.ID.String()),
		Value: payload,
	})
	if err != nil {
		log.Printf("⚠️ Shop event publish failed (%s): %v", eventType, err)
	}
}
