package kafka_test

import (
	"stay/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	BookingID string `json:"booking_id"`
	Kind      string `json:"kind"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{Key: "booking-1", Value: payload{BookingID: "booking-1", Kind: "confirmation"}}

	out, err := msg.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("booking-1"), out.Key)
	assert.JSONEq(t, `{"booking_id":"booking-1","kind":"confirmation"}`, string(out.Value))
}

func TestMessage_ToKafkaMessageUnsupportedValue(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDecodeKafkaMessage(t *testing.T) {
	key, value, err := kafka.DecodeKafkaMessage[payload](kafkaGo.Message{
		Key:   []byte("booking-2"),
		Value: []byte(`{"booking_id":"booking-2","kind":"reminder"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "booking-2", key)
	assert.Equal(t, payload{BookingID: "booking-2", Kind: "reminder"}, value)

	_, _, err = kafka.DecodeKafkaMessage[payload](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}
