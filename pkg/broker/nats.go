package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/devillage/teamproject/backend/internal/models"
	"github.com/nats-io/nats.go"
)

// SubjectPrefix is prepended to the action of every published interaction.
const SubjectPrefix = "forum.interactions."

// NatsPublisher publishes interaction events on NATS
type NatsPublisher struct {
	nc *nats.Conn
}

func NewNatsPublisher(nc *nats.Conn) *NatsPublisher {
	return &NatsPublisher{nc: nc}
}

// Connect dials the NATS server at url.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name("forum-backend"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}

// Publish sends the event on forum.interactions.<action>.
func (p *NatsPublisher) Publish(ctx context.Context, event models.InteractionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling error: %w", err)
	}
	msg := &nats.Msg{
		Subject: SubjectPrefix + event.Action,
		Data:    data,
		Header:  nats.Header{},
	}
	msg.Header.Set(nats.MsgIdHdr, event.ID)
	return p.nc.PublishMsg(msg)
}
