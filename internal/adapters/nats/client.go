package natsadapter

import (
	"encoding/json"
	"time"

	nats "github.com/nats-io/nats.go"

	"github.com/muneezaZaki85/galvan-ai-auth-system/internal/domain"
)

// Publisher emits account lifecycle events for sibling services. Publishes
// are fire-and-forget: the auth flows never wait on the bus.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

type userEvent struct {
	Event  string    `json:"event"`
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	At     time.Time `json:"at"`
}

func NewPublisher(conn *nats.Conn, subject string) *Publisher {
	return &Publisher{conn: conn, subject: subject}
}

func (p *Publisher) UserRegistered(user *domain.User) { p.publish("user.registered", user) }
func (p *Publisher) UserVerified(user *domain.User)   { p.publish("user.verified", user) }
func (p *Publisher) UserCreated(user *domain.User)    { p.publish("user.created", user) }
func (p *Publisher) UserDeleted(user *domain.User)    { p.publish("user.deleted", user) }

func (p *Publisher) publish(event string, user *domain.User) {
	if p == nil || p.conn == nil {
		return
	}
	data, err := json.Marshal(userEvent{
		Event:  event,
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		At:     time.Now().UTC(),
	})
	if err != nil {
		return
	}
	_ = p.conn.Publish(p.subject, data)
}
