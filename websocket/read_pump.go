// websocket/read_pump.go
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/rob3rtroessler/DataVisExerciseDashboards/models"
)

var tracer = otel.Tracer("websocket")

// readPump читает команды клиента и применяет их к сессии
func (c *Client) readPump() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Паника при чтении команд сессии %s: %v", c.ID, r)
		}
		select {
		case c.manager.Unregister <- c:
		case <-c.manager.done:
			c.session.Close()
		}
		c.Socket.Close()
	}()

	c.Socket.SetReadLimit(maxMessageSize)
	c.Socket.SetReadDeadline(time.Now().Add(pongWait))
	c.Socket.SetPongHandler(func(string) error {
		c.Socket.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Ошибка чтения сессии %s: %v", c.ID, err)
			}
			return
		}
		c.touch()

		if !c.handle(message) {
			return
		}
	}
}

// handle разбирает и выполняет одну команду. false - соединение нужно закрыть.
func (c *Client) handle(message []byte) bool {
	cmd, err := c.manager.decodeCommand(message)
	if err != nil {
		return c.enqueue(Message{Type: MessageError, Error: err.Error()})
	}

	if cmd.Type == "ping" {
		return c.enqueue(Message{Type: MessagePong})
	}

	_, span := tracer.Start(context.Background(), "websocket.command")
	span.SetAttributes(
		attribute.String("session.id", c.ID),
		attribute.String("session.app", c.App),
		attribute.String("command.type", cmd.Type),
	)
	defer span.End()

	frames, err := c.session.Apply(cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "команда отклонена")
		c.manager.logger.Debug("Команда %s сессии %s отклонена: %v", cmd.Type, c.ID, err)
		return c.enqueue(Message{Type: MessageError, Error: err.Error()})
	}
	span.SetAttributes(attribute.Int("frames", len(frames)))
	return c.sendFrames(frames)
}

// decodeCommand разбирает и проверяет команду клиента
func (manager *Manager) decodeCommand(message []byte) (models.Command, error) {
	var cmd models.Command
	if err := json.Unmarshal(message, &cmd); err != nil {
		return cmd, fmt.Errorf("ошибка декодирования команды: %w", err)
	}
	// brush - синоним select
	if cmd.Type == "brush" {
		cmd.Type = "select"
	}
	if err := manager.validate.Struct(cmd); err != nil {
		return cmd, fmt.Errorf("неверная команда: %w", err)
	}
	return cmd, nil
}
