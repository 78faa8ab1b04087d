package http

import (
	"net/http"

	"github.com/gorilla/websocket"

	"quizzapp-service/internal/app"
	"quizzapp-service/internal/domain"
	"quizzapp-service/internal/logging"
)

// FeedHandler streams question bank changes to websocket clients.
type FeedHandler struct {
	feed     *app.QuestionFeed
	upgrader websocket.Upgrader
}

func NewFeedHandler(feed *app.QuestionFeed) *FeedHandler {
	return &FeedHandler{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type string `json:"type"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and forwards every question event until the client leaves.
// Clients may send {"type":"ping"} and get {"type":"pong"} back.
func (h *FeedHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	l := logging.Ctx(r.Context())
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	events, cancel := h.feed.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	eventsDone := make(chan struct{})

	// Single writer: gorilla connections do not support concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				l.Warn().Err(err).Msg("ws write failed")
				return
			}
		}
	}()

	go func() {
		defer close(eventsDone)
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				select {
				case send <- eventMessage(ev):
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "subscribed", Payload: struct{}{}}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		var reply outboundMessage[any]
		switch inbound.Type {
		case "ping":
			reply = outboundMessage[any]{Type: "pong", Payload: struct{}{}}
		default:
			reply = outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
		select {
		case send <- reply:
		case <-writerDone:
		}
	}

	close(closeSignals)
	<-eventsDone
	close(send)
	<-writerDone
}

func eventMessage(ev domain.QuestionEvent) outboundMessage[any] {
	return outboundMessage[any]{Type: "question." + string(ev.Type), Payload: ev.Question}
}
