package socket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/DedS3t/rich-backend/app/models"
	"github.com/DedS3t/rich-backend/platform/game"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const namespace = "/"

type handler func(connId string, body []byte) (interface{}, error)

// Server adapts socket.io to the room manager. It is the manager's Broadcaster.
type Server struct {
	io    *socketio.Server
	games *game.Manager
	log   *logrus.Entry

	mu    sync.RWMutex
	conns map[string]socketio.Conn

	routes map[string]handler
}

func NewServer(log *logrus.Entry) (*Server, error) {
	io, err := socketio.NewServer(nil)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.WithField("component", "sockets")
	}
	return &Server{
		io:    io,
		log:   log,
		conns: make(map[string]socketio.Conn),
	}, nil
}

// Bind registers every inbound event against the manager.
func (s *Server) Bind(m *game.Manager) {
	s.games = m
	s.routes = s.buildRoutes()

	s.io.OnConnect(namespace, func(c socketio.Conn) error {
		s.track(c)
		s.log.WithField("conn_id", c.ID()).Debug("connected")
		return nil
	})

	for event, h := range s.routes {
		event, h := event, h
		s.io.OnEvent(namespace, event, func(c socketio.Conn, body json.RawMessage) interface{} {
			return s.respond(c.ID(), event, h, body)
		})
	}

	s.io.OnError(namespace, func(c socketio.Conn, e error) {
		entry := s.log.WithError(e)
		if c != nil {
			entry = entry.WithField("conn_id", c.ID())
		}
		entry.Warn("socket error")
	})

	s.io.OnDisconnect(namespace, func(c socketio.Conn, reason string) {
		s.forget(c.ID())
		s.games.Disconnect(c.ID())
		s.log.WithFields(logrus.Fields{"conn_id": c.ID(), "reason": reason}).Debug("disconnected")
	})
}

func (s *Server) buildRoutes() map[string]handler {
	m := s.games
	return map[string]handler{
		"create_room": func(connId string, body []byte) (interface{}, error) {
			var req models.CreateRoomPayload
			if err := decode("create_room", body, &req); err != nil {
				return nil, err
			}
			return m.CreateRoom(connId, req.Nickname, req.PlayerToken)
		},
		"join_room": func(connId string, body []byte) (interface{}, error) {
			var req models.JoinRoomPayload
			if err := decode("join_room", body, &req); err != nil {
				return nil, err
			}
			return m.JoinRoom(connId, req.RoomId, req.Nickname, req.PlayerToken)
		},
		"reconnect_request": func(connId string, body []byte) (interface{}, error) {
			var req models.ReconnectPayload
			if err := decode("reconnect_request", body, &req); err != nil {
				return nil, err
			}
			return m.Reconnect(connId, req.RoomId, req.PlayerId)
		},
		"room_select_character": func(connId string, body []byte) (interface{}, error) {
			var req models.SelectCharacterPayload
			if err := decode("room_select_character", body, &req); err != nil {
				return nil, err
			}
			return m.SelectCharacter(connId, req.RoomId, req.CharacterId)
		},
		"room_toggle_ready": roomHandler("room_toggle_ready", m.ToggleReady),
		"room_start_game":   roomHandler("room_start_game", m.StartGame),
		"room_set_initial_cash": func(connId string, body []byte) (interface{}, error) {
			var req models.InitialCashPayload
			if err := decode("room_set_initial_cash", body, &req); err != nil {
				return nil, err
			}
			return m.SetInitialCash(connId, req.RoomId, req.Amount)
		},
		"roll_request": func(connId string, body []byte) (interface{}, error) {
			var req models.RoomPayload
			if err := decode("roll_request", body, &req); err != nil {
				return nil, err
			}
			return m.Roll(connId, req.RoomId)
		},
		"buy_request": roomHandler("buy_request", m.Buy),
		"skip_buy":    roomHandler("skip_buy", m.SkipBuy),
		"action_decision": func(connId string, body []byte) (interface{}, error) {
			var req models.ActionDecisionPayload
			if err := decode("action_decision", body, &req); err != nil {
				return nil, err
			}
			return m.ActionDecision(connId, req)
		},
		"trade_create_offer": func(connId string, body []byte) (interface{}, error) {
			var req models.CreateTradeOfferPayload
			if err := decode("trade_create_offer", body, &req); err != nil {
				return nil, err
			}
			return m.CreateTradeOffer(connId, req)
		},
		"trade_respond_offer": func(connId string, body []byte) (interface{}, error) {
			var req models.RespondTradeOfferPayload
			if err := decode("trade_respond_offer", body, &req); err != nil {
				return nil, err
			}
			return m.RespondTradeOffer(connId, req)
		},
		"use_item": func(connId string, body []byte) (interface{}, error) {
			var req models.UseItemPayload
			if err := decode("use_item", body, &req); err != nil {
				return nil, err
			}
			return m.UseItem(connId, req)
		},
		"room_leave": func(connId string, body []byte) (interface{}, error) {
			var req models.LeaveRoomPayload
			if err := decode("room_leave", body, &req); err != nil {
				return nil, err
			}
			return m.LeaveRoom(connId, req.RoomId, req.PlayerToken)
		},
	}
}

func roomHandler(event string, op func(connId, roomId string) (models.ActionAck, error)) handler {
	return func(connId string, body []byte) (interface{}, error) {
		var req models.RoomPayload
		if err := decode(event, body, &req); err != nil {
			return nil, err
		}
		return op(connId, req.RoomId)
	}
}

func decode(event string, body []byte, v interface{}) error {
	if len(body) == 0 {
		return fmt.Errorf("%s: empty payload", event)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%s: malformed payload: %w", event, err)
	}
	return nil
}

// respond runs one request and returns its single acknowledgement.
// Rejections are also pushed to the connection as an "error" event.
func (s *Server) respond(connId, event string, h handler, body []byte) interface{} {
	ack, err := h(connId, body)
	if err == nil {
		s.log.WithFields(logrus.Fields{"conn_id": connId, "event": event}).Debug("request handled")
		return ack
	}
	p := game.ToPayload(err)
	s.log.WithFields(logrus.Fields{"conn_id": connId, "event": event, "code": p.Code}).Warn(p.Message)
	s.EmitTo(connId, game.EventError, models.SocketErrorPayload{Code: p.Code, Message: p.Message})
	return p
}

// Dispatch handles an inbound event by name.
func (s *Server) Dispatch(connId, event string, body []byte) interface{} {
	h, ok := s.routes[event]
	if !ok {
		return s.respond(connId, event, func(string, []byte) (interface{}, error) {
			return nil, fmt.Errorf("unknown event %q", event)
		}, body)
	}
	return s.respond(connId, event, h, body)
}

func (s *Server) track(c socketio.Conn) {
	s.mu.Lock()
	s.conns[c.ID()] = c
	s.mu.Unlock()
}

func (s *Server) forget(connId string) {
	s.mu.Lock()
	delete(s.conns, connId)
	s.mu.Unlock()
}

func (s *Server) conn(connId string) socketio.Conn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conns[connId]
}

// encode marshals under the caller's room lock; frames must not observe later mutations.
func encode(payload interface{}) (json.RawMessage, bool) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).Error("encode payload")
		return nil, false
	}
	return raw, true
}

func (s *Server) BroadcastToRoom(roomId, event string, payload interface{}) {
	if raw, ok := encode(payload); ok {
		s.io.BroadcastToRoom(namespace, roomId, event, raw)
	}
}

func (s *Server) EmitTo(connId, event string, payload interface{}) {
	c := s.conn(connId)
	if c == nil {
		return
	}
	if raw, ok := encode(payload); ok {
		c.Emit(event, raw)
	}
}

func (s *Server) Join(connId, roomId string) {
	if c := s.conn(connId); c != nil {
		c.Join(roomId)
	}
}

func (s *Server) Leave(connId, roomId string) {
	if c := s.conn(connId); c != nil {
		c.Leave(roomId)
	}
}

// Disconnect closes a connection replaced by a newer one for the same seat.
func (s *Server) Disconnect(connId string) {
	c := s.conn(connId)
	if c == nil {
		return
	}
	s.forget(connId)
	if err := c.Close(); err != nil {
		s.log.WithError(err).WithField("conn_id", connId).Warn("close connection")
	}
}

func (s *Server) Serve() {
	go func() {
		if err := s.io.Serve(); err != nil {
			s.log.WithError(err).Error("socket.io serve")
		}
	}()
}

func (s *Server) Close() error {
	return s.io.Close()
}

// Handler mounts socket.io behind CORS.
func (s *Server) Handler(origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
	})
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", s.io)
	return c.Handler(mux)
}
