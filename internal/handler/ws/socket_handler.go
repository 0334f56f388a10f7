package wshandler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/internal/auth"
	wsreg "github.com/harshwadhwani-10/PropEase-Real-Estate-Management-System-sub001/pkg/ws"
)

const (
	readLimit = 512
	pongWait  = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the web frontend origin once it is fixed
		return true
	},
}

type WSHandler struct {
	registry *wsreg.Registry
	tokens   *auth.TokenManager
	log      *zap.Logger
}

func NewWSHandler(registry *wsreg.Registry, tokens *auth.TokenManager, log *zap.Logger) *WSHandler {
	return &WSHandler{registry: registry, tokens: tokens, log: log}
}

// HandleConnection upgrades HTTP to WebSocket and registers the session.
// Token verification happens once, here: a valid token binds the session to
// its user, an invalid or missing one leaves the session anonymous (it
// still gets broadcasts but is never a target of identity dispatch).
func (h *WSHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "upgrade failed", http.StatusBadRequest)
		return
	}

	session := wsreg.NewSession(conn)

	token := r.URL.Query().Get("token")
	if token == "" {
		h.registry.Attach(session)
	} else if claims, err := h.tokens.Verify(token); err != nil {
		h.log.Warn("websocket token rejected, session stays anonymous", zap.Error(err))
		h.registry.Attach(session)
	} else {
		h.registry.Register(claims.UserID, session)
	}

	// Reader loop: consume pongs and client frames until the peer goes away.
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		session.Touch()
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.registry.Unregister(session)
}
