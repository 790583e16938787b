package collab

import (
	"net"
	"net/http"
	"strings"
	"time"

	"CollabSphere/global/config"
	"CollabSphere/logger"
	"CollabSphere/tools/errs"
	"CollabSphere/tools/ids"
	"CollabSphere/tools/security"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgraded = websocket.Upgrader{ReadBufferSize: 4096, WriteBufferSize: 4096, CheckOrigin: func(r *http.Request) bool { return true }}

const readWait = 60 * time.Second

// HandleWS is the realtime endpoint. The connection gate runs before the
// upgrade: a missing or unverifiable token is rejected with 401 and no room
// state is ever touched for that attempt.
func (s *Server) HandleWS(c *gin.Context) {
	userID, err := s.admit(c)
	if err != nil {
		logger.Infof("[HandleWS] reject connection: %v", err)
		c.JSON(http.StatusUnauthorized, errs.ErrAuthFailed)
		return
	}

	ws, err := upgraded.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Infof("[HandleWS] upgrade websocket error: %v", err)
		return
	}

	client := NewClient(ids.GenerateString(), userID, ws, 256)
	go client.WritePump()
	defer s.Disconnect(client)

	logger.Infof("[HandleWS] connected user=%s conn=%s", client.UserID, client.ConnID)

	ws.SetReadLimit(1 << 20) // 1MB
	_ = ws.SetReadDeadline(time.Now().Add(readWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		mt, data, rerr := ws.ReadMessage()
		if rerr != nil {
			if websocket.IsCloseError(rerr,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Infof("[HandleWS] peer closed conn=%s err=%v", client.ConnID, rerr)
			} else if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				logger.Infof("[HandleWS] read timeout conn=%s err=%v", client.ConnID, rerr)
			} else {
				logger.Infof("[HandleWS] read err conn=%s err=%v", client.ConnID, rerr)
			}
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		frame, perr := ParseFrame(data)
		if perr != nil {
			sample := data
			if len(sample) > 256 {
				sample = sample[:256]
			}
			logger.Infof("[HandleWS] ParseFrame err conn=%s err=%v sample=%q len=%d",
				client.ConnID, perr, sample, len(data))
			continue
		}

		if err := s.DispatchFrame(frame, client); err != nil {
			logger.Infof("[HandleWS] dispatch type=%s conn=%s err=%v", frame.Type, client.ConnID, err)
			continue
		}
	}
}

// admit verifies the handshake credential and resolves the user id.
func (s *Server) admit(c *gin.Context) (string, error) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		if authz := strings.TrimSpace(c.GetHeader("Authorization")); authz != "" {
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				token = strings.TrimSpace(authz[len("bearer "):])
			}
		}
	}
	if token == "" {
		return "", errs.New("missing token")
	}
	claims, err := security.Verify(security.DefaultOptions(config.GetJwtSecret()), token)
	if err != nil {
		return "", err
	}
	userID := claims.UserID()
	if userID == "" {
		return "", errs.New("token has no subject")
	}
	return userID, nil
}
