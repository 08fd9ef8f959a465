package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1 << 16,
	// CORS already governs who may reach a localhost adapter.
	CheckOrigin: func(*http.Request) bool { return true },
}

type wsError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WatchRemainingPokemon pushes one JSON snapshot per batch over a websocket. The load stops
// when the client closes the connection.
func (h *Handler) WatchRemainingPokemon(c *gin.Context) {
	current, ok := queryInt(c, "current", 0)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Reads only serve to notice the peer going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	stream, err := h.rosterSvc.StreamRemaining(ctx, current)
	if err != nil {
		httpErr := fromDomainError(err)
		var msg wsError
		msg.Error.Code = httpErr.Code
		msg.Error.Message = httpErr.Message
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		_ = conn.WriteJSON(msg)
		h.closeWebsocket(conn, websocket.CloseInternalServerErr, httpErr.Code)
		return
	}

	for snap := range stream {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(snap); err != nil {
			h.logger.Warn("websocket write failed", "error", err)
			cancel()
			drain(stream)
			return
		}
		if snap.Final() {
			h.session.SetPokemonList(snap.Species)
		}
	}
	h.closeWebsocket(conn, websocket.CloseNormalClosure, "done")
}

func (h *Handler) closeWebsocket(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		h.logger.Debug("websocket close failed", "error", err)
	}
}

// drain lets the producer observe cancellation and close the channel.
func drain[T any](ch <-chan T) {
	for range ch {
	}
}
