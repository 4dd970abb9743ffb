package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/lintang-b-s/navigatorx-grid/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-grid/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/navigatorx-grid/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"go.uber.org/zap"
)

/*
handleWebsocket serve the pointer input layer on the websocket port until ctx is canceled.
sends exactly one value on errChan: the listen/poller error, or nil after a clean shutdown.
*/
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	gridService controllers.GridService, errChan chan error,
) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.WebsocketPort))
	if err != nil {
		errChan <- err
		return
	}
	api.log.Info(fmt.Sprintf("pointer input websocket API run on port %d", config.WebsocketPort))

	acceptDesc, err := netpoll.HandleListener(ln, netpoll.EventRead|netpoll.EventOneShot)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.poller, err = netpoll.New(nil)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.pool = concurrent.NewWorkerPool(15, 10)

	api.hub = controllers.NewHub(gridService)

	api.pool.Spawn(10)
	// accept is a channel to signal about next incoming connection Accept()
	// results.
	accept := make(chan error, 1)

	err = api.poller.Start(acceptDesc, func(ev netpoll.Event) {
		// listener fd is registered one shot, re-arm it after every accept.
		defer api.poller.Resume(acceptDesc)
		err := api.pool.ScheduleTimeout(time.Millisecond, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(conn)
		})
		if err == nil {
			err = <-accept
		}
		if err == nil || ctx.Err() != nil {
			return
		}

		var ne net.Error
		switch {
		case errors.Is(err, concurrent.ErrScheduleTimeout):
			// pool is full, cooldown before the next accept
			delay := 5 * time.Millisecond
			api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
			time.Sleep(delay)
		case errors.As(err, &ne) && ne.Timeout():
			delay := 5 * time.Millisecond
			api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
			time.Sleep(delay)
		default:
			api.log.Error("accept error", zap.Error(err))
		}
	})
	if err != nil {
		ln.Close()
		api.pool.Close()
		errChan <- err
		return
	}

	<-ctx.Done()

	api.poller.Stop(acceptDesc)
	ln.Close()

	api.hub.RemoveAllUser()

	api.pool.Close()

	api.log.Info("websocket server stopped")
	errChan <- nil
}

/*
handle upgrade conn to websocket and register its fd with the poller.
every readable event schedules one pointer event on the goroutine pool, so idle connections hold no goroutine.
ref: https://sergey.kamardin.org/articles/million-websocket-and-go/
*/
func (api *API) handle(conn net.Conn) {
	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc, err := netpoll.HandleRead(conn)
	if err != nil {
		api.log.Error("failed to watch websocket connection", zap.Error(err))
		api.hub.Remove(user)
		conn.Close()
		return
	}

	api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			// peer closed its end
			api.log.Info("user disconnected from websocket server", zap.String("connection", nameConn(conn)))

			api.poller.Stop(desc)
			api.hub.Remove(user)
			conn.Close()
			return
		}

		api.pool.Schedule(func() {
			if err := user.HandlePointerEvent(); err != nil {
				api.log.Info("closing websocket connection", zap.Error(err), zap.String("connection", nameConn(conn)))
				api.poller.Stop(desc)
				api.hub.Remove(user)
				conn.Close()
			}
		})
	})
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
