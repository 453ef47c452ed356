// Package stream pushes world state over WebSocket and routes teleop
// commands back into robot controllers.
package stream

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/robokit/simenv/internal/control"
	"github.com/robokit/simenv/internal/simenv"
)

const logPrefix = "stream"

// DefaultInterval is the broadcast period.
const DefaultInterval = 50 * time.Millisecond

// safeConn serializes writes to one WebSocket connection; gorilla allows
// a single writer at a time.
type safeConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *safeConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Server steps a world and broadcasts its state to every connected
// client. Inbound command frames feed the manual controllers registered
// per robot.
type Server struct {
	world    simenv.World
	logger   simenv.Logger
	upgrader websocket.Upgrader
	interval time.Duration

	mu      sync.Mutex
	clients map[*safeConn]struct{}
	teleop  map[string]*control.Manual
	step    uint64
}

var _ simenv.WorldViewer = (*Server)(nil)

func NewServer(w simenv.World, logger simenv.Logger, interval time.Duration) *Server {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Server{
		world:  w,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		interval: interval,
		clients:  make(map[*safeConn]struct{}),
		teleop:   make(map[string]*control.Manual),
	}
}

// DrawFrame makes the server a rendering collaborator: overlays drawn by
// controllers are forwarded straight to every client.
func (s *Server) DrawFrame(tf simenv.Transform, length, width float64) {
	x, y, z, rx, ry, rz := tf.XYZEuler()
	msg := Frame{
		Type:     TypeFrame,
		Position: [3]float64{x, y, z},
		Euler:    [3]float64{rx, ry, rz},
		Length:   length,
		Width:    width,
	}
	s.mu.Lock()
	conns := make([]*safeConn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()
	for _, c := range conns {
		if err := c.writeJSON(msg); err != nil {
			s.logger.Warn(fmt.Sprintf("frame overlay dropped: %v", err), logPrefix)
		}
	}
}

// Teleop attaches a manual controller to a named robot and routes
// matching command frames to it.
func (s *Server) Teleop(robot string, m *control.Manual) {
	s.mu.Lock()
	s.teleop[robot] = m
	s.mu.Unlock()
}

// Run steps the world and broadcasts until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.world.StepPhysics(1)
			s.mu.Lock()
			s.step++
			s.mu.Unlock()
			s.broadcast(s.snapshot())
		}
	}
}

// Handler upgrades HTTP requests to streaming connections.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.logger.Warn(fmt.Sprintf("upgrade failed: %v", err), logPrefix)
			return
		}
		c := &safeConn{conn: conn}
		s.addClient(c)
		defer func() {
			s.removeClient(c)
			conn.Close()
		}()

		if err := c.writeJSON(s.hello()); err != nil {
			s.logger.Warn(fmt.Sprintf("hello failed: %v", err), logPrefix)
			return
		}
		s.logger.Info(fmt.Sprintf("client connected from %s", conn.RemoteAddr()), logPrefix)
		s.readLoop(c)
		s.logger.Info(fmt.Sprintf("client disconnected: %s", conn.RemoteAddr()), logPrefix)
	})
}

func (s *Server) readLoop(c *safeConn) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn(fmt.Sprintf("read error: %v", err), logPrefix)
			}
			return
		}
		cmd, err := ParseCommand(data)
		if err != nil {
			c.writeJSON(Error{Type: TypeError, Reason: err.Error()})
			continue
		}
		s.mu.Lock()
		m, ok := s.teleop[cmd.Robot]
		s.mu.Unlock()
		if !ok {
			c.writeJSON(Error{Type: TypeError, Reason: fmt.Sprintf("no teleop channel for robot %q", cmd.Robot)})
			continue
		}
		m.SetControl(cmd.Control)
	}
}

func (s *Server) addClient(c *safeConn) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) removeClient(c *safeConn) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
}

func (s *Server) broadcast(msg State) {
	s.mu.Lock()
	conns := make([]*safeConn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()
	for _, c := range conns {
		if err := c.writeJSON(msg); err != nil {
			s.logger.Warn(fmt.Sprintf("dropping client: %v", err), logPrefix)
			s.removeClient(c)
			c.conn.Close()
		}
	}
}

func (s *Server) hello() Hello {
	var objects, robots []string
	for _, o := range s.world.GetObjects(false) {
		objects = append(objects, o.Name())
	}
	for _, r := range s.world.GetRobots() {
		robots = append(robots, r.Name())
	}
	name := ""
	type named interface{ Name() string }
	if n, ok := s.world.(named); ok {
		name = n.Name()
	}
	return Hello{
		Type:     TypeHello,
		World:    name,
		Objects:  objects,
		Robots:   robots,
		Timestep: s.world.PhysicsTimeStep(),
	}
}

// snapshot flattens the current world state into a wire frame.
func (s *Server) snapshot() State {
	s.mu.Lock()
	step := s.step
	s.mu.Unlock()

	msg := State{
		Type: TypeState,
		Step: step,
		Time: float64(step) * s.world.PhysicsTimeStep(),
	}
	for _, o := range s.world.GetObjects(true) {
		tf := o.Transform()
		x, y, z, rx, ry, rz := tf.XYZEuler()
		msg.Bodies = append(msg.Bodies, BodyState{
			Name:       o.Name(),
			Position:   [3]float64{x, y, z},
			Euler:      [3]float64{rx, ry, rz},
			Positions:  o.DOFPositions(o.DOFIndices()),
			Velocities: o.DOFVelocities(o.DOFIndices()),
		})
	}
	return msg
}
