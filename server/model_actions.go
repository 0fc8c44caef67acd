package server

import (
	"context"
	"encoding/gob"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/conduit/levels"
	"github.com/zucenko/conduit/model"
	"github.com/zucenko/conduit/sim"
	"github.com/zucenko/conduit/store"
)

func NewVerifyServer(lvls []*levels.Level, profile *store.Profile, stepInterval time.Duration, maxCycles uint64) *VerifyServer {
	return &VerifyServer{
		Levels:         lvls,
		Profile:        profile,
		Sessions:       make(map[uuid.UUID]*Session),
		Requests:       make(chan SessionRequest),
		Finished:       make(chan uuid.UUID),
		Upgrader:       &websocket.Upgrader{},
		StepInterval:   stepInterval,
		MaxCycles:      maxCycles,
		ConnectTimeout: 5 * time.Second,
	}
}

func (s *VerifyServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("level")
		log.WithField("level", key).Info("HandleHttpCall - connection received")

		awaiting := make(chan SessionAwaiting, 1)
		select {
		case s.Requests <- SessionRequest{LevelKey: key, Awaiting: awaiting}:
		case <-time.After(timeout):
			log.Warn("SessionRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var sa SessionAwaiting
		select {
		case sa = <-awaiting:
			switch sa.ResponseCode {
			case LEVEL_NOT_FOUND, SESSION_INVALID:
				log.Infof("HandleHttpCall refused level %q: %d", key, sa.ResponseCode)
				w.WriteHeader(sa.ResponseCode.ToHttp())
				return
			case SESSION_READY:
			default:
				log.Errorf("sa.ResponseCode not expected:%v", sa.ResponseCode)
				w.WriteHeader(HTTP_SERVER_ERR)
				return
			}
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall SessionAwaiting <- TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// the upgrader already answered; the session times out on its own
			log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		select {
		case sa.Session.Connects <- SessionConnectRequest{Con: con}:
		case <-sa.Session.Done:
			return
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall session %s did not take the connection", sa.Session.Id)
			return
		}

		<-sa.Session.Done
		log.WithField("session", sa.Session.Id).Info("HandleHttpCall session over")
	}
}

// Loop serves session requests until ctx is done.
func (s *VerifyServer) Loop(ctx context.Context) {
	log.Info("VerifyServer.Loop starting")
	for {
		select {
		case req := <-s.Requests:
			if req.LevelKey == "" {
				req.Awaiting <- SessionAwaiting{ResponseCode: SESSION_INVALID}
				continue
			}
			level, ok := levels.Find(s.Levels, req.LevelKey)
			if !ok {
				req.Awaiting <- SessionAwaiting{ResponseCode: LEVEL_NOT_FOUND}
				continue
			}
			vs := s.newSession(level)
			s.Sessions[vs.Id] = vs
			log.WithFields(log.Fields{"session": vs.Id, "level": level.Filename, "open": len(s.Sessions)}).
				Info("session created")
			go vs.Loop(ctx)
			req.Awaiting <- SessionAwaiting{ResponseCode: SESSION_READY, Session: vs}
		case id := <-s.Finished:
			delete(s.Sessions, id)
			log.WithFields(log.Fields{"session": id, "open": len(s.Sessions)}).Info("session finished")
		case <-ctx.Done():
			log.Info("VerifyServer.Loop stopped")
			return
		}
	}
}

func (s *VerifyServer) newSession(level *levels.Level) *Session {
	return &Session{
		Id:             uuid.New(),
		State:          SS_NEW,
		Level:          level,
		server:         s,
		Connects:       make(chan SessionConnectRequest),
		Events:         make(chan model.ClientMessage),
		Errors:         make(chan error, 2),
		MessagesToSend: make(chan model.ServerMessage, 16),
		Done:           make(chan struct{}),
	}
}

// Loop runs the session until the client leaves, stops, or ctx is done.
func (vs *Session) Loop(ctx context.Context) {
	logger := log.WithField("session", vs.Id)
	logger.Info("Session.Loop start")
	connectTimer := time.NewTimer(vs.server.ConnectTimeout)
	defer connectTimer.Stop()
	var ticker *time.Ticker
	var tick <-chan time.Time
	stopTicker := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, tick = nil, nil
		}
	}
	defer stopTicker()

	for {
		select {
		case pcr := <-vs.Connects:
			connectTimer.Stop()
			vs.attach(pcr.Con)
			vs.State = SS_IDLE
			vs.MessagesToSend <- vs.setupMessage()
		case <-connectTimer.C:
			logger.Warn("no connection arrived")
			vs.finish(ctx, SS_ERR)
			return
		case cm := <-vs.Events:
			if cm.Stop {
				vs.finish(ctx, SS_OVER)
				return
			}
			stopTicker()
			if vs.start(cm) {
				interval := vs.server.StepInterval
				if interval <= 0 {
					interval = time.Millisecond
				}
				ticker = time.NewTicker(interval)
				tick = ticker.C
			}
		case <-tick:
			if vs.step() {
				stopTicker()
			}
		case err := <-vs.Errors:
			logger.Warnf("killing session: %v", err)
			vs.finish(ctx, SS_ERR)
			return
		case <-ctx.Done():
			vs.finish(ctx, SS_OVER)
			return
		}
	}
}

func (vs *Session) finish(ctx context.Context, state SessionState) {
	vs.State = state
	close(vs.Done)
	select {
	case vs.server.Finished <- vs.Id:
	case <-ctx.Done():
	}
}

// report hands a connection error to the session without ever blocking.
func (vs *Session) report(err error) {
	select {
	case vs.Errors <- err:
	default:
	}
}

func (vs *Session) attach(conn *websocket.Conn) {
	vs.Conn = conn
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			if err == websocket.ErrCloseSent {
				return nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return nil
			}
			return err
		})
	go vs.LoopChannelRead()
	go vs.LoopChannelWrite()
}

func (vs *Session) LoopChannelRead() {
	logger := log.WithField("session", vs.Id)
	logger.Debug("LoopChannelRead STARTED")
	defer logger.Debug("LoopChannelRead ENDED")
	for {
		_, r, err := vs.Conn.NextReader()
		if err != nil {
			vs.report(err)
			return
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			logger.Warnf("cant decode: %v", err)
			vs.report(err)
			return
		}
		vs.DebugLastMessage.Store(time.Now().UnixNano())
		vs.DebugInMessages.Add(1)

		select {
		case vs.Events <- cm:
		case <-vs.Done:
			return
		}
	}
}

// LoopChannelWrite only consumes, so the session never blocks on a dead
// connection.
func (vs *Session) LoopChannelWrite() {
	logger := log.WithField("session", vs.Id)
	logger.Debug("LoopChannelWrite STARTED")
	defer logger.Debug("LoopChannelWrite ENDED")
	broken := false
	for {
		select {
		case mes := <-vs.MessagesToSend:
			if broken {
				continue
			}
			if err := vs.write(mes); err != nil {
				logger.Warnf("LoopChannelWrite cant write %v", err)
				broken = true
				vs.report(err)
				continue
			}
			vs.DebugOutMessages.Add(1)
		case <-vs.Done:
			return
		}
	}
}

func (vs *Session) write(mes model.ServerMessage) error {
	w, err := vs.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(mes); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (vs *Session) setupMessage() model.ServerMessage {
	b := vs.Level.Board
	cables := b.Cables
	if vs.server.Profile != nil {
		if soln, ok := vs.server.Profile.Solution(vs.Level.Filename); ok {
			cables = soln.Cables
		}
	}
	return model.ServerMessage{
		Setup: []model.Setup{{
			SessionId: vs.Id.String(),
			LevelKey:  vs.Level.Filename,
			LevelName: vs.Level.Name,
			Width:     b.Width,
			Height:    b.Height(),
			Left:      model.Slots(b.Left),
			Right:     model.Slots(b.Right),
			Cables:    cables.Placed(),
		}},
	}
}

// start begins a run of the proposed layout, answering with a rejection
// when it does not fit the level.
func (vs *Session) start(cm model.ClientMessage) bool {
	b, err := layout(vs.Level, cm.Cables)
	if err != nil {
		log.WithField("session", vs.Id).Infof("layout rejected: %v", err)
		vs.State = SS_IDLE
		vs.MessagesToSend <- model.ServerMessage{Results: []model.Result{{
			Outcome: model.Rejected,
			Reason:  err.Error(),
		}}}
		return false
	}
	var rec sim.Recorder
	if vs.server.Profile != nil {
		rec = vs.server.Profile
	}
	vs.runner = sim.NewRunner(vs.Level.Filename, b, sim.OnDemand{}, rec)
	vs.State = SS_RUN
	vs.DebugRuns.Add(1)
	return true
}

// step runs one router step and reports whether the run is over.
func (vs *Session) step() bool {
	errs := vs.runner.Step()
	f := vs.runner.Flooder
	mes := model.ServerMessage{Steps: []model.Step{stepView(f, errs)}}

	done := true
	switch a := vs.runner.Advance.(type) {
	case sim.Errors:
		vs.State = SS_FAILED
		mes.Results = []model.Result{{Outcome: model.Failed, Cycles: f.Cycles, Errors: errorViews(a.Errs)}}
	case sim.WinScreen:
		vs.State = SS_WON
		mes.Results = []model.Result{{Outcome: model.Won, Cycles: f.Cycles, Metrics: a.Metrics}}
	default:
		if f.Cycles >= vs.server.MaxCycles {
			vs.State = SS_ABORTED
			mes.Results = []model.Result{{Outcome: model.Aborted, Cycles: f.Cycles, Reason: "cycle limit reached"}}
		} else {
			done = false
		}
	}
	if done {
		log.WithFields(log.Fields{"session": vs.Id, "level": vs.Level.Filename, "cycles": f.Cycles}).
			Infof("run over: %s", vs.State.Name())
	}
	vs.MessagesToSend <- mes
	return done
}
