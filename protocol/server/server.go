package server

import (
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/ralekv/ralekv/lib/cluster"
	"github.com/ralekv/ralekv/lib/cluster/dcluster"
	"github.com/ralekv/ralekv/lib/cluster/lcluster"
	"github.com/ralekv/ralekv/lib/db"
	"github.com/ralekv/ralekv/lib/db/engines/memdb"
	"github.com/ralekv/ralekv/lib/store"
	"github.com/ralekv/ralekv/lib/store/dstore"
	"github.com/ralekv/ralekv/lib/store/lstore"
	"github.com/ralekv/ralekv/protocol/common"
	"github.com/ralekv/ralekv/protocol/interpreter"
	"github.com/ralekv/ralekv/protocol/transport"
)

var Logger = logger.GetLogger("server")

// DefaultMaxResponseSize is used when the configuration does not set a
// response size limit.
const DefaultMaxResponseSize = 64 * 1024

// NewServer creates a new protocol server over the given transport.
//
// Usage:
//
//	s := server.NewServer(
//		*config,
//		tcp.NewTCPServerTransport(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewServer(
	config common.ServerConfig,
	transport transport.ITextServerTransport,
) *Server {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	Logger.Infof("Created protocol server")
	Logger.Infof(config.String())

	return &Server{
		config:    config,
		transport: transport,
	}
}

// Server wires the configured store and cluster capabilities to an
// interpreter and serves it over a transport.
type Server struct {
	config    common.ServerConfig
	transport transport.ITextServerTransport
	interp    *interpreter.Interpreter
}

// init builds the store and cluster capabilities selected by the
// configuration. In single mode the store is node-local and the cluster view
// is the trivial one-node view; in cluster mode a raft replica is started
// and both capabilities are backed by the Dragonboat NodeHost.
func (s *Server) init() error {

	// Init logger
	common.InitLoggers(s.config)

	// Function to create a new database instance
	dbFactory := func() db.KVDB { return memdb.New() }

	var (
		st store.IStore
		cl cluster.ICluster
	)

	if s.config.IsCluster() {
		nodeHost, err := dragonboat.NewNodeHost(s.config.ToNodeHostConfig())
		if err != nil {
			return fmt.Errorf("failed to create node host: %w", err)
		}

		// Start the raft replica for the KV shard
		if err := nodeHost.StartConcurrentReplica(
			s.config.ClusterMembers,
			false,
			dstore.CreateStateMachineFactory(dbFactory),
			s.config.ToDragonboatConfig(),
		); err != nil {
			return fmt.Errorf("failed to start replica for shard %d: %w", s.config.ShardID, err)
		}

		timeout := time.Duration(s.config.TimeoutSecond) * time.Second
		st = dstore.NewDistributedStore(nodeHost, s.config.ShardID, timeout)
		cl = dcluster.NewRaftCluster(nodeHost, s.config.ShardID, s.config.ReplicaID, s.config.ClusterMembers)
		Logger.Infof("created distributed store for shard %d", s.config.ShardID)
	} else {
		st = lstore.NewLocalStore(dbFactory)
		cl = lcluster.NewLocalCluster(s.config.ReplicaID)
		Logger.Infof("created local store")
	}

	s.interp = interpreter.New(st, cl)

	Logger.Infof("ralekv setup completed successfully")

	// Configure the transport layer
	s.registerTransportHandler()

	return nil
}

// commandErrors counts requests the interpreter answered with an error
// status. Transport-level write failures are counted separately by the
// transport.
var commandErrors = metrics.GetOrCreateCounter(`ralekv_command_errors_total`)

// registerTransportHandler connects the interpreter to the transport. Every
// request gets a fresh bounded response buffer.
func (s *Server) registerTransportHandler() {
	maxResponseSize := s.config.MaxResponseSize
	if maxResponseSize <= 0 {
		maxResponseSize = DefaultMaxResponseSize
	}

	s.transport.RegisterHandler(func(request string) string {
		buf := interpreter.NewResponseBuffer(maxResponseSize)
		status := s.interp.Interpret(request, buf)
		if status == interpreter.StatusError {
			commandErrors.Inc()
		}
		Logger.Debugf("handled request (%d bytes) with status %s", len(request), status)
		return buf.String()
	})
}

// serveMetrics exposes the process metrics in Prometheus text format on a
// separate endpoint.
func serveMetrics(endpoint string) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})

	Logger.Infof("Starting metrics server on %s", endpoint)
	if err := http.ListenAndServe(endpoint, mux); err != nil {
		Logger.Errorf("Metrics server failed: %v", err)
	}
}

// Serve initializes the server and starts the transport layer. It blocks
// until the transport fails.
func (s *Server) Serve() error {
	if err := s.init(); err != nil {
		return err
	}

	if s.config.MetricsEndpoint != "" {
		go serveMetrics(s.config.MetricsEndpoint)
	}

	return s.transport.Listen(s.config)
}
