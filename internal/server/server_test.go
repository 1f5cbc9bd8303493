package server

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/lgarreta/ecuapassdocs/internal/common"
)

func startServer(t *testing.T) (*Server, healthpb.HealthClient) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	s := New(nil)
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})
	return s, healthpb.NewHealthClient(conn)
}

// status returns UNKNOWN when the call fails, so it is safe inside Eventually.
func status(c healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := c.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN
	}
	return resp.GetStatus()
}

func TestHealthStatus(t *testing.T) {
	s, client := startServer(t)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(client, ""))

	s.SetServing(true)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(client, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(client, Service))
}

func TestMonitorFollowsPinger(t *testing.T) {
	s, client := startServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fail := make(chan bool, 1)
	fail <- false
	var failing bool
	go s.Monitor(ctx, 10*time.Millisecond, func(context.Context) error {
		select {
		case failing = <-fail:
		default:
		}
		if failing {
			return errors.New("db down")
		}
		return nil
	})

	assert.Eventually(t, func() bool {
		return status(client, Service) == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 10*time.Millisecond)

	fail <- true
	assert.Eventually(t, func() bool {
		return status(client, Service) == healthpb.HealthCheckResponse_NOT_SERVING
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConnectDBSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := ConnectDB(ctx, common.DatabaseConfig{SQLitePath: filepath.Join(t.TempDir(), "h.db")}, nil)
	require.NoError(t, err)
	defer db.Close(nil)

	assert.NoError(t, PingDB(db, time.Second, nil)(ctx))
}
