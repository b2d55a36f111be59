package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	grpc_zap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/adapters/grpc/handler"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/adapters/grpc/payrollv1"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const shutdownTimeout = 10 * time.Second

// Options は Server の任意設定です。
type Options struct {
	Logger *zap.Logger
	// MetricsAddr が空の場合、HTTP リスナーは起動しません。
	MetricsAddr    string
	MetricsHandler http.Handler
	GRPCOptions    []grpc.ServerOption
}

// Server は gRPC サーバーと監視用 HTTP リスナーのライフサイクルを管理します。
type Server struct {
	listenAddr    string
	grpcServer    *grpc.Server
	metricsServer *http.Server
	logger        *zap.Logger

	mu   sync.Mutex
	stop context.CancelFunc
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
func New(listenAddr string, svc payroll.UseCase, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	serverOpts := append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			grpc_zap.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(grpc_recovery.WithRecoveryHandler(func(p any) error {
				logger.Error("panic in gRPC handler", zap.Any("panic", p))
				return status.Error(codes.Internal, "internal error")
			})),
			grpc_prometheus.UnaryServerInterceptor,
		),
	}, opts.GRPCOptions...)

	srv := grpc.NewServer(serverOpts...)
	payrollv1.RegisterPayrollServiceServer(srv, handler.NewPayrollGrpcHandler(svc))
	grpc_prometheus.Register(srv)

	s := &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		logger:     logger,
	}
	if opts.MetricsAddr != "" && opts.MetricsHandler != nil {
		s.metricsServer = &http.Server{
			Addr:              opts.MetricsAddr,
			Handler:           opts.MetricsHandler,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return s
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は lis で gRPC を提供します。Run と異なりリスナーは呼び出し側が用意します。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	s.stop = cancel
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// gRPC が止まったら metrics リスナーも止める。
		defer cancel()
		s.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
		if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	})

	if s.metricsServer != nil {
		g.Go(func() error {
			s.logger.Info("metrics server listening", zap.String("addr", s.metricsServer.Addr))
			if err := s.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve metrics: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")
		s.grpcServer.GracefulStop()
		if s.metricsServer == nil {
			return nil
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.metricsServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// GracefulStop は Serve に停止を要求します。Serve は処理中の RPC を待ってから戻ります。
func (s *Server) GracefulStop() {
	s.mu.Lock()
	stop := s.stop
	s.mu.Unlock()
	if stop != nil {
		stop()
		return
	}
	s.grpcServer.GracefulStop()
}
