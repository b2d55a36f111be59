// Package payrollv1 は payroll.v1.PayrollService の gRPC 契約です。
// メッセージは google.protobuf.Struct で表現し、フィールド名は snake_case を使います。
package payrollv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName は完全修飾サービス名です。
const ServiceName = "payroll.v1.PayrollService"

const (
	RegisterRecordFullMethodName = "/" + ServiceName + "/RegisterRecord"
	GetRecordFullMethodName      = "/" + ServiceName + "/GetRecord"
	ListRecordsFullMethodName    = "/" + ServiceName + "/ListRecords"
	DeleteRecordFullMethodName   = "/" + ServiceName + "/DeleteRecord"
	RunPayrollFullMethodName     = "/" + ServiceName + "/RunPayroll"
	GetPayrollRunFullMethodName  = "/" + ServiceName + "/GetPayrollRun"
)

// PayrollServiceServer はサーバー側の実装が満たすインターフェースです。
type PayrollServiceServer interface {
	RegisterRecord(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRecord(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListRecords(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteRecord(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RunPayroll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPayrollRun(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedPayrollServiceServer は未実装メソッドに Unimplemented を返します。
type UnimplementedPayrollServiceServer struct{}

func (UnimplementedPayrollServiceServer) RegisterRecord(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterRecord not implemented")
}

func (UnimplementedPayrollServiceServer) GetRecord(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRecord not implemented")
}

func (UnimplementedPayrollServiceServer) ListRecords(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListRecords not implemented")
}

func (UnimplementedPayrollServiceServer) DeleteRecord(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteRecord not implemented")
}

func (UnimplementedPayrollServiceServer) RunPayroll(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RunPayroll not implemented")
}

func (UnimplementedPayrollServiceServer) GetPayrollRun(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPayrollRun not implemented")
}

// RegisterPayrollServiceServer は srv を s に登録します。
func RegisterPayrollServiceServer(s grpc.ServiceRegistrar, srv PayrollServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type unaryMethod func(PayrollServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func handler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PayrollServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(PayrollServiceServer), ctx, req.(*structpb.Struct))
		})
	}
}

// ServiceDesc は payroll.v1.PayrollService の記述子です。
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PayrollServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterRecord", Handler: handler(RegisterRecordFullMethodName, PayrollServiceServer.RegisterRecord)},
		{MethodName: "GetRecord", Handler: handler(GetRecordFullMethodName, PayrollServiceServer.GetRecord)},
		{MethodName: "ListRecords", Handler: handler(ListRecordsFullMethodName, PayrollServiceServer.ListRecords)},
		{MethodName: "DeleteRecord", Handler: handler(DeleteRecordFullMethodName, PayrollServiceServer.DeleteRecord)},
		{MethodName: "RunPayroll", Handler: handler(RunPayrollFullMethodName, PayrollServiceServer.RunPayroll)},
		{MethodName: "GetPayrollRun", Handler: handler(GetPayrollRunFullMethodName, PayrollServiceServer.GetPayrollRun)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "payroll/v1/payroll.proto",
}

// PayrollServiceClient はクライアント側の呼び出しインターフェースです。
type PayrollServiceClient interface {
	RegisterRecord(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetRecord(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListRecords(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DeleteRecord(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RunPayroll(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetPayrollRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type payrollServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPayrollServiceClient は PayrollServiceClient を生成します。
func NewPayrollServiceClient(cc grpc.ClientConnInterface) PayrollServiceClient {
	return &payrollServiceClient{cc: cc}
}

func (c *payrollServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *payrollServiceClient) RegisterRecord(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, RegisterRecordFullMethodName, in, opts)
}

func (c *payrollServiceClient) GetRecord(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetRecordFullMethodName, in, opts)
}

func (c *payrollServiceClient) ListRecords(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListRecordsFullMethodName, in, opts)
}

func (c *payrollServiceClient) DeleteRecord(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DeleteRecordFullMethodName, in, opts)
}

func (c *payrollServiceClient) RunPayroll(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, RunPayrollFullMethodName, in, opts)
}

func (c *payrollServiceClient) GetPayrollRun(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetPayrollRunFullMethodName, in, opts)
}
