package handler

import (
	"context"
	"fmt"

	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/adapters/grpc/payrollv1"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// PayrollGrpcHandler は PayrollService の gRPC 実装です。
type PayrollGrpcHandler struct {
	svc payroll.UseCase
	payrollv1.UnimplementedPayrollServiceServer
}

var _ payrollv1.PayrollServiceServer = (*PayrollGrpcHandler)(nil)

// NewPayrollGrpcHandler は PayrollGrpcHandler を生成します。
func NewPayrollGrpcHandler(svc payroll.UseCase) *PayrollGrpcHandler {
	return &PayrollGrpcHandler{svc: svc}
}

// RegisterRecord は給与レコードを登録します。
func (h *PayrollGrpcHandler) RegisterRecord(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	obj, err := fieldsOf(req).object("record")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if obj == nil {
		return nil, status.Error(codes.InvalidArgument, "record is required")
	}

	rec, err := decodeRecord(obj)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("record.%v", err))
	}

	created, err := h.svc.RegisterRecord(ctx, payroll.RegisterRecordInput{Record: rec})
	if err != nil {
		return nil, toStatusError(err)
	}

	return respond(map[string]any{"record": encodeRecord(created)})
}

// GetRecord は給与レコードを取得します。
func (h *PayrollGrpcHandler) GetRecord(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := fieldsOf(req).str("id")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	found, err := h.svc.GetRecord(ctx, payroll.GetRecordInput{ID: id})
	if err != nil {
		return nil, toStatusError(err)
	}

	return respond(map[string]any{"record": encodeRecord(found)})
}

// ListRecords は給与レコードの一覧を取得します。
func (h *PayrollGrpcHandler) ListRecords(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	f := fieldsOf(req)
	pageSize, err := f.number("page_size")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	pageToken, err := f.str("page_token")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	rawKind, err := f.str("kind")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	in := payroll.ListRecordsInput{PageToken: pageToken}
	if pageSize != nil {
		in.PageSize = int(*pageSize)
	}
	if rawKind != "" {
		kind := payroll.Kind(rawKind)
		in.Kind = &kind
	}

	result, err := h.svc.ListRecords(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	records := make([]any, 0, len(result.Records))
	for _, rec := range result.Records {
		records = append(records, encodeRecord(rec))
	}

	return respond(map[string]any{
		"records":         records,
		"next_page_token": result.NextPageToken,
	})
}

// DeleteRecord は給与レコードを削除します。
func (h *PayrollGrpcHandler) DeleteRecord(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := fieldsOf(req).str("id")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := h.svc.DeleteRecord(ctx, payroll.DeleteRecordInput{ID: id}); err != nil {
		return nil, toStatusError(err)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

// RunPayroll は給与計算を実行し、結果を返します。
func (h *PayrollGrpcHandler) RunPayroll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	f := fieldsOf(req)
	ids, err := f.stringList("record_ids")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	records, err := f.recordList("records")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	run, err := h.svc.RunPayroll(ctx, payroll.RunPayrollInput{RecordIDs: ids, Records: records})
	if err != nil {
		return nil, toStatusError(err)
	}

	return respond(map[string]any{"run": encodeRun(run)})
}

// GetPayrollRun は保存済みの実行結果を取得します。
func (h *PayrollGrpcHandler) GetPayrollRun(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := fieldsOf(req).str("id")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	run, err := h.svc.GetRun(ctx, payroll.GetRunInput{ID: id})
	if err != nil {
		return nil, toStatusError(err)
	}

	return respond(map[string]any{"run": encodeRun(run)})
}

func respond(body map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(body)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return out, nil
}
