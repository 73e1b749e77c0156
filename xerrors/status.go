package xerrors

import (
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type protocolCodes struct {
	http int
	grpc codes.Code
}

// 未列出的类型按内部错误处理。
var protocolTable = map[ErrorType]protocolCodes{
	ErrInvalidArg: {http.StatusBadRequest, codes.InvalidArgument},
	ErrNotFound:   {http.StatusNotFound, codes.NotFound},
	ErrInternal:   {http.StatusInternalServerError, codes.Internal},
}

func (e *Error) protocol() protocolCodes {
	if pc, ok := protocolTable[e.Type]; ok {
		return pc
	}
	return protocolTable[ErrInternal]
}

// HTTPStatus 对应的 HTTP 状态码。
func (e *Error) HTTPStatus() int { return e.protocol().http }

// GRPCCode 对应的 gRPC 状态码。
func (e *Error) GRPCCode() codes.Code { return e.protocol().grpc }

// ToGRPCStatus 转换为 gRPC Status，消息附带调试详情。
func (e *Error) ToGRPCStatus() *status.Status {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return status.New(e.GRPCCode(), msg)
}

// StatusOf 把任意错误映射为 gRPC Status，非 *Error 视为内部错误。
func StatusOf(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	if e, ok := FromError(err); ok {
		return e.ToGRPCStatus()
	}
	return status.New(codes.Internal, err.Error())
}
