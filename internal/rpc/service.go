package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "taskflow.TaskFlow"

// FullMethod returns "/taskflow.TaskFlow/<method>".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// TaskFlowServer is implemented by the server.
type TaskFlowServer interface {
	Signup(context.Context, *CredentialsRequest) (*AuthResponse, error)
	Login(context.Context, *CredentialsRequest) (*AuthResponse, error)
	Me(context.Context, *MeRequest) (*MeResponse, error)
	ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error)
	CreateTask(context.Context, *CreateTaskRequest) (*TaskResponse, error)
	UpdateTask(context.Context, *UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(context.Context, *DeleteTaskRequest) (*DeleteTaskResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// ServiceDesc describes TaskFlowServer to grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TaskFlowServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Signup", TaskFlowServer.Signup),
		unary("Login", TaskFlowServer.Login),
		unary("Me", TaskFlowServer.Me),
		unary("ListTasks", TaskFlowServer.ListTasks),
		unary("CreateTask", TaskFlowServer.CreateTask),
		unary("UpdateTask", TaskFlowServer.UpdateTask),
		unary("DeleteTask", TaskFlowServer.DeleteTask),
		unary("Ping", TaskFlowServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taskflow",
}

// RegisterTaskFlowServer registers srv on s.
func RegisterTaskFlowServer(s grpc.ServiceRegistrar, srv TaskFlowServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req, Resp any](method string, call func(TaskFlowServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TaskFlowServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TaskFlowServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
