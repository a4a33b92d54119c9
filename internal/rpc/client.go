package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// TaskFlowClient calls the TaskFlow service over cc using the JSON codec.
type TaskFlowClient struct {
	cc grpc.ClientConnInterface
}

func NewTaskFlowClient(cc grpc.ClientConnInterface) *TaskFlowClient {
	return &TaskFlowClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaskFlowClient) Signup(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[CredentialsRequest, AuthResponse](ctx, c.cc, "Signup", in, opts)
}

func (c *TaskFlowClient) Login(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[CredentialsRequest, AuthResponse](ctx, c.cc, "Login", in, opts)
}

func (c *TaskFlowClient) Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*MeResponse, error) {
	return invoke[MeRequest, MeResponse](ctx, c.cc, "Me", in, opts)
}

func (c *TaskFlowClient) ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*ListTasksResponse, error) {
	return invoke[ListTasksRequest, ListTasksResponse](ctx, c.cc, "ListTasks", in, opts)
}

func (c *TaskFlowClient) CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	return invoke[CreateTaskRequest, TaskResponse](ctx, c.cc, "CreateTask", in, opts)
}

func (c *TaskFlowClient) UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	return invoke[UpdateTaskRequest, TaskResponse](ctx, c.cc, "UpdateTask", in, opts)
}

func (c *TaskFlowClient) DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*DeleteTaskResponse, error) {
	return invoke[DeleteTaskRequest, DeleteTaskResponse](ctx, c.cc, "DeleteTask", in, opts)
}

func (c *TaskFlowClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingRequest, PingResponse](ctx, c.cc, "Ping", in, opts)
}
