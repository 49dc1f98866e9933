// Package rpc carries catalog searches between the web adapter and the
// orchestrator over gRPC. Messages are plain Go structs encoded as JSON.
package rpc

import (
	"context"
	"encoding/json"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"shelf/internal/catalog"
	"shelf/internal/logger"
)

const (
	ServiceName  = "shelf.v1.Catalog"
	searchMethod = "/" + ServiceName + "/Search"
	getMethod    = "/" + ServiceName + "/Get"

	codecName   = "json"
	requestIDMD = "x-request-id"
)

type SearchRequest struct {
	Query string `json:"query"`
	From  int    `json:"from"`
	Size  int    `json:"size"`
}

type GetRequest struct {
	ID string `json:"id"`
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return codecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CatalogServer is what the orchestrator exposes.
type CatalogServer interface {
	Search(context.Context, *SearchRequest) (*catalog.Page, error)
	Get(context.Context, *GetRequest) (*catalog.Book, error)
}

type server struct {
	backend catalog.Searcher
}

// Register exposes backend as shelf.v1.Catalog on s.
func Register(s *grpc.Server, backend catalog.Searcher) {
	s.RegisterService(&serviceDesc, &server{backend: backend})
}

func (s *server) Search(ctx context.Context, req *SearchRequest) (*catalog.Page, error) {
	if req.Size <= 0 {
		return nil, status.Error(codes.InvalidArgument, "size must be positive")
	}
	page, err := s.backend.Search(ctx, req.Query, req.From, req.Size)
	if err != nil {
		logger.For(ctx).WithError(err).WithField("query", req.Query).Error("rpc.search.failed")
		return nil, status.Error(codes.Unavailable, err.Error())
	}
	return page, nil
}

func (s *server) Get(ctx context.Context, req *GetRequest) (*catalog.Book, error) {
	g, ok := s.backend.(catalog.Getter)
	if !ok {
		return nil, status.Error(codes.Unimplemented, "backend cannot resolve ids")
	}
	b, err := g.Get(ctx, req.ID)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return nil, status.Error(codes.NotFound, req.ID)
	case err != nil:
		return nil, status.Error(codes.Unavailable, err.Error())
	}
	return b, nil
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Search", Handler: searchHandler},
		{MethodName: "Get", Handler: getHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shelf/v1/catalog",
}

func searchHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SearchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).Search(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: searchMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).Search(ctx, req.(*SearchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServer).Get(ctx, req.(*GetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ServerInterceptor restores the caller's request id and logs each call.
func ServerInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(requestIDMD); len(ids) > 0 {
			ctx = logger.ContextWithID(ctx, ids[0])
		}
	}
	defer logger.Track(ctx, "RPC: "+info.FullMethod)()
	return handler(ctx, req)
}
