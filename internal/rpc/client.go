package rpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"shelf/internal/catalog"
	"shelf/internal/logger"
)

// Client is a catalog.Searcher backed by the orchestrator.
type Client struct {
	conn *grpc.ClientConn
}

func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	}
	conn, err := grpc.NewClient(addr, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("dial orchestrator %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func outgoing(ctx context.Context) context.Context {
	if id := logger.IDFrom(ctx); id != "" {
		return metadata.AppendToOutgoingContext(ctx, requestIDMD, id)
	}
	return ctx
}

func (c *Client) Search(ctx context.Context, query string, from, size int) (*catalog.Page, error) {
	out := new(catalog.Page)
	req := &SearchRequest{Query: query, From: from, Size: size}
	if err := c.conn.Invoke(outgoing(ctx), searchMethod, req, out); err != nil {
		return nil, err
	}
	if out.Books == nil {
		out.Books = []catalog.Book{}
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*catalog.Book, error) {
	out := new(catalog.Book)
	if err := c.conn.Invoke(outgoing(ctx), getMethod, &GetRequest{ID: id}, out); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}
