package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ipfs/go-cid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"xdao.co/spendclass/cidutil"
	"xdao.co/spendclass/model"
	"xdao.co/spendclass/storage"
)

// Client talks to a SpendClass server. It also implements storage.CAS over the
// server's archive, so Put only accepts serialized (puzzle . solution) pairs.
type Client struct {
	cc     *grpc.ClientConn
	client SpendClassClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

var _ storage.CAS = (*Client)(nil)

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewSpendClassClient(cc)}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Classify sends a serialized pair and returns the server's report. Classification
// failures come back as *model.CodedError.
func (c *Client) Classify(ctx context.Context, pair []byte) (*model.SpendReport, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.client.Classify(ctx, wrapperspb.Bytes(pair))
	if err != nil {
		return nil, fromStatus(err)
	}
	var r model.SpendReport
	if err := json.Unmarshal(reply.GetValue(), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Put archives a serialized pair remotely and checks the returned CID.
func (c *Client) Put(ctx context.Context, pair []byte) (cid.Cid, error) {
	expected, err := cidutil.Sum(pair)
	if err != nil {
		return cid.Undef, err
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.client.Archive(ctx, wrapperspb.Bytes(pair))
	if err != nil {
		return cid.Undef, fromStatus(err)
	}
	id, err := cidutil.Parse(reply.GetValue())
	if err != nil {
		return cid.Undef, storage.ErrInvalidCID
	}
	if !id.Equals(expected) {
		return cid.Undef, storage.ErrCIDMismatch
	}
	return id, nil
}

func (c *Client) Get(ctx context.Context, id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, storage.ErrInvalidCID
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.client.Fetch(ctx, wrapperspb.String(id.String()))
	if err != nil {
		return nil, fromStatus(err)
	}
	b := reply.GetValue()
	ok, err := cidutil.Verify(id, b)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, storage.ErrCIDMismatch
	}
	return b, nil
}

func (c *Client) Has(ctx context.Context, id cid.Cid) (bool, error) {
	if !id.Defined() {
		return false, storage.ErrInvalidCID
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.client.Has(ctx, wrapperspb.String(id.String()))
	if err != nil {
		return false, fromStatus(err)
	}
	return reply.GetValue(), nil
}

// RegistryEntry is one row of the server's template registry listing.
type RegistryEntry struct {
	Hash    string
	Shape   string
	Version string
	Name    string
}

func (c *Client) Registry(ctx context.Context) ([]RegistryEntry, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.client.Registry(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, fromStatus(err)
	}
	out := make([]RegistryEntry, 0, len(reply.GetValues()))
	for _, v := range reply.GetValues() {
		f := v.GetStructValue().GetFields()
		out = append(out, RegistryEntry{
			Hash:    f["hash"].GetStringValue(),
			Shape:   f["shape"].GetStringValue(),
			Version: f["version"].GetStringValue(),
			Name:    f["name"].GetStringValue(),
		})
	}
	return out, nil
}

func (c *Client) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.Timeout)
}
