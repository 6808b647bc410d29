package chainrpc

import (
	"context"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"

	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/swaperr"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

const solanaNativeDecimals = 9

type SolanaClient struct {
	client *rpc.Client
	logger *logger.Logger
}

func NewSolanaClient(endpoint string, logger *logger.Logger) IChainClient {
	return &SolanaClient{
		client: rpc.New(endpoint),
		logger: logger,
	}
}

func (c *SolanaClient) Network() model.Network {
	return model.NetworkSolana
}

func (c *SolanaClient) LatestBlockNumber(ctx context.Context) (uint64, error) {
	slot, err := c.client.GetSlot(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return 0, &swaperr.ProviderError{Chain: model.NetworkSolana, Err: err}
	}
	return slot, nil
}

func (c *SolanaClient) NativeBalance(ctx context.Context, address string) (*model.Web3BigInt, error) {
	pubkey, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, errors.Wrap(err, "invalid solana address")
	}

	out, err := c.client.GetBalance(ctx, pubkey, rpc.CommitmentFinalized)
	if err != nil {
		c.logger.Error("[NativeBalance][GetBalance]", map[string]string{
			"network": model.NetworkSolana.String(),
			"error":   err.Error(),
		})
		return nil, &swaperr.ProviderError{Chain: model.NetworkSolana, Err: err}
	}

	return &model.Web3BigInt{
		Value:   strconv.FormatUint(out.Value, 10),
		Decimal: solanaNativeDecimals,
	}, nil
}

func (c *SolanaClient) Ping(ctx context.Context) error {
	if _, err := c.client.GetHealth(ctx); err != nil {
		return &swaperr.ProviderError{Chain: model.NetworkSolana, Err: err}
	}
	return nil
}
