package chainrpc

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/swaperr"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

const evmNativeDecimals = 18

// EvmClient serves both EVM networks (ethereum, base); each instance is
// bound to one endpoint.
type EvmClient struct {
	network model.Network
	client  *ethclient.Client
	logger  *logger.Logger
}

func NewEvmClient(network model.Network, endpoint string, logger *logger.Logger) (IChainClient, error) {
	if !network.IsEVM() {
		return nil, errors.Errorf("network %s is not an EVM chain", network)
	}

	client, err := ethclient.Dial(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s rpc", network)
	}

	return &EvmClient{
		network: network,
		client:  client,
		logger:  logger,
	}, nil
}

func (c *EvmClient) Network() model.Network {
	return c.network
}

func (c *EvmClient) LatestBlockNumber(ctx context.Context) (uint64, error) {
	block, err := c.client.BlockNumber(ctx)
	if err != nil {
		return 0, &swaperr.ProviderError{Chain: c.network, Err: err}
	}
	return block, nil
}

func (c *EvmClient) NativeBalance(ctx context.Context, address string) (*model.Web3BigInt, error) {
	balance, err := c.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		c.logger.Error("[NativeBalance][BalanceAt]", map[string]string{
			"network": c.network.String(),
			"error":   err.Error(),
		})
		return nil, &swaperr.ProviderError{Chain: c.network, Err: err}
	}
	return &model.Web3BigInt{
		Value:   balance.String(),
		Decimal: evmNativeDecimals,
	}, nil
}

func (c *EvmClient) Ping(ctx context.Context) error {
	if _, err := c.client.ChainID(ctx); err != nil {
		return &swaperr.ProviderError{Chain: c.network, Err: err}
	}
	return nil
}
