package consensus

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"

	"github.com/triswaplabs/triswap-backend/internal/consts"
	"github.com/triswaplabs/triswap-backend/internal/model"
	"github.com/triswaplabs/triswap-backend/internal/swaperr"
	"github.com/triswaplabs/triswap-backend/internal/utils/config"
	"github.com/triswaplabs/triswap-backend/internal/utils/logger"
)

const verifierABI = `[
  {"type":"function","name":"createOperation","stateMutability":"nonpayable","inputs":[{"name":"opId","type":"bytes32"},{"name":"destChain","type":"uint8"},{"name":"asset","type":"bytes32"},{"name":"amount","type":"uint256"},{"name":"flags","type":"uint8"}],"outputs":[]},
  {"type":"function","name":"getProofCount","stateMutability":"view","inputs":[{"name":"opId","type":"bytes32"}],"outputs":[{"name":"","type":"uint8"}]},
  {"type":"function","name":"executeOperation","stateMutability":"nonpayable","inputs":[{"name":"opId","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"cancelOperation","stateMutability":"nonpayable","inputs":[{"name":"opId","type":"bytes32"}],"outputs":[]}
]`

var chainOrdinals = map[model.Network]uint8{
	model.NetworkEthereum: 0,
	model.NetworkBase:     1,
	model.NetworkSolana:   2,
}

// Gateway talks to the consensus verifier contract. Its mode is decided at
// construction from the presence of signing credentials and never changes.
type Gateway struct {
	mode     Mode
	contract *bind.BoundContract
	parsed   abi.ABI
	signer   *ecdsa.PrivateKey
	chainID  *big.Int
	logger   *logger.Logger
}

func New(appConfig *config.AppConfig, logger *logger.Logger, client *ethclient.Client) (IGateway, error) {
	parsed, err := abi.JSON(strings.NewReader(verifierABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse verifier ABI")
	}

	addr := common.HexToAddress(appConfig.Consensus.VerifierContractAddr)
	contract := bind.NewBoundContract(addr, parsed, client, client, client)

	g := &Gateway{
		mode:     ModeReadOnly,
		contract: contract,
		parsed:   parsed,
		chainID:  big.NewInt(appConfig.Consensus.ChainID),
		logger:   logger,
	}

	if appConfig.Consensus.SignerPrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(appConfig.Consensus.SignerPrivateKey, "0x"))
		if err != nil {
			return nil, errors.Wrap(err, "invalid consensus signer key")
		}
		g.mode = ModeSigning
		g.signer = key
	}

	logger.Info("consensus gateway initialized", map[string]string{
		"mode": string(g.mode),
	})
	return g, nil
}

func (g *Gateway) Mode() Mode {
	return g.mode
}

func (g *Gateway) CreateOperation(ctx context.Context, destChain model.Network, asset string, amount *model.Web3BigInt, flags uint8) (string, model.ExecutionResult, error) {
	ordinal, ok := chainOrdinals[destChain]
	if !ok {
		return "", model.ExecutionResult{}, &swaperr.ValidationError{Field: "destChain", Reason: "unsupported network"}
	}

	opID := deriveOperationID(ordinal, asset, amount)

	if g.mode == ModeReadOnly {
		return opID.Hex(), model.NewSimulatedResult(opID.Hex()), nil
	}

	ctx, cancel := context.WithTimeout(ctx, consts.ConsensusCallTimeout)
	defer cancel()

	opts, err := g.transactOpts(ctx)
	if err != nil {
		return "", model.ExecutionResult{}, err
	}

	var asset32 [32]byte
	copy(asset32[:], asset)

	tx, err := g.contract.Transact(opts, "createOperation", opID, ordinal, asset32, amount.BigInt(), flags)
	if err != nil {
		if ctx.Err() != nil {
			return "", model.ExecutionResult{}, &swaperr.TimeoutError{Operation: "createOperation"}
		}
		return "", model.ExecutionResult{}, &swaperr.ProviderError{Chain: destChain, Err: err}
	}

	return opID.Hex(), model.NewRealResult(tx.Hash().Hex()), nil
}

func (g *Gateway) GetProofCount(ctx context.Context, operationID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, consts.ConsensusCallTimeout)
	defer cancel()

	var out []interface{}
	err := g.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getProofCount", common.HexToHash(operationID))
	if err != nil {
		if ctx.Err() != nil {
			return 0, &swaperr.TimeoutError{Operation: "getProofCount"}
		}
		return 0, &swaperr.ProviderError{Chain: model.NetworkEthereum, Err: err}
	}
	if len(out) != 1 {
		return 0, errors.New("unexpected getProofCount output")
	}

	count, ok := out[0].(uint8)
	if !ok {
		return 0, errors.Errorf("unexpected getProofCount output type %T", out[0])
	}
	return int(count), nil
}

func (g *Gateway) ExecuteOperation(ctx context.Context, operationID string) (model.ExecutionResult, error) {
	if g.mode == ModeReadOnly {
		g.logger.Info("[ExecuteOperation] read-only mode, returning simulated result", map[string]string{
			"operation_id": operationID,
		})
		return model.NewSimulatedResult(operationID), nil
	}

	ctx, cancel := context.WithTimeout(ctx, consts.ConsensusCallTimeout)
	defer cancel()

	opts, err := g.transactOpts(ctx)
	if err != nil {
		return model.ExecutionResult{}, err
	}

	tx, err := g.contract.Transact(opts, "executeOperation", common.HexToHash(operationID))
	if err != nil {
		if ctx.Err() != nil {
			return model.ExecutionResult{}, &swaperr.TimeoutError{Operation: "executeOperation"}
		}
		return model.ExecutionResult{}, &swaperr.ProviderError{Chain: model.NetworkEthereum, Err: err}
	}

	return model.NewRealResult(tx.Hash().Hex()), nil
}

func (g *Gateway) CancelOperation(ctx context.Context, operationID string) (model.ExecutionResult, error) {
	if g.mode == ModeReadOnly {
		g.logger.Info("[CancelOperation] read-only mode, returning simulated result", map[string]string{
			"operation_id": operationID,
		})
		return model.NewSimulatedResult(operationID), nil
	}

	ctx, cancel := context.WithTimeout(ctx, consts.ConsensusCallTimeout)
	defer cancel()

	opts, err := g.transactOpts(ctx)
	if err != nil {
		return model.ExecutionResult{}, err
	}

	tx, err := g.contract.Transact(opts, "cancelOperation", common.HexToHash(operationID))
	if err != nil {
		if ctx.Err() != nil {
			return model.ExecutionResult{}, &swaperr.TimeoutError{Operation: "cancelOperation"}
		}
		return model.ExecutionResult{}, &swaperr.ProviderError{Chain: model.NetworkEthereum, Err: err}
	}

	return model.NewRealResult(tx.Hash().Hex()), nil
}

func (g *Gateway) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(g.signer, g.chainID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transactor")
	}
	opts.Context = ctx
	return opts, nil
}

func deriveOperationID(destChain uint8, asset string, amount *model.Web3BigInt) common.Hash {
	nonce := big.NewInt(time.Now().UnixNano())
	return crypto.Keccak256Hash(
		[]byte{destChain},
		[]byte(asset),
		amount.BigInt().Bytes(),
		nonce.Bytes(),
	)
}
