package model

// Network identifies one of the three supported chains.
type Network string

const (
	NetworkEthereum Network = "ethereum"
	NetworkBase     Network = "base"
	NetworkSolana   Network = "solana"
)

// AllNetworks is the fixed 3-member chain set.
var AllNetworks = []Network{NetworkEthereum, NetworkBase, NetworkSolana}

func (n Network) Valid() bool {
	switch n {
	case NetworkEthereum, NetworkBase, NetworkSolana:
		return true
	}
	return false
}

// IsEVM reports whether the network is an EVM chain.
func (n Network) IsEVM() bool {
	return n == NetworkEthereum || n == NetworkBase
}

func (n Network) String() string {
	return string(n)
}
