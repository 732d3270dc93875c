package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/mirrorlabs/nft-mirror/internal/adapter"
	"github.com/mirrorlabs/nft-mirror/internal/domain"
)

// ERC-165 interface IDs for token standard detection
var (
	erc721InterfaceID  = [4]byte{0x80, 0xac, 0x58, 0xcd}
	erc1155InterfaceID = [4]byte{0xd9, 0xb6, 0x7a, 0x26}
)

// Client defines the interface for on-chain contract reads used as a fallback
// when the indexer lacks contract metadata
//
//go:generate mockgen -source=client.go -destination=../mocks/ethereum_client.go -package=mocks -mock_names=Client=MockEthereumClient
type Client interface {
	// Name fetches the contract's name() value
	Name(ctx context.Context, contractAddress string) (string, error)

	// TotalSupply fetches the contract's totalSupply() value; contracts that do
	// not implement it return an error
	TotalSupply(ctx context.Context, contractAddress string) (*big.Int, error)

	// DetectTokenType probes ERC-165 supportsInterface for ERC721 and ERC1155
	DetectTokenType(ctx context.Context, contractAddress string) (domain.TokenType, error)

	// ERC721OwnerOf fetches the current owner of an ERC721 token.
	// ERC1155 ownership is multi-owner and deliberately not resolved here.
	ERC721OwnerOf(ctx context.Context, contractAddress, tokenID string) (string, error)

	// Close closes the connection
	Close()
}

type ethereumClient struct {
	client adapter.EthClient
}

// NewClient creates a new on-chain reader
func NewClient(client adapter.EthClient) Client {
	return &ethereumClient{client: client}
}

// callView packs a view-function call, executes it, and unpacks the single result
func (c *ethereumClient) callView(ctx context.Context, contractAddress, abiJSON, method string, result interface{}, args ...interface{}) error {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := parsed.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(contractAddress)
	raw, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to call contract: %w", err)
	}

	if err := parsed.UnpackIntoInterface(result, method, raw); err != nil {
		return fmt.Errorf("failed to unpack result: %w", err)
	}

	return nil
}

// Name fetches the contract's name() value
func (c *ethereumClient) Name(ctx context.Context, contractAddress string) (string, error) {
	const nameABI = `[{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"}]`

	var name string
	if err := c.callView(ctx, contractAddress, nameABI, "name", &name); err != nil {
		return "", err
	}
	return name, nil
}

// TotalSupply fetches the contract's totalSupply() value
func (c *ethereumClient) TotalSupply(ctx context.Context, contractAddress string) (*big.Int, error) {
	const totalSupplyABI = `[{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`

	var supply *big.Int
	if err := c.callView(ctx, contractAddress, totalSupplyABI, "totalSupply", &supply); err != nil {
		return nil, err
	}
	return supply, nil
}

// DetectTokenType probes ERC-165 supportsInterface for ERC721 and ERC1155
func (c *ethereumClient) DetectTokenType(ctx context.Context, contractAddress string) (domain.TokenType, error) {
	const supportsInterfaceABI = `[{"constant":true,"inputs":[{"name":"interfaceId","type":"bytes4"}],"name":"supportsInterface","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"view","type":"function"}]`

	var is721 bool
	if err := c.callView(ctx, contractAddress, supportsInterfaceABI, "supportsInterface", &is721, erc721InterfaceID); err == nil && is721 {
		return domain.TokenTypeERC721, nil
	}

	var is1155 bool
	if err := c.callView(ctx, contractAddress, supportsInterfaceABI, "supportsInterface", &is1155, erc1155InterfaceID); err == nil && is1155 {
		return domain.TokenTypeERC1155, nil
	}

	// Pre-ERC165 contracts and reverts both land here
	return domain.TokenTypeUnknown, nil
}

// ERC721OwnerOf fetches the current owner of an ERC721 token
func (c *ethereumClient) ERC721OwnerOf(ctx context.Context, contractAddress, tokenID string) (string, error) {
	const ownerOfABI = `[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`

	id, ok := new(big.Int).SetString(tokenID, 10)
	if !ok {
		return "", fmt.Errorf("invalid token id: %s", tokenID)
	}

	var owner common.Address
	if err := c.callView(ctx, contractAddress, ownerOfABI, "ownerOf", &owner, id); err != nil {
		return "", err
	}

	return strings.ToLower(owner.Hex()), nil
}

// Close closes the underlying connection
func (c *ethereumClient) Close() {
	c.client.Close()
}
