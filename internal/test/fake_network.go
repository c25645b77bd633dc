package test

import (
	"context"
	"math/big"
	"sync"

	"github.com/chapool/treasury-api/internal/wallet/network"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// FakeClient is an in-memory network.Client. Zero values behave like a healthy node
// without EIP-1559 data; configure the exported fields before handing it out.
type FakeClient struct {
	mu sync.Mutex

	Height         uint64
	BlockNumberErr error
	// Hang makes BlockNumber block until the context is done
	Hang bool

	BaseFee   *big.Int
	HeaderErr error
	TipCap    *big.Int
	TipCapErr error

	BalanceErr error
	Nonce      uint64
	NonceErr   error
	SendErr    error

	// ReceiptStatus is reported for every included transaction
	ReceiptStatus uint64
	// PendingPolls is the number of receipt lookups answered with ethereum.NotFound
	PendingPolls int
	// ReceiptHang makes TransactionReceipt block until the context is done
	ReceiptHang bool

	balances map[common.Address]*big.Int
	sent     []*types.Transaction
	polls    map[common.Hash]int
	calls    map[string]int
	closed   bool
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		Height:        21_000_000,
		ReceiptStatus: types.ReceiptStatusSuccessful,
		balances:      make(map[common.Address]*big.Int),
		polls:         make(map[common.Hash]int),
		calls:         make(map[string]int),
	}
}

func (c *FakeClient) SetBalance(account common.Address, wei *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.init()
	c.balances[account] = new(big.Int).Set(wei)
}

func (c *FakeClient) Balance(account common.Address) *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.balances[account]; ok {
		return new(big.Int).Set(b)
	}
	return big.NewInt(0)
}

func (c *FakeClient) SentTransactions() []*types.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	sent := make([]*types.Transaction, len(c.sent))
	copy(sent, c.sent)
	return sent
}

func (c *FakeClient) Calls(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

func (c *FakeClient) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// lazy so that struct literals work as well as NewFakeClient. Caller holds mu.
func (c *FakeClient) init() {
	if c.balances == nil {
		c.balances = make(map[common.Address]*big.Int)
	}
	if c.polls == nil {
		c.polls = make(map[common.Hash]int)
	}
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
}

func (c *FakeClient) record(method string) {
	c.mu.Lock()
	c.init()
	c.calls[method]++
	c.mu.Unlock()
}

func (c *FakeClient) BlockNumber(ctx context.Context) (uint64, error) {
	c.record("BlockNumber")
	if c.Hang {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	if c.BlockNumberErr != nil {
		return 0, c.BlockNumberErr
	}
	return c.Height, nil
}

func (c *FakeClient) BalanceAt(_ context.Context, account common.Address, _ *big.Int) (*big.Int, error) {
	c.record("BalanceAt")
	if c.BalanceErr != nil {
		return nil, c.BalanceErr
	}
	return c.Balance(account), nil
}

func (c *FakeClient) HeaderByNumber(_ context.Context, _ *big.Int) (*types.Header, error) {
	c.record("HeaderByNumber")
	if c.HeaderErr != nil {
		return nil, c.HeaderErr
	}

	header := &types.Header{Number: new(big.Int).SetUint64(c.Height)}
	if c.BaseFee != nil {
		header.BaseFee = new(big.Int).Set(c.BaseFee)
	}
	return header, nil
}

func (c *FakeClient) SuggestGasTipCap(_ context.Context) (*big.Int, error) {
	c.record("SuggestGasTipCap")
	if c.TipCapErr != nil {
		return nil, c.TipCapErr
	}
	if c.TipCap == nil {
		return nil, errors.New("method eth_maxPriorityFeePerGas not supported")
	}
	return new(big.Int).Set(c.TipCap), nil
}

func (c *FakeClient) PendingNonceAt(_ context.Context, _ common.Address) (uint64, error) {
	c.record("PendingNonceAt")
	if c.NonceErr != nil {
		return 0, c.NonceErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Nonce, nil
}

func (c *FakeClient) SendTransaction(_ context.Context, tx *types.Transaction) error {
	c.record("SendTransaction")
	if c.SendErr != nil {
		return c.SendErr
	}

	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return errors.Wrap(err, "invalid sender")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if tx.Nonce() != c.Nonce {
		return errors.Errorf("nonce too low: next nonce %d, tx nonce %d", c.Nonce, tx.Nonce())
	}

	c.sent = append(c.sent, tx)
	c.Nonce++

	if b, ok := c.balances[from]; ok {
		c.balances[from] = new(big.Int).Sub(b, tx.Value())
	}
	to := *tx.To()
	prev, ok := c.balances[to]
	if !ok {
		prev = big.NewInt(0)
	}
	c.balances[to] = new(big.Int).Add(prev, tx.Value())

	return nil
}

func (c *FakeClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	c.record("TransactionReceipt")
	if c.ReceiptHang {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var found *types.Transaction
	for _, tx := range c.sent {
		if tx.Hash() == txHash {
			found = tx
			break
		}
	}
	if found == nil {
		return nil, ethereum.NotFound
	}

	c.polls[txHash]++
	if c.polls[txHash] <= c.PendingPolls {
		return nil, ethereum.NotFound
	}

	return &types.Receipt{
		Type:        found.Type(),
		Status:      c.ReceiptStatus,
		TxHash:      txHash,
		GasUsed:     found.Gas(),
		BlockNumber: new(big.Int).SetUint64(c.Height + 1),
	}, nil
}

func (c *FakeClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// FakeNetwork dials FakeClients by URL. Unknown URLs fail to dial.
type FakeNetwork struct {
	mu      sync.Mutex
	clients map[string]*FakeClient
	dialed  []string
}

func NewFakeNetwork() *FakeNetwork {
	return &FakeNetwork{clients: make(map[string]*FakeClient)}
}

func (n *FakeNetwork) Add(url string, client *FakeClient) *FakeClient {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.clients[url] = client
	return client
}

// Dial satisfies network.Dialer.
//
//nolint:ireturn
func (n *FakeNetwork) Dial(_ context.Context, url string) (network.Client, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.dialed = append(n.dialed, url)
	client, ok := n.clients[url]
	if !ok {
		return nil, errors.Errorf("dial %s: connection refused", url)
	}
	return client, nil
}

func (n *FakeNetwork) Dialed() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	dialed := make([]string, len(n.dialed))
	copy(dialed, n.dialed)
	return dialed
}
