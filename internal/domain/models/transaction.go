package models

import (
	"github.com/ethereum/go-ethereum/common"
)

// TxReceipt is the subset of a mined transaction receipt the deployer tracks
type TxReceipt struct {
	TxHash          common.Hash
	BlockNumber     uint64
	GasUsed         uint64
	ContractAddress common.Address // zero unless the transaction created a contract
}
