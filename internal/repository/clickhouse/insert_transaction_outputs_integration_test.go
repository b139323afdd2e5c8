package clickhouse

import (
	"strings"

	"github.com/golang/mock/gomock"
	"github.com/txlens/txlens-backend/internal/model"
)

func (s *RepositorySuite) TestInsertTransactionOutputs() {
	outputs := []model.TransactionOutput{
		{
			Network:    model.Mainnet,
			TxID:       strings.Repeat("a", 64),
			Index:      0,
			Value:      100000,
			ScriptType: "pubkeyhash",
			ScriptHex:  "76a914bc3b654dca7e56b04dca18f2566cdaf02e8d9ada88ac",
			Addresses:  []string{"1JAHBxA51vwp5C2zpSB15VbxSZK3hVJs2H"},
		},
		{
			Network:    model.Mainnet,
			TxID:       strings.Repeat("a", 64),
			Index:      1,
			Value:      0,
			ScriptType: "nulldata",
			ScriptHex:  "6a",
			Addresses:  nil,
		},
	}

	s.metrics.EXPECT().Observe("insert_transaction_outputs", model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertTransactionOutputs(s.testCtx, outputs))
	s.Equal(uint64(len(outputs)), s.countRows("rawtx_transaction_outputs"))
}
