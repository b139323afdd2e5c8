package clickhouse

import (
	"strings"

	"github.com/golang/mock/gomock"
	"github.com/txlens/txlens-backend/internal/model"
)

func (s *RepositorySuite) TestInsertTransactionInputs() {
	inputs := []model.TransactionInput{
		{
			Network:      model.Mainnet,
			TxID:         strings.Repeat("a", 64),
			Index:        0,
			PrevTxID:     strings.Repeat("c", 64),
			PrevVout:     1,
			Sequence:     0xfffffffe,
			IsCoinbase:   false,
			ScriptSigHex: "deadbeef",
		},
		{
			Network:      model.Mainnet,
			TxID:         strings.Repeat("b", 64),
			Index:        0,
			PrevTxID:     strings.Repeat("0", 64),
			PrevVout:     0xffffffff,
			Sequence:     0xffffffff,
			IsCoinbase:   true,
			ScriptSigHex: "",
		},
	}

	s.metrics.EXPECT().Observe("insert_transaction_inputs", model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertTransactionInputs(s.testCtx, inputs))
	s.Equal(uint64(len(inputs)), s.countRows("rawtx_transaction_inputs"))
}
