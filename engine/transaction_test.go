package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Factom-Asset-Tokens/factom-wrapper/engine"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ engine.API = (*fakeAPI)(nil)

var one = decimal.NewFromInt(1)

func TestTransactionStates(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	api := newFakeAPI()
	tx := engine.New(api).Transaction("tx")

	assert.Equal(engine.Absent, tx.State())
	require.NoError(tx.New(ctx))
	assert.Equal(engine.Created, tx.State())
	require.NoError(tx.AddInput(ctx, "FA1", one))
	require.NoError(tx.AddOutput(ctx, "FA2", one))
	require.NoError(tx.AddECOutput(ctx, "EC1", one))
	assert.Equal(engine.Funded, tx.State())
	require.NoError(tx.SubFee(ctx, "FA2"))
	require.NoError(tx.AddFee(ctx, "FA1"))
	assert.Equal(engine.FeeAdjusted, tx.State())
	require.NoError(tx.Sign(ctx))
	assert.Equal(engine.Signed, tx.State())
	res, err := tx.Submit(ctx)
	require.NoError(err)
	assert.True(res.Success)
	assert.Equal(engine.Submitted, tx.State())

	for _, c := range api.calls {
		assert.Equal("tx", c.Name, c.Op)
	}
}

func TestTransactionSequence(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		Name string
		Prep []string
		Step func(*engine.Transaction) error
	}{{
		Name: "sign before new",
		Step: func(tx *engine.Transaction) error { return tx.Sign(ctx) },
	}, {
		Name: "input before new",
		Step: func(tx *engine.Transaction) error {
			return tx.AddInput(ctx, "FA1", one)
		},
	}, {
		Name: "fee before funding",
		Prep: []string{"new"},
		Step: func(tx *engine.Transaction) error { return tx.AddFee(ctx, "FA1") },
	}, {
		Name: "sign before fee",
		Prep: []string{"new", "input"},
		Step: func(tx *engine.Transaction) error { return tx.Sign(ctx) },
	}, {
		Name: "new twice",
		Prep: []string{"new"},
		Step: func(tx *engine.Transaction) error { return tx.New(ctx) },
	}, {
		Name: "input after fee",
		Prep: []string{"new", "input", "fee"},
		Step: func(tx *engine.Transaction) error {
			return tx.AddInput(ctx, "FA1", one)
		},
	}, {
		Name: "submit twice",
		Prep: []string{"new", "input", "fee", "sign", "submit"},
		Step: func(tx *engine.Transaction) error {
			_, err := tx.Submit(ctx)
			return err
		},
	}, {
		Name: "delete after submit",
		Prep: []string{"new", "input", "fee", "sign", "submit"},
		Step: func(tx *engine.Transaction) error { return tx.Delete(ctx) },
	}, {
		Name: "delete absent",
		Step: func(tx *engine.Transaction) error { return tx.Delete(ctx) },
	}}
	for _, test := range tests {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			api := newFakeAPI()
			tx := engine.New(api).Transaction("tx")
			for _, p := range test.Prep {
				var err error
				switch p {
				case "new":
					err = tx.New(ctx)
				case "input":
					err = tx.AddInput(ctx, "FA1", one)
				case "fee":
					err = tx.AddFee(ctx, "FA1")
				case "sign":
					err = tx.Sign(ctx)
				case "submit":
					_, err = tx.Submit(ctx)
				}
				require.NoError(t, err, p)
			}
			n := len(api.ops())
			state := tx.State()

			err := test.Step(tx)
			assert.True(t, errors.Is(err, engine.ErrSequence), err)
			assert.Len(t, api.ops(), n, "no request may be made")
			assert.Equal(t, state, tx.State())
		})
	}
}

func TestTransactionRejected(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.reject["AddInput"] = true
	tx := engine.New(api).Transaction("tx")
	require.NoError(t, tx.New(ctx))

	err := tx.AddInput(ctx, "FA1", one)
	var failed *engine.FailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, "AddInput", failed.Op)
	assert.Equal(t, "tx", failed.TxName)
	assert.Equal(t, "AddInput rejected", failed.Response)
	assert.Equal(t, engine.Created, tx.State())
}

func TestTransactionDeleteRecreate(t *testing.T) {
	ctx := context.Background()
	tx := engine.New(newFakeAPI()).Transaction("tx")
	require.NoError(t, tx.New(ctx))
	require.NoError(t, tx.AddInput(ctx, "FA1", one))
	require.NoError(t, tx.Delete(ctx))
	assert.Equal(t, engine.Deleted, tx.State())
	require.NoError(t, tx.New(ctx))
	assert.Equal(t, engine.Created, tx.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "fee-adjusted", engine.FeeAdjusted.String())
	assert.Equal(t, "submitted", engine.Submitted.String())
	assert.Equal(t, "State(42)", engine.State(42).String())
}
