package customer_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-checkout/internal/customer"
)

func TestPayDebitsBalance(t *testing.T) {
	c, err := customer.New("Ahmed", decimal.NewFromInt(5000))
	require.NoError(t, err)
	require.Equal(t, "Ahmed", c.Name())

	require.NoError(t, c.Pay(decimal.NewFromInt(2220)))
	require.True(t, c.Balance().Equal(decimal.NewFromInt(2780)), c.Balance().String())

	require.NoError(t, c.Pay(decimal.NewFromInt(2780)))
	require.True(t, c.Balance().IsZero())
}

func TestPayFailsClosed(t *testing.T) {
	c, err := customer.New("Yasser", decimal.NewFromInt(100))
	require.NoError(t, err)

	err = c.Pay(decimal.NewFromInt(300))
	require.ErrorIs(t, err, customer.ErrInsufficientBalance)
	require.True(t, c.Balance().Equal(decimal.NewFromInt(100)))

	err = c.Pay(decimal.NewFromInt(-1))
	require.ErrorIs(t, err, customer.ErrInvalidAmount)
	require.True(t, c.Balance().Equal(decimal.NewFromInt(100)))
}

func TestFractionalBalance(t *testing.T) {
	c, err := customer.New("Anas", decimal.RequireFromString("10.05"))
	require.NoError(t, err)
	require.NoError(t, c.Pay(decimal.RequireFromString("0.05")))
	require.Equal(t, "10", c.Balance().String())
	require.ErrorIs(t, c.Pay(decimal.RequireFromString("10.01")), customer.ErrInsufficientBalance)
}

func TestNewRejectsNegativeBalance(t *testing.T) {
	c, err := customer.New("Mohamed", decimal.NewFromInt(-1))
	require.ErrorIs(t, err, customer.ErrInvalidAmount)
	require.Nil(t, c)
}
