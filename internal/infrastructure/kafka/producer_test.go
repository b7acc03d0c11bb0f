package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage("cart-abc", map[string]string{"event_type": "CartCleared"})

	require.NoError(t, err)
	assert.Equal(t, []byte("cart-abc"), msg.Key)
	assert.JSONEq(t, `{"event_type":"CartCleared"}`, string(msg.Value))
	assert.False(t, msg.Time.IsZero())
}

func TestNewMessage_Unencodable(t *testing.T) {
	_, err := NewMessage("cart-abc", make(chan int))

	assert.Error(t, err)
}
