package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractStatusTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    ContractStatus
		event   SignatureEvent
		want    ContractStatus
		wantErr bool
	}{
		{"client signs pending", ContractPending, EventClientSign, ContractSignedByClient, false},
		{"admin counter-signs", ContractSignedByClient, EventAdminSign, ContractCompleted, false},
		{"admin cannot sign first", ContractPending, EventAdminSign, ContractPending, true},
		{"client cannot sign twice", ContractSignedByClient, EventClientSign, ContractSignedByClient, true},
		{"completed rejects client", ContractCompleted, EventClientSign, ContractCompleted, true},
		{"completed rejects admin", ContractCompleted, EventAdminSign, ContractCompleted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Transition(tt.event)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tt.from, got, "a rejected event must not change the status")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContractBucketPredicates(t *testing.T) {
	pending := Contract{Status: ContractPending}
	assert.True(t, pending.AwaitingClientSignature())
	assert.False(t, pending.AwaitingAdminSignature())
	assert.False(t, pending.FullyExecuted())

	signed := Contract{Status: ContractSignedByClient, ClientSignature: "data:image/png;base64,x"}
	assert.True(t, signed.AwaitingAdminSignature())
	assert.False(t, signed.AwaitingClientSignature())
	assert.False(t, signed.FullyExecuted())

	done := Contract{
		Status:          ContractCompleted,
		ClientSignature: "data:image/png;base64,x",
		AdminSignature:  "data:image/png;base64,y",
	}
	assert.True(t, done.FullyExecuted())
	assert.False(t, done.AwaitingAdminSignature())
}
