package auditservice

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/EduardoxDev/Digital-Banking-System/internal/domain"
)

func TestAudit(t *testing.T) {
	transaction := domain.NewTransaction(
		uuid.New(),
		uuid.New(),
		decimal.RequireFromString("99.95"),
		domain.TypeTransfer,
	)

	payload, err := json.Marshal(transaction)
	require.NoError(t, err)

	var out bytes.Buffer

	auditService := New(zerolog.New(&out))
	auditService.Audit(payload)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))

	require.Equal(t, "transaction recorded", entry["message"])
	require.Equal(t, transaction.ID.String(), entry["transaction_id"])
	require.Equal(t, transaction.SourceAccountID.String(), entry["source_account_id"])
	require.Equal(t, transaction.DestinationAccountID.String(), entry["destination_account_id"])
	require.Equal(t, "99.95", entry["amount"])
	require.Equal(t, string(domain.TypeTransfer), entry["type"])
}

func TestAuditBadPayload(t *testing.T) {
	var out bytes.Buffer

	auditService := New(zerolog.New(&out))
	auditService.Audit([]byte("not json"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))

	require.Equal(t, "error", entry["level"])
	require.Equal(t, "audit: undecodable transaction event", entry["message"])
}
