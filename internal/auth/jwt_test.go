package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frota-service/internal/model"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	employee := &model.Employee{ID: "emp-1", Role: model.RoleMotorista}
	token, err := manager.Issue(employee)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims.EmployeeID)
	assert.Equal(t, string(model.RoleMotorista), claims.Role)
	assert.Equal(t, "emp-1", claims.Subject)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue(&model.Employee{ID: "emp-1", Role: model.RoleGestor})
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.Issue(&model.Employee{ID: "emp-1", Role: model.RoleGestor})
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).Parse("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("senha-forte-123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "senha-forte-123", hash)

	ok, err := VerifyPassword("senha-forte-123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("senha-errada", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}
