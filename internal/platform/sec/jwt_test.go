// Copyright (c) 2026 Yonde. All rights reserved.
// Author: duc.phamminh.vn@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamduc/yonde/internal/platform/sec"
)

/*
TestTokenService_RoundTrip verifies that a generated token carries the full
identity payload back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "yonde.test")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-1", "hana", "hana@yonde.app", "admin", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "hana", claims.Username)
	assert.Equal(t, "hana@yonde.app", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "yonde.test", claims.Issuer)
}

/*
TestTokenService_Expired verifies that expired tokens are rejected.
*/
func TestTokenService_Expired(t *testing.T) {
	service, err := sec.NewTokenService("test-secret", "yonde.test")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-1", "hana", "hana@yonde.app", "member", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_WrongSecret verifies that tokens signed with a different
secret fail verification.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	signer, err := sec.NewTokenService("secret-a", "yonde.test")
	require.NoError(t, err)
	verifier, err := sec.NewTokenService("secret-b", "yonde.test")
	require.NoError(t, err)

	token, err := signer.GenerateAccessToken("user-1", "hana", "hana@yonde.app", "member", time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestNewTokenService_EmptySecret verifies the misconfiguration guard.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "yonde.test")
	assert.Error(t, err)
}

/*
TestHashPassword verifies bcrypt hashing and comparison behavior.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("hunter22")
	require.NoError(t, err)

	// The stored value must never equal the plaintext
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, sec.CheckPasswordHash("hunter22", hash))
	assert.False(t, sec.CheckPasswordHash("hunter23", hash))
}

/*
TestUserRole_AtLeast verifies the role hierarchy comparisons.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleMember))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.RoleMember.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.UserRole("unknown").AtLeast(sec.RoleMember))
}
